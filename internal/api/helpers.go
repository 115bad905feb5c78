package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/sacmask/internal/surface"
	"github.com/samcharles93/sacmask/pkg/sac"
)

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, b)
}

func writeBadRequest(c *echo.Context, err error) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), errorParam(err), "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "", "")
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return writeJSON(c, status, errorEnvelope{Error: ErrorBody{
		Message: msg,
		Type:    errType,
		Param:   param,
		Code:    code,
	}})
}

// writeDecodeError reports a rejected SAC payload, naming the offending field.
func writeDecodeError(c *echo.Context, status int, err error) error {
	var de *sac.DecodeError
	param := ""
	if errors.As(err, &de) {
		param = de.Field
	}
	return writeError(c, status, "decode_error", err.Error(), param, decodeCode(err))
}

func decodeCode(err error) string {
	switch {
	case errors.Is(err, sac.ErrTooSmall):
		return "too_small"
	case errors.Is(err, sac.ErrBadMagic):
		return "bad_magic"
	case errors.Is(err, sac.ErrUnsupportedDataType):
		return "unsupported_data_type"
	case errors.Is(err, sac.ErrUnsupportedArrayCount):
		return "unsupported_array_count"
	case errors.Is(err, sac.ErrLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, sac.ErrDimensionMismatch):
		return "dimension_mismatch"
	case errors.Is(err, sac.ErrTruncated):
		return "truncated"
	default:
		return ""
	}
}

func renderCode(err error) string {
	switch {
	case errors.Is(err, sac.ErrMissingDimensions):
		return "missing_dimensions"
	case errors.Is(err, sac.ErrSizeMismatch):
		return "size_mismatch"
	case errors.Is(err, sac.ErrUnknownColorMode):
		return "unknown_color_mode"
	default:
		return ""
	}
}

func readBody(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, bodyTooLarge(limit)
	}
	return b, nil
}

type renderQuery struct {
	opts   sac.RenderOptions
	format surface.Format
}

func parseRenderQuery(c *echo.Context) (renderQuery, error) {
	var q renderQuery
	q.opts.ColorMode = sac.ColorMode(c.QueryParam("mode"))

	if s := c.QueryParam("opacity"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return q, invalidParam("opacity", "%q is not a number", s)
		}
		q.opts.Opacity = sac.Opacity(v)
	}
	for _, p := range []struct {
		name string
		dst  *uint32
	}{
		{"width", &q.opts.Width},
		{"height", &q.opts.Height},
	} {
		s := c.QueryParam(p.name)
		if s == "" {
			continue
		}
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return q, invalidParam(p.name, "%q is not an unsigned 32-bit integer", s)
		}
		*p.dst = uint32(v)
	}

	f, err := surface.ParseFormat(c.QueryParam("format"))
	if err != nil || f == surface.FormatSixel {
		return q, invalidParam("format", "unsupported %q", c.QueryParam("format"))
	}
	q.format = f
	return q, nil
}
