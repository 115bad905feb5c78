package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/sacmask/internal/logger"
	"github.com/samcharles93/sacmask/internal/surface"
	"github.com/samcharles93/sacmask/internal/transfer"
	"github.com/samcharles93/sacmask/pkg/sac"
)

// DefaultMaxBodyBytes caps uploaded masks when Config.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 64 << 20

type Config struct {
	Store   *MaskStore
	Fetcher transfer.Fetcher
	Logger  logger.Logger
	// MaxBodyBytes caps uploads; negative disables the cap.
	MaxBodyBytes int64
}

type Server struct {
	store    *MaskStore
	fetcher  transfer.Fetcher
	log      logger.Logger
	maxBytes int64
	clock    func() time.Time
}

func NewServer(cfg Config) *Server {
	s := &Server{
		store:    cfg.Store,
		fetcher:  cfg.Fetcher,
		log:      cfg.Logger,
		maxBytes: cfg.MaxBodyBytes,
		clock:    time.Now,
	}
	if s.store == nil {
		s.store = NewMaskStore()
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.maxBytes == 0 {
		s.maxBytes = DefaultMaxBodyBytes
	}
	return s
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/masks", s.handleListMasks)
	e.POST("/v1/masks", s.handleUploadMask)
	e.POST("/v1/masks/fetch", s.handleFetchMask)
	e.GET("/v1/masks/:id", s.handleGetMask)
	e.GET("/v1/masks/:id/data", s.handleMaskData)
	e.GET("/v1/masks/:id/render", s.handleRenderMask)
	e.DELETE("/v1/masks/:id", s.handleDeleteMask)
}

func (s *Server) handleListMasks(c *echo.Context) error {
	recs := s.store.List()
	out := MaskList{Object: "list", Data: make([]MaskInfo, 0, len(recs))}
	for _, rec := range recs {
		out.Data = append(out.Data, rec.info())
	}
	return writeJSON(c, http.StatusOK, out)
}

func (s *Server) handleUploadMask(c *echo.Context) error {
	body, err := readBody(c.Request().Body, s.maxBytes)
	if err != nil {
		if errors.Is(err, ErrBodyTooLarge) {
			return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", err.Error(), "", "")
		}
		return writeBadRequest(c, err)
	}
	// body is owned by this request, so the document can alias it.
	doc, err := sac.Parse(body)
	if err != nil {
		return writeDecodeError(c, http.StatusBadRequest, err)
	}
	rec := s.store.Save(doc, "upload", s.clock())
	s.log.Info("mask stored", "id", rec.ID, "length", doc.Len(), "source", "upload")
	return writeJSON(c, http.StatusCreated, rec.info())
}

func (s *Server) handleFetchMask(c *echo.Context) error {
	if s.fetcher == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "fetcher not configured", "", "")
	}
	body, err := readBody(c.Request().Body, 1<<16)
	if err != nil {
		return writeBadRequest(c, err)
	}
	var req FetchMaskReq
	if err := json.Unmarshal(body, &req); err != nil {
		return writeBadRequest(c, fmt.Errorf("invalid JSON body: %w", err))
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		return writeBadRequest(c, invalidParam("url", "must be http or https"))
	}

	buf, err := s.fetcher.Fetch(c.Request().Context(), req.URL)
	if err != nil {
		s.log.Warn("mask fetch failed", "url", req.URL, "error", err)
		var te *transfer.TransportError
		code := ""
		if errors.As(err, &te) && te.StatusCode != 0 {
			code = strconv.Itoa(te.StatusCode)
		}
		return writeError(c, http.StatusBadGateway, "transport_error", err.Error(), "url", code)
	}
	doc, err := sac.Parse(buf)
	if err != nil {
		return writeDecodeError(c, http.StatusUnprocessableEntity, err)
	}
	rec := s.store.Save(doc, req.URL, s.clock())
	s.log.Info("mask stored", "id", rec.ID, "length", doc.Len(), "source", req.URL)
	return writeJSON(c, http.StatusCreated, rec.info())
}

func (s *Server) handleGetMask(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "mask not found")
	}
	return writeJSON(c, http.StatusOK, rec.info())
}

func (s *Server) handleMaskData(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "mask not found")
	}
	return c.Blob(http.StatusOK, sac.ContentType, rec.Doc.Bytes())
}

func (s *Server) handleRenderMask(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "mask not found")
	}
	q, err := parseRenderQuery(c)
	if err != nil {
		return writeBadRequest(c, err)
	}

	raster, err := sac.Render(rec.Doc, q.opts)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "render_error", err.Error(), "", renderCode(err))
	}

	var buf bytes.Buffer
	enc := surface.NewEncoder(&buf, q.format)
	enc.SetSize(raster.Width, raster.Height)
	if err := enc.WritePixels(raster.Pix); err != nil {
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
	}

	h := c.Response().Header()
	h.Set("X-Sac-Width", strconv.Itoa(raster.Width))
	h.Set("X-Sac-Height", strconv.Itoa(raster.Height))
	return c.Blob(http.StatusOK, contentTypeFor(q.format), buf.Bytes())
}

func (s *Server) handleDeleteMask(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "mask not found")
	}
	return writeJSON(c, http.StatusOK, DeleteMaskResp{ID: id, Object: "mask.deleted", Deleted: true})
}

func contentTypeFor(f surface.Format) string {
	switch f {
	case surface.FormatGIF:
		return "image/gif"
	case surface.FormatRaw:
		return sac.ContentType
	default:
		return "image/png"
	}
}
