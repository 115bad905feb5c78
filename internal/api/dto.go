package api

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// MaskInfo describes a stored mask.
type MaskInfo struct {
	ID        string    `json:"id"`
	Object    string    `json:"object"`
	CreatedAt int64     `json:"created_at"`
	Source    string    `json:"source,omitempty"`
	Length    int       `json:"length"`
	Width     uint32    `json:"width,omitempty"`
	Height    uint32    `json:"height,omitempty"`
	Flags     uint8     `json:"flags"`
	Reserved  uint8     `json:"reserved"`
	Bytes     int       `json:"bytes"`
	Stats     StatsInfo `json:"stats"`
}

type StatsInfo struct {
	MinA int16 `json:"min_a"`
	MaxA int16 `json:"max_a"`
	MinB int16 `json:"min_b"`
	MaxB int16 `json:"max_b"`
}

type MaskList struct {
	Object string     `json:"object"`
	Data   []MaskInfo `json:"data"`
}

type FetchMaskReq struct {
	URL string `json:"url"`
}

type DeleteMaskResp struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}
