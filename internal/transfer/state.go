// Package transfer fetches SAC masks over HTTP, decodes them and renders
// them onto a display surface.
package transfer

// State is a step of the load-and-render pipeline.
type State int

const (
	StateAwaitingImage State = iota
	StateFetching
	StateDecoding
	StateRendering
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAwaitingImage:
		return "awaiting_image"
	case StateFetching:
		return "fetching"
	case StateDecoding:
		return "decoding"
	case StateRendering:
		return "rendering"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
