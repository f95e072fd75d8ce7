package domain

import (
	"fmt"
	"math"

	"elyseeWeb/internal/shared/normalization"
)

const (
	// MaxTilt is the largest rotation, in degrees, on either axis.
	MaxTilt = 30.0
	MinZoom = 0.5
	MaxZoom = 3.0
	// ZoomIn and ZoomOut are the multiplicative wheel steps.
	ZoomIn  = 1.1
	ZoomOut = 0.9
)

// Mode is the viewer's rendering mode.
type Mode string

const (
	Mode360  Mode = "360"
	ModeAR   Mode = "ar"
	ModeXRay Mode = "xray"
)

// Layer selects which content layer of the dish is shown.
type Layer string

const (
	LayerPresentation Layer = "presentation"
	LayerIngredients  Layer = "ingredients"
	LayerPreparation  Layer = "preparation"
	LayerPlating      Layer = "plating"
)

// Layers lists the layer tabs in display order.
var Layers = []Layer{LayerPresentation, LayerIngredients, LayerPreparation, LayerPlating}

// Label is the tab caption for the layer.
func (l Layer) Label() string {
	switch l {
	case LayerIngredients:
		return "Ingredient Layers"
	case LayerPreparation:
		return "Preparation Steps"
	case LayerPlating:
		return "Plating Artistry"
	default:
		return "Final Presentation"
	}
}

// ParseMode returns the mode for raw and whether it was recognised.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(normalization.Key(raw)) {
	case Mode360:
		return Mode360, true
	case ModeAR:
		return ModeAR, true
	case ModeXRay, "cross-section":
		return ModeXRay, true
	}
	return "", false
}

// ParseLayer returns the layer for raw and whether it was recognised.
func ParseLayer(raw string) (Layer, bool) {
	key := Layer(normalization.Key(raw))
	for _, l := range Layers {
		if key == l {
			return l, true
		}
	}
	return "", false
}

// Rotation is a tilt pair in degrees. X follows the vertical pointer offset
// and Y the horizontal one.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pointer is a cursor position in client coordinates.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the viewer container's bounding box in client coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// State is everything the viewer tracks for one open dish. Operations return a
// new State and never fail: unknown selections are ignored and out-of-range
// input is clamped.
type State struct {
	Mode          Mode     `json:"mode"`
	Rotation      Rotation `json:"rotation"`
	Zoom          float64  `json:"zoom"`
	Layer         Layer    `json:"layer"`
	ShowNutrition bool     `json:"showNutrition"`
	ShowPairing   bool     `json:"showPairing"`
	Closed        bool     `json:"closed"`
}

// NewState is the state a freshly opened viewer starts in.
func NewState() State {
	return State{Mode: Mode360, Zoom: 1, Layer: LayerPresentation}
}

// PointerMove maps the pointer's normalized offset from the box centre to a tilt.
// The mapping is linear and monotonic; pointers outside the box saturate at
// MaxTilt. A degenerate box leaves the state unchanged.
func (s State) PointerMove(p Pointer, box Rect) State {
	if box.Width <= 0 || box.Height <= 0 {
		return s
	}
	nx := ((p.X-box.Left)/box.Width - 0.5) * 2
	ny := ((p.Y-box.Top)/box.Height - 0.5) * 2
	s.Rotation = Rotation{
		X: clamp(ny*MaxTilt, -MaxTilt, MaxTilt),
		Y: clamp(nx*MaxTilt, -MaxTilt, MaxTilt),
	}
	return s
}

// Wheel zooms out for positive deltas and in otherwise, staying within [MinZoom, MaxZoom].
func (s State) Wheel(deltaY float64) State {
	factor := ZoomIn
	if deltaY > 0 {
		factor = ZoomOut
	}
	s.Zoom = clamp(s.Zoom*factor, MinZoom, MaxZoom)
	return s
}

func (s State) ResetZoom() State {
	s.Zoom = 1
	return s
}

func (s State) ResetRotation() State {
	s.Rotation = Rotation{}
	return s
}

func (s State) SetMode(m Mode) State {
	if parsed, ok := ParseMode(string(m)); ok {
		s.Mode = parsed
	}
	return s
}

func (s State) SetLayer(l Layer) State {
	if parsed, ok := ParseLayer(string(l)); ok {
		s.Layer = parsed
	}
	return s
}

func (s State) ToggleNutrition() State {
	s.ShowNutrition = !s.ShowNutrition
	return s
}

func (s State) TogglePairing() State {
	s.ShowPairing = !s.ShowPairing
	return s
}

func (s State) Close() State {
	s.Closed = true
	return s
}

// Normalize re-applies the state's bounds, for states that arrive from a client.
// Unknown modes and layers fall back to the defaults.
func (s State) Normalize() State {
	out := NewState().SetMode(s.Mode).SetLayer(s.Layer)
	out.Rotation = Rotation{
		X: clamp(s.Rotation.X, -MaxTilt, MaxTilt),
		Y: clamp(s.Rotation.Y, -MaxTilt, MaxTilt),
	}
	if s.Zoom != 0 {
		out.Zoom = clamp(s.Zoom, MinZoom, MaxZoom)
	}
	out.ShowNutrition = s.ShowNutrition
	out.ShowPairing = s.ShowPairing
	out.Closed = s.Closed
	return out
}

// Transform renders the state as a CSS transform for the dish frame.
func (s State) Transform() string {
	return fmt.Sprintf("perspective(1000px) rotateX(%.2fdeg) rotateY(%.2fdeg) scale(%.3f)", s.Rotation.X, s.Rotation.Y, s.Zoom)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
