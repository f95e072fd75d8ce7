package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var box = Rect{Left: 100, Top: 50, Width: 400, Height: 200}

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, Mode360, s.Mode)
	assert.Equal(t, 1.0, s.Zoom)
	assert.Equal(t, LayerPresentation, s.Layer)
	assert.False(t, s.ShowNutrition)
	assert.False(t, s.ShowPairing)
	assert.Equal(t, Rotation{}, s.Rotation)
}

func TestPointerMoveCornersAndCentre(t *testing.T) {
	s := NewState()

	centre := s.PointerMove(Pointer{X: 300, Y: 150}, box)
	assert.Equal(t, Rotation{X: 0, Y: 0}, centre.Rotation)

	topLeft := s.PointerMove(Pointer{X: 100, Y: 50}, box)
	assert.Equal(t, Rotation{X: -30, Y: -30}, topLeft.Rotation)

	bottomRight := s.PointerMove(Pointer{X: 500, Y: 250}, box)
	assert.Equal(t, Rotation{X: 30, Y: 30}, bottomRight.Rotation)

	quarter := s.PointerMove(Pointer{X: 200, Y: 100}, box)
	assert.InDelta(t, -15, quarter.Rotation.Y, 1e-9)
	assert.InDelta(t, -15, quarter.Rotation.X, 1e-9)
}

func TestPointerMoveStaysWithinTiltForWholeBox(t *testing.T) {
	s := NewState()
	prevY := math.Inf(-1)
	for px := box.Left; px <= box.Left+box.Width; px += 5 {
		r := s.PointerMove(Pointer{X: px, Y: box.Top + box.Height/2}, box).Rotation
		require.GreaterOrEqual(t, r.Y, -MaxTilt)
		require.LessOrEqual(t, r.Y, MaxTilt)
		require.GreaterOrEqual(t, r.Y, prevY, "rotation must be monotonic in the horizontal offset")
		prevY = r.Y
	}
	prevX := math.Inf(-1)
	for py := box.Top; py <= box.Top+box.Height; py += 5 {
		r := s.PointerMove(Pointer{X: box.Left, Y: py}, box).Rotation
		require.GreaterOrEqual(t, r.X, -MaxTilt)
		require.LessOrEqual(t, r.X, MaxTilt)
		require.GreaterOrEqual(t, r.X, prevX)
		prevX = r.X
	}
}

func TestPointerMoveOutsideBoxIsClamped(t *testing.T) {
	r := NewState().PointerMove(Pointer{X: -5000, Y: 9000}, box).Rotation
	assert.Equal(t, Rotation{X: 30, Y: -30}, r)
}

func TestPointerMoveDegenerateBoxKeepsState(t *testing.T) {
	s := NewState().PointerMove(Pointer{X: 500, Y: 250}, box)
	assert.Equal(t, s, s.PointerMove(Pointer{X: 0, Y: 0}, Rect{Width: 0, Height: 10}))
}

func TestWheelZoomStaysInRange(t *testing.T) {
	sequences := [][]float64{
		repeat(100, 120),
		repeat(100, -120),
		{-1, 1, -1, -1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1},
		append(repeat(50, -3), repeat(80, 3)...),
	}
	for _, seq := range sequences {
		s := NewState()
		for _, d := range seq {
			s = s.Wheel(d)
			require.GreaterOrEqual(t, s.Zoom, MinZoom)
			require.LessOrEqual(t, s.Zoom, MaxZoom)
		}
	}
}

func TestWheelDirection(t *testing.T) {
	s := NewState()
	assert.InDelta(t, 0.9, s.Wheel(120).Zoom, 1e-9)
	assert.InDelta(t, 1.1, s.Wheel(-120).Zoom, 1e-9)
	assert.InDelta(t, 1.1, s.Wheel(0).Zoom, 1e-9)
}

func TestResetsAndToggles(t *testing.T) {
	s := NewState().PointerMove(Pointer{X: 500, Y: 250}, box).Wheel(-1).Wheel(-1)
	s = s.ResetZoom().ResetRotation()
	assert.Equal(t, 1.0, s.Zoom)
	assert.Equal(t, Rotation{}, s.Rotation)

	s = s.ToggleNutrition().TogglePairing().TogglePairing()
	assert.True(t, s.ShowNutrition)
	assert.False(t, s.ShowPairing)
}

func TestSetModeAndLayerIgnoreUnknown(t *testing.T) {
	s := NewState().SetMode(ModeXRay).SetLayer(LayerPlating)
	assert.Equal(t, ModeXRay, s.Mode)
	assert.Equal(t, LayerPlating, s.Layer)

	s = s.SetMode("hologram").SetLayer("garnish")
	assert.Equal(t, ModeXRay, s.Mode)
	assert.Equal(t, LayerPlating, s.Layer)
}

func TestTransform(t *testing.T) {
	s := NewState().PointerMove(Pointer{X: 500, Y: 50}, box).Wheel(120)
	assert.Equal(t, "perspective(1000px) rotateX(-30.00deg) rotateY(30.00deg) scale(0.900)", s.Transform())
}

func TestNormalizeClampsClientState(t *testing.T) {
	in := State{Mode: "cross-section", Layer: "garnish", Zoom: 9, Rotation: Rotation{X: -80, Y: 12}, ShowPairing: true}
	out := in.Normalize()
	assert.Equal(t, ModeXRay, out.Mode)
	assert.Equal(t, LayerPresentation, out.Layer)
	assert.Equal(t, MaxZoom, out.Zoom)
	assert.Equal(t, Rotation{X: -MaxTilt, Y: 12}, out.Rotation)
	assert.True(t, out.ShowPairing)

	assert.Equal(t, 1.0, State{}.Normalize().Zoom)
}

func TestLayerLabels(t *testing.T) {
	assert.Equal(t, "Final Presentation", LayerPresentation.Label())
	assert.Equal(t, "Plating Artistry", LayerPlating.Label())
}

func repeat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
