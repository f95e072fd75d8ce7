package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"elyseeWeb/internal/shared/normalization"
)

var (
	ErrUnknownAction  = errors.New("unknown viewer action")
	ErrInvalidPayload = errors.New("invalid viewer payload")
	ErrSessionClosed  = errors.New("viewer session closed")
)

const (
	ActionPointer       = "pointer"
	ActionWheel         = "wheel"
	ActionMode          = "mode"
	ActionLayer         = "layer"
	ActionNutrition     = "nutrition"
	ActionPairing       = "pairing"
	ActionResetZoom     = "reset_zoom"
	ActionResetRotation = "reset_rotation"
	ActionClose         = "close"
)

// Actions lists every command the viewer accepts.
var Actions = []string{
	ActionPointer, ActionWheel, ActionMode, ActionLayer, ActionNutrition,
	ActionPairing, ActionResetZoom, ActionResetRotation, ActionClose,
}

// PointerPayload carries a pointer position and the container box it was measured against.
type PointerPayload struct {
	Pointer Pointer `json:"pointer"`
	Box     Rect    `json:"box"`
}

// WheelPayload carries a wheel event's vertical delta.
type WheelPayload struct {
	DeltaY float64 `json:"deltaY"`
}

// SelectPayload carries a mode or layer selection.
type SelectPayload struct {
	Value string `json:"value"`
}

// Command is one viewer interaction as received from the browser.
type Command struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Apply evaluates cmd against s. Selections of unknown modes or layers leave
// the state unchanged; malformed payloads are reported.
func Apply(s State, cmd Command) (State, error) {
	switch normalization.Key(cmd.Action) {
	case ActionPointer:
		var p PointerPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return s, err
		}
		return s.PointerMove(p.Pointer, p.Box), nil
	case ActionWheel:
		var w WheelPayload
		if err := decode(cmd.Payload, &w); err != nil {
			return s, err
		}
		return s.Wheel(w.DeltaY), nil
	case ActionMode:
		var sel SelectPayload
		if err := decode(cmd.Payload, &sel); err != nil {
			return s, err
		}
		if m, ok := ParseMode(sel.Value); ok {
			return s.SetMode(m), nil
		}
		return s, nil
	case ActionLayer:
		var sel SelectPayload
		if err := decode(cmd.Payload, &sel); err != nil {
			return s, err
		}
		if l, ok := ParseLayer(sel.Value); ok {
			return s.SetLayer(l), nil
		}
		return s, nil
	case ActionNutrition:
		return s.ToggleNutrition(), nil
	case ActionPairing:
		return s.TogglePairing(), nil
	case ActionResetZoom:
		return s.ResetZoom(), nil
	case ActionResetRotation:
		return s.ResetRotation(), nil
	case ActionClose:
		return s.Close(), nil
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing payload", ErrInvalidPayload)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
