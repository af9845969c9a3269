package tool

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
)

// MaxQuantity bounds how many units a single call may add or remove.
const MaxQuantity = 50

var (
	ErrMalformedArgs = fmt.Errorf("%w: arguments must be a JSON object", contractx.ErrValidation)
	ErrMissingItem   = fmt.Errorf("%w: item_name is required", contractx.ErrValidation)
	ErrBadQuantity   = fmt.Errorf("%w: quantity must be a whole number from 1 to %d", contractx.ErrValidation, MaxQuantity)
)

// Invocation is a parsed, validated tool call. SessionID always comes from
// the server, never from model-authored arguments.
type Invocation struct {
	Kind      Kind
	ItemName  string
	Quantity  int
	SessionID string
}

type rawArgs struct {
	ItemName *string  `json:"item_name"`
	Quantity *float64 `json:"quantity"`
}

// Parse turns a model tool call into an Invocation bound to sessionID.
// Unknown tool names yield ErrUnknownTool; malformed arguments yield ErrValidation.
func Parse(name string, args string, sessionID string) (Invocation, error) {
	kind := Kind(strings.TrimSpace(name))
	def, ok := kindDefs[kind]
	if !ok {
		return Invocation{}, fmt.Errorf("%w: %q", contractx.ErrUnknownTool, name)
	}

	inv := Invocation{
		Kind:      kind,
		SessionID: sessionID,
	}
	if def.args == argsNone {
		return inv, nil
	}

	var raw rawArgs
	if trimmed := strings.TrimSpace(args); trimmed != "" {
		if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
			return Invocation{}, fmt.Errorf("%w: %s: %v", ErrMalformedArgs, kind, err)
		}
	}

	if raw.ItemName == nil || strings.TrimSpace(*raw.ItemName) == "" {
		return Invocation{}, ErrMissingItem
	}
	inv.ItemName = strings.TrimSpace(*raw.ItemName)

	if def.args == argsItemQuantity {
		qty, err := parseQuantity(raw.Quantity)
		if err != nil {
			return Invocation{}, err
		}
		inv.Quantity = qty
	}
	return inv, nil
}

func parseQuantity(v *float64) (int, error) {
	if v == nil {
		return 1, nil
	}
	q := *v
	if q != math.Trunc(q) || q < 1 || q > MaxQuantity {
		return 0, ErrBadQuantity
	}
	return int(q), nil
}

// ArgumentProblem describes a Parse validation error without echoing
// decoder internals back to the model.
func ArgumentProblem(err error) string {
	switch {
	case errors.Is(err, ErrBadQuantity):
		return fmt.Sprintf("quantity must be a whole number from 1 to %d", MaxQuantity)
	case errors.Is(err, ErrMissingItem):
		return "item_name is required"
	default:
		return "arguments must be a JSON object"
	}
}
