package tool

import (
	"errors"
	"testing"

	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
)

func TestCatalogNeverExposesSession(t *testing.T) {
	t.Parallel()

	infos := Catalog()
	if len(infos) != len(Kinds) {
		t.Fatalf("expected %d tool infos, got %d", len(Kinds), len(infos))
	}
	for i, info := range infos {
		if info.Name != string(Kinds[i]) {
			t.Fatalf("tool %d = %s, want %s", i, info.Name, Kinds[i])
		}
		if info.ParamsOneOf == nil {
			continue
		}
		params, err := info.ParamsOneOf.ToOpenAPIV3()
		if err != nil {
			t.Fatalf("ToOpenAPIV3(%s) error = %v", info.Name, err)
		}
		for _, forbidden := range []string{"session_id", "order_id"} {
			if _, ok := params.Properties[forbidden]; ok {
				t.Fatalf("%s exposes %s to the model", info.Name, forbidden)
			}
		}
	}
}

func TestParseInjectsServerSession(t *testing.T) {
	t.Parallel()

	inv, err := Parse("add_item_to_order", `{"item_name":"Soda","quantity":2,"session_id":"forged","order_id":"other"}`, "s1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if inv.SessionID != "s1" {
		t.Fatalf("SessionID = %q, want s1", inv.SessionID)
	}
	if inv.Kind != KindAddItemToOrder || inv.ItemName != "Soda" || inv.Quantity != 2 {
		t.Fatalf("unexpected invocation: %#v", inv)
	}
}

func TestParseDefaultsQuantity(t *testing.T) {
	t.Parallel()

	inv, err := Parse("remove_item_from_order", `{"item_name":"  fries "}`, "s1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if inv.Quantity != 1 || inv.ItemName != "fries" {
		t.Fatalf("unexpected invocation: %#v", inv)
	}
}

func TestParseRejectsBadQuantity(t *testing.T) {
	t.Parallel()

	for _, args := range []string{
		`{"item_name":"Soda","quantity":0}`,
		`{"item_name":"Soda","quantity":-2}`,
		`{"item_name":"Soda","quantity":1.5}`,
		`{"item_name":"Soda","quantity":51}`,
		`{"item_name":"soda","quantity":2000000000}`,
	} {
		_, err := Parse("add_item_to_order", args, "s1")
		if !errors.Is(err, contractx.ErrValidation) || !errors.Is(err, ErrBadQuantity) {
			t.Fatalf("Parse(%s) error = %v, want ErrBadQuantity", args, err)
		}
	}
}

func TestParseAcceptsMaxQuantity(t *testing.T) {
	t.Parallel()

	inv, err := Parse("remove_item_from_order", `{"item_name":"Soda","quantity":50}`, "s1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if inv.Quantity != MaxQuantity {
		t.Fatalf("Quantity = %d, want %d", inv.Quantity, MaxQuantity)
	}
}

func TestArgumentProblemHidesDecoderErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse("get_item_price", `{"item_name": 42}`, "s1")
	if !errors.Is(err, ErrMalformedArgs) {
		t.Fatalf("Parse() error = %v, want ErrMalformedArgs", err)
	}
	if got := ArgumentProblem(err); got != "arguments must be a JSON object" {
		t.Fatalf("ArgumentProblem() = %q", got)
	}
	if got := ArgumentProblem(ErrBadQuantity); got != "quantity must be a whole number from 1 to 50" {
		t.Fatalf("ArgumentProblem() = %q", got)
	}
}

func TestParseRequiresItemName(t *testing.T) {
	t.Parallel()

	for _, args := range []string{``, `{}`, `{"item_name":"  "}`, `not json`} {
		if _, err := Parse("get_item_price", args, "s1"); !errors.Is(err, contractx.ErrValidation) {
			t.Fatalf("Parse(%q) error = %v, want ErrValidation", args, err)
		}
	}
}

func TestParseUnknownTool(t *testing.T) {
	t.Parallel()

	if _, err := Parse("order_pizza_now", `{}`, "s1"); !errors.Is(err, contractx.ErrUnknownTool) {
		t.Fatalf("Parse() error = %v, want ErrUnknownTool", err)
	}
}

func TestParseIgnoresArgsForSessionTools(t *testing.T) {
	t.Parallel()

	inv, err := Parse("get_current_order", `{"session_id":"forged"}`, "s1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if inv.SessionID != "s1" {
		t.Fatalf("SessionID = %q, want s1", inv.SessionID)
	}
}
