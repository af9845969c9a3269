package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
	menux "github.com/tanpawarit/Chative-Voice-Ordering/agent/menu"
	orderx "github.com/tanpawarit/Chative-Voice-Ordering/agent/order"
)

var errNothingRemoved = errors.New("nothing removed")

// Tools executes order tools against a menu and an order store.
type Tools struct {
	menu   *menux.Catalog
	orders *orderx.Store
}

func New(menu *menux.Catalog, orders *orderx.Store) *Tools {
	return &Tools{
		menu:   menu,
		orders: orders,
	}
}

// ItemPrice returns the listed price of a menu item or special.
func (t *Tools) ItemPrice(name string) (orderx.Cents, error) {
	item, err := t.menu.Lookup(name)
	if err != nil {
		return 0, err
	}
	return item.Price, nil
}

func (t *Tools) ItemDetails(name string) (string, error) {
	item, err := t.menu.Lookup(name)
	if err != nil {
		return "", err
	}
	return item.Description, nil
}

// DietaryInformation returns the item's dietary tags and the full dietary text.
func (t *Tools) DietaryInformation(name string) ([]string, string, error) {
	item, err := t.menu.Lookup(name)
	if err != nil {
		return nil, "", err
	}
	return item.DietaryTags(), item.Dietary, nil
}

func (t *Tools) MenuItems() []menux.Item {
	return t.menu.Items()
}

func (t *Tools) DailySpecials() []menux.Item {
	return t.menu.Specials()
}

// AddItem appends quantity price snapshots of the named item to the order.
// Unknown items produce a message rather than an error.
func (t *Tools) AddItem(ctx context.Context, sessionID string, name string, quantity int) (string, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return fmt.Sprintf("Quantity must be between 1 and %d.", MaxQuantity), nil
	}
	item, err := t.menu.Lookup(name)
	if err != nil {
		if errors.Is(err, contractx.ErrNotFound) {
			return fmt.Sprintf("%s is not on the menu.", strings.TrimSpace(name)), nil
		}
		return "", err
	}

	_, err = t.orders.Update(ctx, sessionID, func(lines []orderx.Line) ([]orderx.Line, error) {
		for i := 0; i < quantity; i++ {
			lines = append(lines, orderx.Line{Name: item.Name, Price: item.Price})
		}
		return lines, nil
	})
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("session_id", sessionID).
		Str("item", item.Name).
		Int("quantity", quantity).
		Msg("tool: item added")
	return fmt.Sprintf("Added %d x %s to the order.", quantity, item.Name), nil
}

// RemoveItem drops up to quantity lines matching the item's display name,
// newest first, and reports how many were removed.
func (t *Tools) RemoveItem(ctx context.Context, sessionID string, name string, quantity int) (int, string, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return 0, fmt.Sprintf("Quantity must be between 1 and %d.", MaxQuantity), nil
	}
	display := strings.TrimSpace(name)
	if item, err := t.menu.Lookup(name); err == nil {
		display = item.Name
	}

	removed := 0
	_, err := t.orders.Update(ctx, sessionID, func(lines []orderx.Line) ([]orderx.Line, error) {
		drop := make([]bool, len(lines))
		for i := len(lines) - 1; i >= 0 && removed < quantity; i-- {
			if lines[i].Name == display {
				drop[i] = true
				removed++
			}
		}
		if removed == 0 {
			return nil, errNothingRemoved
		}
		kept := make([]orderx.Line, 0, len(lines)-removed)
		for i, line := range lines {
			if !drop[i] {
				kept = append(kept, line)
			}
		}
		return kept, nil
	})
	switch {
	case errors.Is(err, errNothingRemoved):
		return 0, fmt.Sprintf("%s not found in the order.", display), nil
	case err != nil:
		return 0, "", err
	}

	log.Debug().
		Str("session_id", sessionID).
		Str("item", display).
		Int("removed", removed).
		Msg("tool: item removed")
	if removed < quantity {
		return removed, fmt.Sprintf("Removed %d x %s; the order held fewer than requested (%d).", removed, display, quantity), nil
	}
	return removed, fmt.Sprintf("Removed %d x %s from the order.", removed, display), nil
}

// CurrentOrder summarizes the session's order; unknown sessions are empty.
func (t *Tools) CurrentOrder(ctx context.Context, sessionID string) (orderx.Summary, error) {
	lines, err := t.orders.Load(ctx, sessionID)
	if err != nil {
		return orderx.Summarize(nil), err
	}
	return orderx.Summarize(lines), nil
}

func (t *Tools) OrderTotal(ctx context.Context, sessionID string) (orderx.Cents, error) {
	summary, err := t.CurrentOrder(ctx, sessionID)
	return summary.Total, err
}

func (t *Tools) ClearOrder(ctx context.Context, sessionID string) error {
	if err := t.orders.Replace(ctx, sessionID, []orderx.Line{}); err != nil {
		return err
	}
	log.Debug().Str("session_id", sessionID).Msg("tool: order cleared")
	return nil
}

type priceResult struct {
	Item  string       `json:"item"`
	Price orderx.Cents `json:"price"`
}

type detailsResult struct {
	Item        string `json:"item"`
	Description string `json:"description"`
}

type dietaryResult struct {
	Item    string   `json:"item"`
	Dietary []string `json:"dietary"`
	Details string   `json:"details"`
}

type totalResult struct {
	Total orderx.Cents `json:"total"`
}

// Execute runs inv and renders its outcome as the text handed back to the
// model. A returned error means the tool itself failed.
func (t *Tools) Execute(ctx context.Context, inv Invocation) (string, error) {
	switch inv.Kind {
	case KindGetItemPrice:
		price, err := t.ItemPrice(inv.ItemName)
		if err != nil {
			return notFound(inv.ItemName, err)
		}
		return render(priceResult{Item: displayName(t.menu, inv.ItemName), Price: price})
	case KindGetItemDetails:
		desc, err := t.ItemDetails(inv.ItemName)
		if err != nil {
			return notFound(inv.ItemName, err)
		}
		return render(detailsResult{Item: displayName(t.menu, inv.ItemName), Description: desc})
	case KindGetDietaryInformation:
		tags, details, err := t.DietaryInformation(inv.ItemName)
		if err != nil {
			return notFound(inv.ItemName, err)
		}
		return render(dietaryResult{Item: displayName(t.menu, inv.ItemName), Dietary: tags, Details: details})
	case KindListMenuItems:
		return render(t.MenuItems())
	case KindListDailySpecials:
		return render(t.DailySpecials())
	case KindAddItemToOrder:
		return t.AddItem(ctx, inv.SessionID, inv.ItemName, inv.Quantity)
	case KindRemoveItemFromOrder:
		_, msg, err := t.RemoveItem(ctx, inv.SessionID, inv.ItemName, inv.Quantity)
		return msg, err
	case KindGetCurrentOrder:
		summary, err := t.CurrentOrder(ctx, inv.SessionID)
		if err != nil {
			return "", err
		}
		return render(summary)
	case KindCalculateOrderTotal:
		total, err := t.OrderTotal(ctx, inv.SessionID)
		if err != nil {
			return "", err
		}
		return render(totalResult{Total: total})
	case KindClearOrder:
		if err := t.ClearOrder(ctx, inv.SessionID); err != nil {
			return "", err
		}
		return "The order has been cleared.", nil
	default:
		return "", fmt.Errorf("%w: %q", contractx.ErrUnknownTool, inv.Kind)
	}
}

func notFound(name string, err error) (string, error) {
	if errors.Is(err, contractx.ErrNotFound) {
		return fmt.Sprintf("%s is not on the menu.", strings.TrimSpace(name)), nil
	}
	return "", err
}

func displayName(menu *menux.Catalog, name string) string {
	if item, err := menu.Lookup(name); err == nil {
		return item.Name
	}
	return strings.TrimSpace(name)
}

func render(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode tool result: %w", err)
	}
	return string(raw), nil
}
