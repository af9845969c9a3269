package tool

import (
	"github.com/cloudwego/eino/schema"
)

// Kind names one operation of the closed order-tool set.
type Kind string

const (
	KindGetItemPrice          Kind = "get_item_price"
	KindGetItemDetails        Kind = "get_item_details"
	KindGetDietaryInformation Kind = "get_dietary_information"
	KindListMenuItems         Kind = "list_menu_items"
	KindListDailySpecials     Kind = "list_daily_specials"
	KindAddItemToOrder        Kind = "add_item_to_order"
	KindRemoveItemFromOrder   Kind = "remove_item_from_order"
	KindGetCurrentOrder       Kind = "get_current_order"
	KindCalculateOrderTotal   Kind = "calculate_order_total"
	KindClearOrder            Kind = "clear_order"
)

// Kinds lists every tool in the order it is described to the model.
var Kinds = []Kind{
	KindGetItemPrice,
	KindGetItemDetails,
	KindGetDietaryInformation,
	KindListMenuItems,
	KindListDailySpecials,
	KindAddItemToOrder,
	KindRemoveItemFromOrder,
	KindGetCurrentOrder,
	KindCalculateOrderTotal,
	KindClearOrder,
}

type argShape int

const (
	argsNone argShape = iota
	argsItem
	argsItemQuantity
)

type kindDef struct {
	desc string
	args argShape
}

// The session is never a model-visible parameter; the server supplies it.
var kindDefs = map[Kind]kindDef{
	KindGetItemPrice:          {desc: "Returns the price of a specific menu item or daily special.", args: argsItem},
	KindGetItemDetails:        {desc: "Returns a description of a menu item or daily special.", args: argsItem},
	KindGetDietaryInformation: {desc: "Returns dietary information (vegetarian, vegan, allergens) for a menu item.", args: argsItem},
	KindListMenuItems:         {desc: "Lists all available menu items with their prices.", args: argsNone},
	KindListDailySpecials:     {desc: "Lists today's daily specials.", args: argsNone},
	KindAddItemToOrder:        {desc: "Adds an item from the menu or daily specials to the customer's current order.", args: argsItemQuantity},
	KindRemoveItemFromOrder:   {desc: "Removes an item from the customer's current order, most recently added first.", args: argsItemQuantity},
	KindGetCurrentOrder:       {desc: "Returns the current order items and total.", args: argsNone},
	KindCalculateOrderTotal:   {desc: "Returns the total price for the current order.", args: argsNone},
	KindClearOrder:            {desc: "Removes every item from the current order.", args: argsNone},
}

func (k Kind) Valid() bool {
	_, ok := kindDefs[k]
	return ok
}

// Catalog returns the tool descriptions bound to the model.
func Catalog() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(Kinds))
	for _, k := range Kinds {
		def := kindDefs[k]
		info := &schema.ToolInfo{
			Name: string(k),
			Desc: def.desc,
		}
		if params := paramsFor(def.args); params != nil {
			info.ParamsOneOf = schema.NewParamsOneOfByParams(params)
		}
		infos = append(infos, info)
	}
	return infos
}

func paramsFor(shape argShape) map[string]*schema.ParameterInfo {
	switch shape {
	case argsItem:
		return map[string]*schema.ParameterInfo{
			"item_name": {Type: schema.String, Desc: "Full menu item name, e.g. \"Cheeseburger\"", Required: true},
		}
	case argsItemQuantity:
		return map[string]*schema.ParameterInfo{
			"item_name": {Type: schema.String, Desc: "Full menu item name, e.g. \"Cheeseburger\"", Required: true},
			"quantity":  {Type: schema.Integer, Desc: "How many units, at least 1. Defaults to 1."},
		}
	default:
		return nil
	}
}
