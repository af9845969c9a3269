package menu

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
	orderx "github.com/tanpawarit/Chative-Voice-Ordering/agent/order"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenu []byte

var ErrInvalidMenu = errors.New("invalid menu")

// Item is an immutable menu entry. Daily specials use the same shape.
type Item struct {
	Name        string       `json:"name"`
	Price       orderx.Cents `json:"price"`
	Description string       `json:"description"`
	Dietary     string       `json:"dietary"`
}

const containsPrefix = "contains "

// DietaryTags splits the dietary text into tags, one per comma-separated
// phrase. Phrases in a "Contains ..." sentence keep the qualifier, so
// "Contains gluten, dairy." yields "Contains gluten" and "Contains dairy".
func (i Item) DietaryTags() []string {
	var tags []string
	for _, sentence := range strings.Split(i.Dietary, ".") {
		sentence = strings.TrimSpace(sentence)
		qualifier := ""
		if len(sentence) > len(containsPrefix) && strings.EqualFold(sentence[:len(containsPrefix)], containsPrefix) {
			qualifier = sentence[:len(containsPrefix)]
			sentence = sentence[len(containsPrefix):]
		}
		for _, f := range strings.Split(sentence, ",") {
			if tag := strings.TrimSpace(f); tag != "" {
				tags = append(tags, qualifier+tag)
			}
		}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	items    []Item
	specials []Item
	index    map[string]Item
}

type fileItem struct {
	Name        string  `yaml:"name"`
	Price       float64 `yaml:"price"`
	Description string  `yaml:"description"`
	Dietary     string  `yaml:"dietary"`
}

type fileMenu struct {
	Items    []fileItem `yaml:"items"`
	Specials []fileItem `yaml:"specials"`
}

// Default returns the built-in restaurant menu.
func Default() *Catalog {
	c, err := Parse(defaultMenu)
	if err != nil {
		panic(fmt.Sprintf("embedded menu is invalid: %v", err))
	}
	return c
}

// Load reads a menu YAML file; an empty path yields the built-in menu.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var doc fileMenu
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMenu, err)
	}

	c := &Catalog{
		items:    make([]Item, 0, len(doc.Items)),
		specials: make([]Item, 0, len(doc.Specials)),
		index:    make(map[string]Item, len(doc.Items)+len(doc.Specials)),
	}

	// Items are indexed before specials, so a special never shadows a menu item.
	add := func(dst *[]Item, seen map[string]bool, in fileItem) error {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return fmt.Errorf("%w: item name is empty", ErrInvalidMenu)
		}
		price, err := orderx.CentsFromFloat(in.Price)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidMenu, name, err)
		}
		key := normalize(name)
		if seen[key] {
			return fmt.Errorf("%w: duplicate item %q", ErrInvalidMenu, name)
		}
		seen[key] = true
		item := Item{
			Name:        name,
			Price:       price,
			Description: strings.TrimSpace(in.Description),
			Dietary:     strings.TrimSpace(in.Dietary),
		}
		if _, shadowed := c.index[key]; !shadowed {
			c.index[key] = item
		}
		*dst = append(*dst, item)
		return nil
	}

	seenItems := make(map[string]bool, len(doc.Items))
	for _, in := range doc.Items {
		if err := add(&c.items, seenItems, in); err != nil {
			return nil, err
		}
	}
	seenSpecials := make(map[string]bool, len(doc.Specials))
	for _, in := range doc.Specials {
		if err := add(&c.specials, seenSpecials, in); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Lookup matches the full name case-insensitively, main menu before specials.
func (c *Catalog) Lookup(name string) (Item, error) {
	item, ok := c.index[normalize(name)]
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", contractx.ErrNotFound, strings.TrimSpace(name))
	}
	return item, nil
}

func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

func (c *Catalog) Specials() []Item {
	return append([]Item(nil), c.specials...)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
