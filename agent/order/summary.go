package order

import "fmt"

// Line is one unit of a purchased item. Price is frozen at add time.
type Line struct {
	Name  string `json:"name"`
	Price Cents  `json:"price"`
}

// Group is a count of identical lines in first-appearance order.
type Group struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary is the grouped view of an order returned to callers.
type Summary struct {
	Items  []string `json:"items"`
	Groups []Group  `json:"-"`
	Total  Cents    `json:"total"`
}

// Summarize groups lines by display name and sums their prices.
func Summarize(lines []Line) Summary {
	out := Summary{
		Items:  make([]string, 0, len(lines)),
		Groups: make([]Group, 0, len(lines)),
	}

	index := make(map[string]int, len(lines))
	for _, line := range lines {
		out.Total += line.Price
		if i, ok := index[line.Name]; ok {
			out.Groups[i].Count++
			continue
		}
		index[line.Name] = len(out.Groups)
		out.Groups = append(out.Groups, Group{Name: line.Name, Count: 1})
	}

	for _, g := range out.Groups {
		out.Items = append(out.Items, fmt.Sprintf("%d x %s", g.Count, g.Name))
	}
	return out
}

// IsEmpty reports whether the order has no lines.
func (s Summary) IsEmpty() bool {
	return len(s.Groups) == 0
}
