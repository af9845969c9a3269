package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/orderbot.txt
	orderBotRaw string

	//go:embed template/greeting.txt
	greetingRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	OrderBot string
	Greeting string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		OrderBot: strings.TrimSpace(orderBotRaw),
		Greeting: strings.TrimSpace(greetingRaw),
	}
}
