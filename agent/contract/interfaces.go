package contract

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Gateway is the narrow view of the language model the orchestrator depends on.
// A nil tools slice asks for a plain completion.
type Gateway interface {
	Complete(ctx context.Context, messages []*schema.Message, tools []*schema.ToolInfo) (*schema.Message, error)
}
