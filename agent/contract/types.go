package contract

// ToolRequest is one tool invocation requested by the model, as received.
type ToolRequest struct {
	CallID string `json:"call_id"`
	Tool   string `json:"tool"`
	Args   string `json:"args,omitempty"`
}

// ToolResult is the text fed back to the model for a ToolRequest.
type ToolResult struct {
	CallID string `json:"call_id"`
	Tool   string `json:"tool"`
	Result string `json:"result"`
	Failed bool   `json:"failed,omitempty"`
}
