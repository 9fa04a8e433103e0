package llm

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds sampling parameters for chat completion requests.
type ChatParams struct {
	// Model overrides the client's default model when non-empty.
	Model string

	// MaxTokens caps the number of generated tokens. Zero means no cap.
	MaxTokens int

	// Temperature controls the randomness of the output.
	Temperature float32
}
