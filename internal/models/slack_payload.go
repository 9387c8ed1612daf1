package models

// SlackMessagePayload represents the JSON payload sent to a Slack incoming webhook.
type SlackMessagePayload struct {
	Text    string       `json:"text"`              // Plain-text fallback shown in notifications
	Blocks  []SlackBlock `json:"blocks,omitempty"`  // Block Kit layout blocks
	Channel string       `json:"channel,omitempty"` // Override the webhook's default channel
}

// SlackBlock represents a single Block Kit layout block. Only the fields
// relevant to the block's type are populated.
type SlackBlock struct {
	Type     string            `json:"type"`               // "section", "divider" or "context"
	Text     *SlackTextObject  `json:"text,omitempty"`     // Body text for section blocks
	Elements []SlackTextObject `json:"elements,omitempty"` // Elements for context blocks
}

// SlackTextObject represents a Block Kit text composition object.
type SlackTextObject struct {
	Type string `json:"type"` // "mrkdwn" or "plain_text"
	Text string `json:"text"`
}

// NewSectionBlock creates a section block with mrkdwn body text.
func NewSectionBlock(text string) SlackBlock {
	return SlackBlock{
		Type: "section",
		Text: &SlackTextObject{Type: "mrkdwn", Text: text},
	}
}

// NewDividerBlock creates a divider block.
func NewDividerBlock() SlackBlock {
	return SlackBlock{Type: "divider"}
}

// NewContextBlock creates a context block with one mrkdwn element per text.
func NewContextBlock(texts ...string) SlackBlock {
	elements := make([]SlackTextObject, 0, len(texts))
	for _, text := range texts {
		elements = append(elements, SlackTextObject{Type: "mrkdwn", Text: text})
	}
	return SlackBlock{Type: "context", Elements: elements}
}
