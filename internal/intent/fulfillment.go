// Package intent implements the conversational-agent side of the backend:
// the fulfillment payload types, the canned per-locale replies, the intent
// resolver and the reservation quote engine.  Everything here is free of
// direct I/O except the quote engine, which reads shows and hands off email
// events through small interfaces.
package intent

import "fmt"

// Response is the fulfillment reply returned to the conversational agent.
// Exactly one of FulfillmentText or FulfillmentMessages is populated.
type Response struct {
	FulfillmentText     string    `json:"fulfillmentText,omitempty"`
	FulfillmentMessages []Message `json:"fulfillmentMessages,omitempty"`
}

// Message is one fulfillment message: either a plain text block or a rich
// content payload.
type Message struct {
	Text    *Text        `json:"text,omitempty"`
	Payload *RichPayload `json:"payload,omitempty"`
}

// Text wraps the agent's text block shape.
type Text struct {
	Text []string `json:"text"`
}

// RichPayload carries rich content blocks grouped into columns.
type RichPayload struct {
	RichContent [][]RichBlock `json:"richContent"`
}

// RichBlock is a single rich content element.  Type is one of "chips",
// "list" or "divider"; the remaining fields apply per type.
type RichBlock struct {
	Type     string         `json:"type"`
	Options  []ChipOption   `json:"options,omitempty"`
	Title    string         `json:"title,omitempty"`
	Subtitle string         `json:"subtitle,omitempty"`
	Event    *FollowupEvent `json:"event,omitempty"`
}

// ChipOption is one tappable chip.
type ChipOption struct {
	Text string `json:"text"`
}

// FollowupEvent names the event fired when a list item is selected, with
// its parameters (the ticket-type label for show list items).
type FollowupEvent struct {
	Name       string            `json:"name"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// TextResponse builds a plain fulfillmentText reply.
func TextResponse(format string, args ...any) *Response {
	return &Response{FulfillmentText: fmt.Sprintf(format, args...)}
}

// ChipsResponse builds a text message followed by one row of chips.
func ChipsResponse(text string, chips ...string) *Response {
	options := make([]ChipOption, 0, len(chips))
	for _, chip := range chips {
		options = append(options, ChipOption{Text: chip})
	}
	return &Response{
		FulfillmentMessages: []Message{
			{Text: &Text{Text: []string{text}}},
			{Payload: &RichPayload{
				RichContent: [][]RichBlock{{
					{Type: "chips", Options: options},
				}},
			}},
		},
	}
}
