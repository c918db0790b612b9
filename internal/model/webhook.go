package model

// WebhookRequest is the inbound payload posted by the conversational agent.
// Only the intent display name and the parameter map are consumed; the agent
// sends plenty of other fields which are ignored on purpose.  The payload is
// ephemeral and never persisted.
type WebhookRequest struct {
	QueryResult QueryResult `json:"queryResult"`
}

// QueryResult carries the resolved intent and its structured parameters.
// Parameter values are heterogeneous (the agent sends numbers as float64 and
// everything else as strings), so consumers go through the typed accessors in
// the intent package rather than asserting directly.
type QueryResult struct {
	Intent     IntentInfo     `json:"intent"`
	Parameters map[string]any `json:"parameters"`
}

// IntentInfo names the matched intent.  DisplayName is the dispatch key.
type IntentInfo struct {
	DisplayName string `json:"displayName"`
}

// IntentName returns the dispatch key, empty when the agent sent none.
func (r *WebhookRequest) IntentName() string {
	return r.QueryResult.Intent.DisplayName
}

// Parameters returns the intent parameter map, never nil.
func (r *WebhookRequest) Parameters() map[string]any {
	if r.QueryResult.Parameters == nil {
		return map[string]any{}
	}
	return r.QueryResult.Parameters
}
