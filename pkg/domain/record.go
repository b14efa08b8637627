package domain

import "time"

// Record is the outbound serialization of a completed workflow state,
// plus the opaque session id and a generation timestamp. This is what
// transports (HTTP, MCP, CLI) hand back to callers and what transcript
// stores persist.
type Record struct {
	Response           string    `json:"response"`
	Category           Category  `json:"category"`
	Confidence         float64   `json:"confidence"`
	Reasoning          string    `json:"reasoning"`
	NodeExecuted       Node      `json:"node_executed"`
	RequiresEscalation bool      `json:"requires_escalation"`
	RetrievedPassages  []string  `json:"retrieved_passages,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
	SessionID          string    `json:"session_id,omitempty"`
}

// NewRecord assembles a Record from a completed state. The session id is
// passed through untouched; the core never interprets it.
func NewRecord(s *State, sessionID string) *Record {
	return &Record{
		Response:           s.Response,
		Category:           s.Category,
		Confidence:         s.Confidence,
		Reasoning:          s.Reasoning,
		NodeExecuted:       s.NodeExecuted,
		RequiresEscalation: s.RequiresEscalation,
		RetrievedPassages:  s.Passages,
		Timestamp:          time.Now().UTC(),
		SessionID:          sessionID,
	}
}
