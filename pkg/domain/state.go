package domain

// Stage tracks the single-pass progression of one query through the engine.
// There are no cycles: INIT -> CLASSIFIED -> {RESPONDED | ESCALATED} -> DONE.
type Stage string

const (
	StageInit       Stage = "init"
	StageClassified Stage = "classified"
	StageResponded  Stage = "responded"
	StageEscalated  Stage = "escalated"
	StageDone       Stage = "done"
)

// Node identifies which pipeline node produced the final response.
type Node string

const (
	NodeRAGResponder Node = "rag_responder"
	NodeEscalation   Node = "escalation"
)

// State is the workflow record threaded through one routing pass.
// Each field is written exactly once by its owning stage and never mutated
// afterwards. A State is private to its run; no locking is needed.
type State struct {
	// Query is the trimmed user query. Set at entry, immutable.
	Query string `json:"query"`

	// Category, Confidence and Reasoning are set atomically by the
	// classifier stage.
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`

	// Passages holds the retrieved context in relevance order.
	// Empty unless the responder ran.
	Passages []string `json:"retrieved_passages"`

	// Response is the final answer text. Exactly one of the responder or
	// the escalation handler writes it.
	Response string `json:"response"`

	// NodeExecuted records which terminal branch ran.
	NodeExecuted Node `json:"node_executed"`

	// RequiresEscalation is true iff the escalation branch was taken,
	// whatever the trigger (unhandled category, low confidence, or a
	// responder failure).
	RequiresEscalation bool `json:"requires_escalation"`

	// Stage is engine-internal progress tracking.
	Stage Stage `json:"-"`
}

// NewState creates a fresh state at the entry stage.
func NewState(query string) *State {
	return &State{
		Query:    query,
		Passages: []string{},
		Stage:    StageInit,
	}
}

// Consistent reports whether the terminal invariants hold:
// a non-empty response and NodeExecuted/RequiresEscalation agreement.
func (s *State) Consistent() bool {
	if s.Response == "" {
		return false
	}
	return (s.NodeExecuted == NodeEscalation) == s.RequiresEscalation
}
