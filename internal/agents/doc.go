// Package agents implements the three pipeline stages: the classifier,
// the RAG responder, and the escalation handler. Each stage owns its own
// failure policy; only the responder is allowed to surface an error, and
// the engine converts that into the escalation branch.
package agents
