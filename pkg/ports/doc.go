// Package ports defines the driven-side interfaces of the Canopy core.
//
// The pipeline depends on two non-deterministic collaborators, a text
// completion service and a passage retriever, plus an optional transcript
// store. All three are expressed as narrow interfaces so the engine can be
// exercised with deterministic doubles in tests and wired to real backends
// (OpenAI, bleve, Redis) by the process root.
package ports
