// Package domain contains the core types of the Canopy support pipeline:
// the per-query workflow state, the category and route enums, the
// classification result, and the lifecycle events emitted by the engine.
//
// Types here carry no behavior beyond construction and small helpers.
// All orchestration logic lives in internal/runtime.
package domain
