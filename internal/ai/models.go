package ai

import "voyage/internal/itinerary"

// Task labels a provider call for logging.
type Task string

const (
	TaskGenerate Task = "generate"
	TaskRefine   Task = "refine"
)

// StructuredRequest is one structured-output call.
type StructuredRequest struct {
	Task Task

	// SystemPrompt carries the standing instructions for the task.
	SystemPrompt string

	// UserPrompt is the per-call text (the trip request, or the current
	// itinerary plus the change request).
	UserPrompt string

	// Schema is the required output shape. Assigned fields are left out of
	// what the provider sees.
	Schema itinerary.Field
}
