package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one CLI invocation across all of its log lines.
	FieldRunID = "run_id"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldFile is the corpus file a log line refers to.
	FieldFile = "file"
	// FieldSlot is the zero-based index of a scrambled source/hypothesis pair.
	FieldSlot = "slot"
	// FieldCluster is the zero-based cluster ID.
	FieldCluster = "cluster"
	// FieldLines is a line count.
	FieldLines = "lines"
)
