package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, carried on the context logger through a call chain.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldRunID identifies one batch run across all of its sites
	FieldRunID = "run_id"

	// FieldSite is the site slug being processed
	FieldSite = "site"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldProvider is the search provider name
	FieldProvider = "provider"

	// FieldQuery is the free-text query being run
	FieldQuery = "query"
)

// Metric fields, attached to single entries for aggregation.
const (
	FieldDurationMs = "duration_ms"
	FieldCount      = "count"
	FieldSize       = "size"
	FieldStatus     = "status"
	FieldScore      = "score"
	FieldAttempts   = "attempts"
)
