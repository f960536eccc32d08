package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldTxID        = "transaction_id"
	FieldTxType      = "transaction_type"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldCurrency    = "currency"
	FieldDarkMode    = "dark_mode"
	FieldCollection  = "collection_size"
	FieldFilterQuery = "filter_query"
)

// Components defines standard component names
const (
	ComponentApp   = "app"
	ComponentHTTP  = "http"
	ComponentStore = "store"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpDelete   = "delete"
	OpLoad     = "load"
	OpList     = "list"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
