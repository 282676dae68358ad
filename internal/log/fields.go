package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldUserAgent     = "user_agent"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldYear          = "year"
	FieldMonth         = "month"
	FieldCostID        = "cost_id"
	FieldSum           = "sum"
	FieldCurrency      = "currency"
	FieldCategory      = "category"
	FieldRatesURL      = "rates_url"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentCost     = "cost"
	ComponentStorage  = "storage"
	ComponentRates    = "rates"
	ComponentReports  = "reports"
	ComponentSettings = "settings"
	ComponentEvents   = "events"
)
