package log

// Common field names for structured logging
const (
	FieldComponent        = "component"
	FieldRequestID        = "request_id"
	FieldClientIP         = "client_ip"
	FieldMethod           = "method"
	FieldPath             = "path"
	FieldStatusCode       = "status_code"
	FieldDuration         = "duration_ms"
	FieldSuccess          = "success"
	FieldError            = "error"
	FieldOperation        = "operation"
	FieldUserID           = "user_id"
	FieldUsername         = "username"
	FieldGoalID           = "goal_id"
	FieldCategory         = "category"
	FieldCurrency         = "currency"
	FieldAmount           = "amount"
	FieldTransactionCount = "transaction_count"
	FieldImported         = "imported"
	FieldSkipped          = "skipped"
	FieldExportID         = "export_id"
	FieldBackend          = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentUsers   = "users"
	ComponentTxns    = "transactions"
	ComponentGoals   = "goals"
	ComponentReports = "reports"
	ComponentAI      = "ai"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentStorage = "storage"
	ComponentExport  = "export"
)

// Operations defines standard operation names
const (
	OpRegister = "register"
	OpLogin    = "login"
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpImport   = "import"
	OpExport   = "export"
	OpSuggest  = "suggest"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
