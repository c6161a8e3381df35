package log

// Field names
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldEntryID   = "entry_id"
	FieldDate      = "date"
	FieldAmount    = "amount"
	FieldCount     = "count"
	FieldPath      = "path"
	FieldAddr      = "addr"
	FieldDuration  = "duration_ms"
	FieldFormat    = "format"
)

// Components
const (
	ComponentApp     = "app"
	ComponentStore   = "store"
	ComponentConfig  = "config"
	ComponentExport  = "export"
	ComponentDaemon  = "daemon"
	ComponentTUI     = "tui"
	ComponentMigrate = "migrate"
)

// Operations
const (
	OpAdd     = "add"
	OpDelete  = "delete"
	OpList    = "list"
	OpImport  = "import"
	OpExport  = "export"
	OpMigrate = "migrate"
	OpPoll    = "poll"
	OpStartup = "startup"
)
