package constants

const (
	AppName            = "timegrid"
	DefaultKeyringUser = "export-connection"
	DefaultConfigPath  = "~/.config/timegrid/config.json"
	DefaultLogDir      = "~/.config/timegrid"
	Version            = "v0.3.0"

	// DefaultCorner is the header shown above the day column
	DefaultCorner = "DAY / TIME"

	// SlotTimeFormat is the clock format used in slot labels (HH:MM, 12-hour without meridiem)
	SlotTimeFormat = "15:04"

	// SlotLabelSeparator splits a slot label into start and end times
	SlotLabelSeparator = "-"

	// Environment variables
	EnvConnection = "TIMEGRID_DB_CONNECTION"

	// Log rotation
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "timegrid-"
	BackupFileSuffix = ".db"

	// Output formats
	FormatHTML = "html"
	FormatJSON = "json"
	FormatCSV  = "csv"
)
