package logger

// Log implements the logger config.
type Log struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `mapstructure:"level"`

	// File receives the log output. Empty discards all logs; the UI
	// owns the terminal, so there is no console writer.
	File string `mapstructure:"file"`

	MaxSize    int `mapstructure:"max_size"` // megabytes per file
	MaxBackups int `mapstructure:"max_backups"`
	MaxAge     int `mapstructure:"max_age"` // days

	ReportCaller bool `mapstructure:"report_caller"`
}
