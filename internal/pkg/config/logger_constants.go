package config

// Log level constants
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Log type constants
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Console output constants. Stream commands write ciphertext to stdout, so the CLI logs to stderr.
const (
	LogOutputStdout = "stdout"
	LogOutputStderr = "stderr"
)
