package kinvey

// Logger is the leveled log sink the client reports to. It is side-effect
// only and never affects control flow.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NoopLogger discards all log output. It is the default when no logger is
// configured.
type NoopLogger struct{}

func (NoopLogger) Debug(msg string, fields map[string]interface{}) {}
func (NoopLogger) Info(msg string, fields map[string]interface{})  {}
func (NoopLogger) Warn(msg string, fields map[string]interface{})  {}
func (NoopLogger) Error(msg string, fields map[string]interface{}) {}
