package interfaces

// Logger is the structured logger handed to services and middleware.
// Fields are flattened into the log entry:
//
//	logger.Warn("Render cache read failed", map[string]interface{}{
//		"key":   key,
//		"error": err.Error(),
//	})
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
