package application

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// StructuredLogger emits one JSON object per log line. It writes to stderr
// so the stdio transport keeps stdout free for protocol traffic.
type StructuredLogger struct {
	logger *log.Logger
}

// NewStructuredLogger creates a new structured logger writing to stderr.
func NewStructuredLogger() *StructuredLogger {
	return NewStructuredLoggerTo(os.Stderr)
}

// NewStructuredLoggerTo creates a structured logger writing to the given sink.
func NewStructuredLoggerTo(w io.Writer) *StructuredLogger {
	return &StructuredLogger{
		logger: log.New(w, "", 0),
	}
}

// LogInfo logs an informational message with context.
func (l *StructuredLogger) LogInfo(message string, context map[string]interface{}) {
	l.logger.Println(l.buildLogEntry("INFO", message, nil, context))
}

// LogError logs an error message with context.
func (l *StructuredLogger) LogError(message string, err error, context map[string]interface{}) {
	l.logger.Println(l.buildLogEntry("ERROR", message, err, context))
}

// buildLogEntry constructs a structured log entry.
func (l *StructuredLogger) buildLogEntry(level, message string, err error, context map[string]interface{}) string {
	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     level,
		"message":   message,
	}

	if err != nil {
		entry["error"] = err.Error()
	}

	for k, v := range context {
		entry[k] = v
	}

	// Convert to JSON
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"level":"ERROR","message":"failed to marshal log entry","error":"%s"}`, err.Error())
	}

	return string(jsonData)
}
