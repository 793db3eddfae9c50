package server

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string                 `json:"message"`
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"` // "debug", "info", "warning", "error"
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// ConsoleHook forwards log entries of a render to the web console
type ConsoleHook struct {
	send func(ConsoleMessage) bool
}

// NewConsoleHook creates a hook calling send for every entry. send must not
// block; it reports whether the message was delivered.
func NewConsoleHook(send func(ConsoleMessage) bool) *ConsoleHook {
	return &ConsoleHook{send: send}
}

// Levels implements logrus.Hook
func (h *ConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook
func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	var fields map[string]interface{}
	if len(entry.Data) > 0 {
		fields = make(map[string]interface{}, len(entry.Data))
		for k, v := range entry.Data {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			fields[k] = v
		}
	}
	h.send(ConsoleMessage{
		Message:   entry.Message,
		Timestamp: entry.Time,
		Level:     entry.Level.String(),
		Fields:    fields,
	})
	return nil
}

// newRenderLogger returns a logger that only reports to the web console
func newRenderLogger(renderID string, level logrus.Level, send func(ConsoleMessage) bool) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(level)
	logger.AddHook(NewConsoleHook(send))
	return logger.WithField("render", renderID)
}
