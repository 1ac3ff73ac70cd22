package server

import (
	"fmt"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebConsole forwards log lines for one render to the client that requested it, and to the
// server log
type WebConsole struct {
	renderID string
	events   chan<- StreamMessage
}

// NewWebConsole creates a console for a specific render
func NewWebConsole(renderID string, events chan<- StreamMessage) *WebConsole {
	return &WebConsole{
		renderID: renderID,
		events:   events,
	}
}

// Infof logs an informational message
func (wc *WebConsole) Infof(format string, args ...interface{}) {
	wc.send("info", format, args...)
}

// Warningf logs a warning
func (wc *WebConsole) Warningf(format string, args ...interface{}) {
	wc.send("warning", format, args...)
}

// Errorf logs an error
func (wc *WebConsole) Errorf(format string, args ...interface{}) {
	wc.send("error", format, args...)
}

func (wc *WebConsole) send(level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	switch level {
	case "error":
		logger.Errorf("[%s] %s", wc.renderID, message)
	case "warning":
		logger.Warningf("[%s] %s", wc.renderID, message)
	default:
		logger.Infof("[%s] %s", wc.renderID, message)
	}

	if wc.events == nil {
		return
	}

	// Never block the render on a slow client
	select {
	case wc.events <- StreamMessage{
		Type: "console",
		Console: &ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     level,
		},
	}:
	default:
	}
}
