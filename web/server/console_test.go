package server

import (
	"testing"
	"time"
)

func TestWebConsole_BasicLogging(t *testing.T) {
	events := make(chan StreamMessage, 10)
	console := NewWebConsole("test-render-123", events)

	console.Infof("Test log message")

	select {
	case msg := <-events:
		if msg.Type != "console" {
			t.Fatalf("Expected console message, got type '%s'", msg.Type)
		}
		if msg.Console.Message != "Test log message" {
			t.Errorf("Expected message 'Test log message', got '%s'", msg.Console.Message)
		}
		if msg.Console.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Console.Level)
		}
		if time.Since(msg.Console.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Console.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebConsole_Levels(t *testing.T) {
	events := make(chan StreamMessage, 10)
	console := NewWebConsole("test-render-456", events)

	console.Infof("one")
	console.Warningf("two")
	console.Errorf("three")

	expected := []string{"info", "warning", "error"}
	for i, level := range expected {
		msg := <-events
		if msg.Console.Level != level {
			t.Errorf("Message %d: expected level '%s', got '%s'", i, level, msg.Console.Level)
		}
	}
}

func TestWebConsole_ChannelFull(t *testing.T) {
	events := make(chan StreamMessage, 1)
	console := NewWebConsole("test-render-789", events)

	console.Infof("Message 1")

	// Must not block once the channel is full
	console.Infof("Message 2")
	console.Infof("Message 3")

	msg := <-events
	if msg.Console.Message != "Message 1" {
		t.Errorf("Expected first message to be kept, got '%s'", msg.Console.Message)
	}
}

func TestWebConsole_NilChannel(t *testing.T) {
	console := NewWebConsole("test-render-nil", nil)

	// This should not panic
	console.Infof("Test message with nil channel")
}

func TestWebConsole_FormattedMessages(t *testing.T) {
	events := make(chan StreamMessage, 10)
	console := NewWebConsole("test-render-format", events)

	console.Infof("Loading %s with %d spheres...", "marbles.yaml", 12)

	select {
	case msg := <-events:
		expected := "Loading marbles.yaml with 12 spheres..."
		if msg.Console.Message != expected {
			t.Errorf("Expected formatted message '%s', got '%s'", expected, msg.Console.Message)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for formatted message")
	}
}
