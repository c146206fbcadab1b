package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/rivo/tview"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// LogMessage represents a single log entry
type LogMessage struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

// LogManager keeps the most recent panel messages and mirrors them into a
// text view.
type LogManager struct {
	textView    *tview.TextView
	messages    []LogMessage
	maxMessages int
	mu          sync.Mutex
	now         func() time.Time
}

// NewLogManager creates a log manager holding at most maxMessages entries.
func NewLogManager(maxMessages int) *LogManager {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(maxMessages)
	textView.SetBorder(true).SetTitle(" Events ")

	return &LogManager{
		textView:    textView,
		messages:    make([]LogMessage, 0, maxMessages),
		maxMessages: maxMessages,
		now:         time.Now,
	}
}

// View returns the tview component
func (lm *LogManager) View() tview.Primitive {
	return lm.textView
}

// Add appends a message. Safe to call from any goroutine; the caller is
// responsible for scheduling a redraw.
func (lm *LogManager) Add(level LogLevel, format string, args ...any) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.messages = append(lm.messages, LogMessage{
		Time:    lm.now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
	if len(lm.messages) > lm.maxMessages {
		lm.messages = lm.messages[len(lm.messages)-lm.maxMessages:]
	}

	lm.textView.SetText(lm.render())
	lm.textView.ScrollToEnd()
}

// Messages returns a copy of the retained messages, oldest first.
func (lm *LogManager) Messages() []LogMessage {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return append([]LogMessage(nil), lm.messages...)
}

func (lm *LogManager) render() string {
	var text string
	for _, msg := range lm.messages {
		text += fmt.Sprintf("[gray]%s[-] [%s]%-5s[-] %s\n",
			msg.Time.Format("15:04:05"), levelColor(msg.Level), msg.Level, msg.Message)
	}
	return text
}

func levelColor(level LogLevel) string {
	switch level {
	case LogLevelDebug:
		return "gray"
	case LogLevelWarn:
		return "yellow"
	case LogLevelError:
		return "red"
	default:
		return "white"
	}
}
