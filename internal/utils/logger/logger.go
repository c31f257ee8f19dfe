package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"
)

type level struct {
	name  string
	emoji string
	print func(format string, a ...interface{})
}

var (
	levelInfo    = level{"INFO", "ℹ️ ", color.Cyan}
	levelSuccess = level{"SUCCESS", "✅ ", color.Green}
	levelWarn    = level{"WARN", "⚠️ ", color.Yellow}
	levelError   = level{"ERROR", "❌ ", color.Red}
	levelDebug   = level{"DEBUG", "🔍 ", color.Magenta}
)

// Logger is a small leveled console logger scoped to one service name.
type Logger struct {
	serviceName string
}

func New(serviceName string) *Logger {
	return &Logger{serviceName: serviceName}
}

func (l *Logger) emit(lv level, msg string, args ...interface{}) {
	_, file, line, _ := runtime.Caller(2)
	lv.print("%s | %s | %s | %s:%d | %s | %s",
		lv.emoji,
		time.Now().Format("2006-01-02 15:04:05"),
		lv.name,
		filepath.Base(file),
		line,
		l.serviceName,
		fmt.Sprintf(msg, args...),
	)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.emit(levelInfo, msg, args...)
}

func (l *Logger) Success(msg string, args ...interface{}) {
	l.emit(levelSuccess, msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.emit(levelWarn, msg, args...)
}

// Error logs the message and returns it wrapped around err so callers can
// log and propagate in one statement.
func (l *Logger) Error(msg string, err error, args ...interface{}) error {
	l.emit(levelError, msg+": %v", append(args, err)...)
	return fmt.Errorf("%s: %w", msg, err)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.emit(levelDebug, msg, args...)
}
