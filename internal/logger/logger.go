package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents the different logging levels
type Level int

const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string log level, defaulting to INFO
func ParseLevel(level string) Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger represents a configurable leveled logger instance
type Logger struct {
	level    Level
	debugLog *log.Logger
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
}

// Global logger instance
var globalLogger *Logger

// Init initializes the global logger with the specified level and output
func Init(level Level, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}

	globalLogger = &Logger{
		level:    level,
		debugLog: log.New(output, fmt.Sprintf("[%s] ", DEBUG), log.LstdFlags),
		infoLog:  log.New(output, fmt.Sprintf("[%s] ", INFO), log.LstdFlags),
		warnLog:  log.New(output, fmt.Sprintf("[%s] ", WARNING), log.LstdFlags),
		errorLog: log.New(output, fmt.Sprintf("[%s] ", ERROR), log.LstdFlags),
	}
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	if globalLogger == nil {
		Init(INFO, os.Stderr)
	}
	return globalLogger
}

// SetLevel changes the log level of the global logger
func SetLevel(level Level) {
	if globalLogger != nil {
		globalLogger.level = level
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level <= DEBUG {
		l.debugLog.Printf(format, v...)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	if l.level <= INFO {
		l.infoLog.Printf(format, v...)
	}
}

// Warning logs a warning message
func (l *Logger) Warning(format string, v ...interface{}) {
	if l.level <= WARNING {
		l.warnLog.Printf(format, v...)
	}
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	if l.level <= ERROR {
		l.errorLog.Printf(format, v...)
	}
}

// Global convenience functions
func Debug(format string, v ...interface{}) {
	GetLogger().Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	GetLogger().Info(format, v...)
}

func Warning(format string, v ...interface{}) {
	GetLogger().Warning(format, v...)
}

func Error(format string, v ...interface{}) {
	GetLogger().Error(format, v...)
}
