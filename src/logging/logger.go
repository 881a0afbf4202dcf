// Package logging is the small leveled logger shared by the comparison tools.
// Everything goes to stderr so stdout stays free for the markdown summary.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{LevelDebug: "DEBUG", LevelInfo: "INFO", LevelWarn: "WARN", LevelError: "ERROR"}

// String is the lowercase name SetLogLevel accepts.
func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("level(%d)", int32(l))
	}
	return strings.ToLower(levelTags[l])
}

var currentLevel atomic.Int32

var baseLogger = log.New(os.Stderr, "", log.Ltime|log.Lmsgprefix)

func init() { currentLevel.Store(int32(LevelInfo)) }

// SetLogLevel parses and sets the global log level. It reports whether s named a known level;
// unknown names leave the level untouched. "warning" is accepted for warn.
func SetLogLevel(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	for l := LevelDebug; l <= LevelError; l++ {
		if l.String() == s {
			currentLevel.Store(int32(l))
			return true
		}
	}
	return false
}

// GetLogLevel returns the current global log level.
func GetLogLevel() LogLevel { return LogLevel(currentLevel.Load()) }

// SetTool prefixes every line with the tool name, e.g. "gengraph: [WARN] ...".
func SetTool(name string) {
	if name == "" {
		baseLogger.SetPrefix("")
		return
	}
	baseLogger.SetPrefix(name + ": ")
}

// SetOutput redirects log lines and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := baseLogger.Writer()
	baseLogger.SetOutput(w)
	return prev
}

func logf(l LogLevel, format string, args ...any) {
	if GetLogLevel() > l {
		return
	}
	msg := format
	// puzzle titles can carry literal % characters
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	baseLogger.Printf("[%s] %s", levelTags[l], msg)
}

func Debugf(format string, a ...any) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...any)  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...any)  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...any) { logf(LevelError, format, a...) }

// TimeTrack logs how long a phase took at debug level. Use as `defer TimeTrack(time.Now(), "load")`.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start).Round(time.Millisecond))
}
