package utils

import (
	"log"
	"strings"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode      bool
	CurrentLevel   LogLevel = LevelWarn
	ShowRaylibInfo bool
	ShowDebugUI    bool
	SilentMode     bool
)

const (
	ansiReset   = "\033[0m"
	ansiMagenta = "\033[35m"
)

var levelStyles = [...]struct {
	name  string
	color string
}{
	LevelDebug: {"DEBUG", "\033[36m"},
	LevelInfo:  {"INFO", "\033[34m"},
	LevelWarn:  {"WARN", "\033[33m"},
	LevelError: {"ERROR", "\033[31m"},
}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelStyles) {
		return "UNKNOWN"
	}
	return levelStyles[l].name
}

// ParseLevel maps a -log flag value to a level. Unknown names fall back to warn.
func ParseLevel(name string) LogLevel {
	for lvl, style := range levelStyles {
		if strings.EqualFold(name, style.name) {
			return LogLevel(lvl)
		}
	}
	return LevelWarn
}

func logAt(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}
	emit(level, format, v...)
}

func emit(level LogLevel, format string, v ...interface{}) {
	style := levelStyles[level]
	log.Printf(style.color+"["+style.name+"]"+ansiReset+" "+format, v...)
}

func Debug(format string, v ...interface{}) { logAt(LevelDebug, format, v...) }
func Info(format string, v ...interface{})  { logAt(LevelInfo, format, v...) }
func Warn(format string, v ...interface{})  { logAt(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logAt(LevelError, format, v...) }

// RaylibLogCallback is installed with rl.SetTraceLogCallback. raylib levels:
// 1 trace, 2 debug, 3 info, 4 warning, 5 error, 6 fatal.
func RaylibLogCallback(level int, text string) {
	const format = ansiMagenta + "[RAYLIB]" + ansiReset + " %s"
	switch {
	case level <= 2:
		logAt(LevelDebug, format, text)
	case level == 3:
		if ShowRaylibInfo {
			emit(LevelInfo, format, text)
		} else {
			logAt(LevelInfo, format, text)
		}
	case level == 4:
		logAt(LevelWarn, format, text)
	default:
		logAt(LevelError, format, text)
	}
}
