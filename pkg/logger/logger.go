package logger

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger whose output is captured in an in-memory
// buffer, so the demo page can embed the log stream next to the chart.
type Logger struct {
	log *zap.Logger
	buf *bytes.Buffer
}

func New() *Logger {
	buf := &bytes.Buffer{}

	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(buf), zap.DebugLevel)

	return &Logger{
		log: zap.New(core),
		buf: buf,
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m"
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

var ansiRe = regexp.MustCompile(`\033\[(\d+)m`)

var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"36": "cyan",
}

// HTMLLogs renders the captured log buffer as HTML, converting ANSI
// color codes into styled spans.
func (l *Logger) HTMLLogs() string {
	input := l.buf.String()

	var result strings.Builder
	result.WriteString("<pre>")

	lastIndex := 0
	open := false
	for _, match := range ansiRe.FindAllStringIndex(input, -1) {
		start, end := match[0], match[1]
		if start > lastIndex {
			result.WriteString(input[lastIndex:start])
		}
		if open {
			result.WriteString("</span>")
			open = false
		}
		if color, ok := colorMap[input[start+2:end-1]]; ok {
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		}
		lastIndex = end
	}
	if lastIndex < len(input) {
		result.WriteString(input[lastIndex:])
	}
	if open {
		result.WriteString("</span>")
	}
	result.WriteString("</pre>")

	return result.String()
}

func (l *Logger) Clear() {
	l.buf.Reset()
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.log.Info(msg, fields...)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.log.Debug(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.log.Error(msg, fields...)
}
