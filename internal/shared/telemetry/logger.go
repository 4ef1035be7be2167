package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
)

const (
	levelInfo int32 = iota
	levelWarn
	levelError
)

var (
	minLevel = atomic.NewInt32(levelInfo)
	writeMu  sync.Mutex
)

// SetLevel drops lines below level ("info", "warn" or "error"). Unknown values keep the
// current level and return false.
func SetLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info", "debug":
		minLevel.Store(levelInfo)
	case "warn", "warning":
		minLevel.Store(levelWarn)
	case "error":
		minLevel.Store(levelError)
	default:
		return false
	}
	return true
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write(levelInfo, "info", msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write(levelWarn, "warn", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write(levelError, "error", msg, fields)
}

func write(level int32, name, msg string, fields map[string]any) {
	if level < minLevel.Load() {
		return
	}
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		entry[k] = v
	}
	now := time.Now().UTC()
	entry["ts"] = now.Format(time.RFC3339Nano)
	entry["level"] = name
	entry["msg"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		data = fmt.Appendf(nil, `{"ts":%q,"level":"error","msg":"logger marshal failed","source_msg":%q,"err":%q}`,
			now.Format(time.RFC3339Nano), msg, err.Error())
	}
	writeMu.Lock()
	defer writeMu.Unlock()
	os.Stdout.Write(append(data, '\n'))
}
