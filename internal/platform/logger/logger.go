package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error

	off
)

var levelNames = [...]string{Debug: "debug", Info: "info", Warn: "warn", Error: "error"}

// ParseLevel acepta debug|info|warn|warning|error; cualquier otra cosa es info.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return Warn
	}
	for lvl, name := range levelNames {
		if s == name {
			return Level(lvl)
		}
	}
	return Info
}

func (l Level) String() string {
	if l >= Debug && l <= Error {
		return levelNames[l]
	}
	return "info"
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Logger es lo que usan main, middlewares y servicios.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string

	Out io.Writer        // nil => stdout
	Now func() time.Time // nil => time.Now
}

// lineLogger escribe una línea por entrada: ts, level, msg, app y luego
// los campos en orden alfabético.
type lineLogger struct {
	mu     sync.Mutex
	out    io.Writer
	now    func() time.Time
	level  Level
	format Format
	app    string
}

func New(opts Options) Logger {
	l := &lineLogger{
		out:    opts.Out,
		now:    opts.Now,
		level:  opts.Level,
		format: opts.Format,
		app:    strings.TrimSpace(opts.App),
	}
	if l.out == nil {
		l.out = os.Stdout
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.format == "" {
		l.format = FormatText
	}
	return l
}

// NewFromStrings arma el logger con los valores crudos de config.
func NewFromStrings(level, format, app string) Logger {
	return New(Options{
		Level:  ParseLevel(level),
		Format: ParseFormat(format),
		App:    app,
	})
}

// Discard descarta todo; útil en tests.
func Discard() Logger {
	return New(Options{Level: off, Out: io.Discard})
}

func (l *lineLogger) Debug(msg string, fields map[string]any) { l.write(Debug, msg, fields) }
func (l *lineLogger) Info(msg string, fields map[string]any)  { l.write(Info, msg, fields) }
func (l *lineLogger) Warn(msg string, fields map[string]any)  { l.write(Warn, msg, fields) }
func (l *lineLogger) Error(msg string, fields map[string]any) { l.write(Error, msg, fields) }

type kv struct {
	key string
	val any
}

func (l *lineLogger) write(lvl Level, msg string, fields map[string]any) {
	if lvl < l.level {
		return
	}

	pairs := []kv{
		{"ts", l.now().UTC().Format(time.RFC3339Nano)},
		{"level", lvl.String()},
		{"msg", msg},
	}
	if l.app != "" {
		pairs = append(pairs, kv{"app", l.app})
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		switch strings.TrimSpace(k) {
		case "", "ts", "level", "msg", "app":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pairs = append(pairs, kv{k, fields[k]})
	}

	var line string
	if l.format == FormatJSON {
		line = encodeJSON(pairs)
	} else {
		line = encodeText(pairs)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, line+"\n")
}

func encodeText(pairs []kv) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte(' ')
		}
		v := fmt.Sprint(p.val)
		if strings.ContainsAny(v, " \t\"=") || v == "" {
			v = strconv.Quote(v)
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(v)
	}
	return b.String()
}

// encodeJSON conserva el orden de pairs (un map lo perdería).
func encodeJSON(pairs []kv) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte(',')
		}
		k, _ := json.Marshal(p.key)
		v, err := json.Marshal(p.val)
		if err != nil {
			v, _ = json.Marshal(fmt.Sprint(p.val))
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.String()
}
