package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ohler55/ojg/oj"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed diagnostic log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  []Field
	Raw     string
}

// Field is an extra key/value pair of an entry.
type Field struct {
	Key   string
	Value string
}

var reserved = map[string]bool{"ts": true, "level": true, "msg": true, "caller": true, "stacktrace": true, "logger": true}

// Parse decodes a zap JSON line. ok is false for anything else.
func Parse(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return Entry{Raw: line}, false
	}
	doc, err := oj.ParseString(trimmed)
	if err != nil {
		return Entry{Raw: line}, false
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return Entry{Raw: line}, false
	}

	e := Entry{Raw: line}
	e.Level = strings.ToUpper(asString(obj["level"]))
	e.Message = asString(obj["msg"])
	e.Time = parseTime(obj["ts"])

	keys := make([]string, 0, len(obj))
	for k := range obj {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		e.Fields = append(e.Fields, Field{Key: k, Value: asString(obj[k])})
	}
	return e, true
}

// Format renders a zap JSON line as "15:04:05 WARN message key=value".
// Lines that are not zap JSON are returned unchanged.
func Format(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Format("15:04:05"))
		b.WriteByte(' ')
	}
	if e.Level != "" {
		b.WriteString(e.Level)
		b.WriteByte(' ')
	}
	b.WriteString(e.Message)
	for _, f := range e.Fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.Value)
	}
	return b.String()
}

// FormatLines applies Format to each line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return oj.JSON(val)
	}
}

var timeLayouts = []string{
	"2006-01-02T15:04:05.000Z0700",
	time.RFC3339Nano,
	time.RFC3339,
}

func parseTime(v any) time.Time {
	switch val := v.(type) {
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t
			}
		}
	case float64:
		sec := int64(val)
		return time.Unix(sec, int64((val-float64(sec))*1e9))
	case int64:
		return time.Unix(val, 0)
	}
	return time.Time{}
}
