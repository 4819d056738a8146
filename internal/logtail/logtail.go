package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return slices.Clone(ring[:count]), nil
	}
	return append(slices.Clone(ring[idx:]), ring[:idx]...), nil
}

// Keys written by the JSON encoder in internal/logging.
const (
	timeKey   = "timestamp"
	levelKey  = "level"
	nameKey   = "logger"
	msgKey    = "message"
	callerKey = "caller"
)

// Format turns one JSON log entry into a single readable line:
//
//	2026-10-16T09:14:02.120Z WARN  [store] refresh failed error="..."
//
// Extra fields follow in key order. Lines that are not JSON objects are
// returned unchanged.
func Format(line string) string {
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return line
	}

	var b strings.Builder
	if ts, ok := entry[timeKey].(string); ok {
		b.WriteString(ts)
		b.WriteByte(' ')
	}
	if lvl, ok := entry[levelKey].(string); ok {
		fmt.Fprintf(&b, "%-5s ", strings.ToUpper(lvl))
	}
	if name, ok := entry[nameKey].(string); ok && name != "" {
		fmt.Fprintf(&b, "[%s] ", name)
	}
	if msg, ok := entry[msgKey].(string); ok {
		b.WriteString(msg)
	}

	keys := make([]string, 0, len(entry))
	for k := range entry {
		switch k {
		case timeKey, levelKey, nameKey, msgKey, callerKey:
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, formatValue(entry[k]))
	}
	return strings.TrimRight(b.String(), " ")
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		if v == "" || strings.ContainsAny(v, " \t\"=") {
			return fmt.Sprintf("%q", v)
		}
		return v
	case float64, bool, nil:
		return fmt.Sprint(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}

// FormatLines applies Format to every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}
