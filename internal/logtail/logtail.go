package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
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
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return append([]string(nil), ring[:count]...), nil
	}
	lines := make([]string, 0, count)
	lines = append(lines, ring[next:]...)
	return append(lines, ring[:next]...), nil
}

// Entry is one line written by slog's text handler.
type Entry struct {
	Time    string
	Level   string
	Message string
	Attrs   []Attr
	Raw     string
}

// Attr is a key=value pair that followed the message.
type Attr struct {
	Key   string
	Value string
}

// Parse splits a slog text line into its parts. Lines that are not in
// key=value form come back with only Raw set.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	for _, kv := range splitPairs(line) {
		switch kv.Key {
		case "time":
			entry.Time = kv.Value
		case "level":
			entry.Level = kv.Value
		case "msg":
			entry.Message = kv.Value
		default:
			entry.Attrs = append(entry.Attrs, kv)
		}
	}
	if entry.Level == "" && entry.Message == "" {
		return Entry{Raw: line}
	}
	return entry
}

func splitPairs(line string) []Attr {
	var pairs []Attr
	rest := strings.TrimSpace(line)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 || strings.ContainsAny(rest[:eq], " \"") {
			return nil
		}
		key := rest[:eq]
		rest = rest[eq+1:]

		var value string
		if strings.HasPrefix(rest, `"`) {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil
			}
			value, _ = strconv.Unquote(quoted)
			rest = rest[len(quoted):]
		} else if sp := strings.IndexByte(rest, ' '); sp >= 0 {
			value, rest = rest[:sp], rest[sp:]
		} else {
			value, rest = rest, ""
		}
		pairs = append(pairs, Attr{Key: key, Value: value})
		rest = strings.TrimLeft(rest, " ")
	}
	return pairs
}
