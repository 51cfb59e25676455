package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JSONLStore is the reference Provider: two newline-delimited text files,
// append-only, linear-scan read. Durability and crash consistency are
// delegated to the filesystem; the load-bearing guarantee is that each
// append is a single write of one bounded line.
type JSONLStore struct {
	paths map[Log]string
}

func NewJSONLStore(eventsPath, diaryPath string) *JSONLStore {
	return &JSONLStore{
		paths: map[Log]string{
			LogEvents: eventsPath,
			LogDiary:  diaryPath,
		},
	}
}

func (s *JSONLStore) Init() error {
	for _, path := range s.paths {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return nil
}

// Load is a no-op: log files are created lazily on first append and a
// missing file reads as empty.
func (s *JSONLStore) Load() error {
	return nil
}

func (s *JSONLStore) Close() error {
	return nil
}

func (s *JSONLStore) path(log Log) (string, error) {
	path, ok := s.paths[log]
	if !ok {
		return "", fmt.Errorf("unknown log: %s", log)
	}
	return path, nil
}

func (s *JSONLStore) Append(log Log, line string) error {
	path, err := s.path(log)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open %s log: %w", log, err)
	}

	// One write per record; no locking. Concurrent appends rely on the
	// platform's atomic-append behavior for single bounded writes.
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s log: %w", log, err)
	}

	return f.Close()
}

func (s *JSONLStore) Scan(log Log) ([]string, error) {
	path, err := s.path(log)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s log: %w", log, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s log: %w", log, err)
	}

	return lines, nil
}

func (s *JSONLStore) ReadAll(log Log) (string, error) {
	path, err := s.path(log)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s log: %w", log, err)
	}
	return string(data), nil
}

func (s *JSONLStore) Location() string {
	return fmt.Sprintf("%s, %s", s.paths[LogEvents], s.paths[LogDiary])
}
