package journal

import (
	"fmt"
	"os"
)

// Journal appends one JSON object per line, UTF-8, newline-terminated, to a
// log file. The file is opened per append so an operator can rotate it out
// from under a long-running process.
type Journal struct {
	path string
}

// New creates a Journal writing to path. The file is created on first append.
func New(path string) *Journal {
	return &Journal{path: path}
}

// Append writes one already-serialized JSON line. Failures are returned for
// logging; the caller must not let them stop the polling loop.
func (j *Journal) Append(line []byte) error {
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("journal: open %s: %w", j.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("journal: write %s: %w", j.path, err)
	}
	return nil
}
