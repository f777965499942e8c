package download

import (
	"time"

	"github.com/paramon-tech/tgfetch/internal/telegram"
)

const (
	ReasonExists    = "already exists"
	ReasonDuplicate = "duplicate in listing"
	ReasonUnsafe    = "unsafe name"
)

// Task is a pending transfer of one message's attachment to Path.
type Task struct {
	Message telegram.Message
	Path    string
	Name    string
}

// FileInfo describes a completed download.
type FileInfo struct {
	Path        string
	Name        string
	Size        int64
	CompletedAt time.Time
}

// SkipRecord is a matching file that was not downloaded.
type SkipRecord struct {
	Name   string
	Path   string
	Reason string
}

// Summary is the outcome of one run.
type Summary struct {
	Downloaded []FileInfo
	Skipped    []SkipRecord
	// Failed counts tasks whose transfer returned an error.
	Failed int
	// Cancelled counts tasks never started because the run was interrupted.
	Cancelled int
	// Interrupted is set when the run context ended before all windows ran.
	Interrupted bool
	// Ignored counts messages without a qualifying attachment.
	Ignored int
	Scanned int
}

// Processed is the number of matching files seen: queued plus skipped.
func (s Summary) Processed() int {
	return len(s.Downloaded) + s.Failed + s.Cancelled + len(s.Skipped)
}
