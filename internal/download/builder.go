package download

import (
	"path/filepath"
	"strings"

	"github.com/paramon-tech/tgfetch/internal/telegram"
)

// Plan is the partition of a message list produced by Build.
type Plan struct {
	Tasks   []Task
	Skipped []SkipRecord
	Ignored int
}

// Build walks messages in the order given and sorts every message into
// exactly one of: a Task, a SkipRecord, or the ignored count. Names that
// would resolve outside dir are skipped. exists is consulted once per
// matching message with a safe name.
func Build(messages []telegram.Message, dir string, exists func(string) bool, filter Filter) Plan {
	var plan Plan
	queued := make(map[string]struct{})

	for _, msg := range messages {
		name, ok := ExtractFilename(msg)
		if !ok || !filter.Match(name) {
			plan.Ignored++
			continue
		}

		if !localName(name) {
			plan.Skipped = append(plan.Skipped, SkipRecord{Name: name, Reason: ReasonUnsafe})
			continue
		}

		path := filepath.Join(dir, name)
		if exists(path) {
			plan.Skipped = append(plan.Skipped, SkipRecord{Name: name, Path: path, Reason: ReasonExists})
			continue
		}

		key := strings.ToLower(name)
		if _, dup := queued[key]; dup {
			plan.Skipped = append(plan.Skipped, SkipRecord{Name: name, Path: path, Reason: ReasonDuplicate})
			continue
		}
		queued[key] = struct{}{}

		plan.Tasks = append(plan.Tasks, Task{Message: msg, Path: path, Name: name})
	}

	return plan
}

// localName reports whether name is a single path element that stays inside
// the directory it is joined with.
func localName(name string) bool {
	return filepath.IsLocal(name) && filepath.Base(name) == name
}
