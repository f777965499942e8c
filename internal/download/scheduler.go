package download

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Executor performs one task. A non-nil error marks the task as failed.
type Executor func(ctx context.Context, task Task) (*FileInfo, error)

type WindowOptions struct {
	// OnWindow is called before window index (0-based) of total starts.
	OnWindow func(index, total, size int)
	Logger   zerolog.Logger
}

// RunWindows executes tasks in consecutive windows of at most limit tasks.
// All tasks of a window run concurrently and the next window starts only
// after every task of the current one has returned. A failing or panicking
// task yields a nil slot and never affects its siblings. The result is
// index-aligned with tasks. Once ctx is done no further window is started.
func RunWindows(ctx context.Context, tasks []Task, limit int, exec Executor, opts WindowOptions) []*FileInfo {
	if limit < 1 {
		limit = 1
	}
	results := make([]*FileInfo, len(tasks))
	total := (len(tasks) + limit - 1) / limit

	for w := 0; w < total; w++ {
		if ctx.Err() != nil {
			opts.Logger.Warn().Err(ctx.Err()).Int("remaining", total-w).Msg("run cancelled, skipping remaining windows")
			break
		}

		start := w * limit
		end := min(start+limit, len(tasks))
		if opts.OnWindow != nil {
			opts.OnWindow(w, total, end-start)
		}

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				info, err := runTask(ctx, tasks[i], exec)
				if err != nil {
					opts.Logger.Error().Err(err).Str("file", tasks[i].Name).Msg("download failed")
					return nil
				}
				results[i] = info
				return nil
			})
		}
		_ = g.Wait()
	}

	return results
}

func runTask(ctx context.Context, task Task, exec Executor) (info *FileInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			info, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return exec(ctx, task)
}

// Completed drops the failed slots of a RunWindows result.
func Completed(results []*FileInfo) []FileInfo {
	out := make([]FileInfo, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
