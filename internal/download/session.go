package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/paramon-tech/tgfetch/internal/telegram"
)

var (
	ErrConnect              = errors.New("connect failed")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrInterrupted          = errors.New("download interrupted")
)

// Client is the messaging platform as seen by a Session.
type Client interface {
	Connect(ctx context.Context) error
	Disconnect() error
	ListConversations(ctx context.Context) ([]telegram.Chat, error)
	ListMessages(ctx context.Context, chat telegram.Chat, limit int) ([]telegram.Message, error)
	DownloadAttachment(ctx context.Context, msg telegram.Message, destPath string) (int64, error)
}

type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateLookingUp
	StateDownloading
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateLookingUp:
		return "looking up"
	case StateDownloading:
		return "downloading"
	default:
		return "unknown"
	}
}

type Options struct {
	Dir          string
	Concurrency  int
	MessageLimit int
	Filter       Filter
	// Exists defaults to a single listing of Dir taken before planning.
	Exists func(string) bool
	// OnWindow is forwarded to RunWindows.
	OnWindow func(index, total, size int)
}

// Session runs one download pass against a single conversation.
type Session struct {
	client Client
	opts   Options
	log    zerolog.Logger

	mu    sync.Mutex
	state State
}

func NewSession(client Client, opts Options, log zerolog.Logger) *Session {
	if opts.Filter == nil {
		opts.Filter = SuffixFilter("DS", ".ARW")
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Session{client: client, opts: opts, log: log}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.log.Debug().Stringer("state", st).Msg("state changed")
}

// Run connects, downloads every new matching attachment of the first
// conversation whose title contains chatName and disconnects. The client is
// released on every return path. An interrupted run returns the partial
// summary together with an error wrapping ErrInterrupted.
func (s *Session) Run(ctx context.Context, chatName string) (summary Summary, err error) {
	log := s.log.With().Str("run_id", uuid.NewString()).Str("chat", chatName).Logger()

	s.setState(StateConnecting)
	defer func() {
		if derr := s.client.Disconnect(); derr != nil {
			log.Warn().Err(derr).Msg("disconnect failed")
		}
		s.setState(StateDisconnected)
	}()

	if err := s.client.Connect(ctx); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	s.setState(StateConnected)
	s.setState(StateLookingUp)
	chat, err := s.findChat(ctx, chatName)
	if err != nil {
		return Summary{}, err
	}
	log.Info().Str("title", chat.Title).Str("type", chat.Type.String()).Msg("conversation found")

	s.setState(StateDownloading)
	summary, err = s.download(ctx, chat, log)
	if err != nil && !errors.Is(err, ErrInterrupted) {
		return Summary{}, err
	}
	s.setState(StateConnected)

	log.Info().
		Int("processed", summary.Processed()).
		Int("downloaded", len(summary.Downloaded)).
		Int("skipped", len(summary.Skipped)).
		Int("failed", summary.Failed).
		Int("cancelled", summary.Cancelled).
		Msg("download summary")
	return summary, err
}

// findChat returns the first conversation, in listing order, whose title
// contains name case-insensitively.
func (s *Session) findChat(ctx context.Context, name string) (telegram.Chat, error) {
	chats, err := s.client.ListConversations(ctx)
	if err != nil {
		return telegram.Chat{}, err
	}
	chat, ok := FindChat(chats, name)
	if !ok {
		return telegram.Chat{}, fmt.Errorf("%w: no chat found with name containing %q", ErrConversationNotFound, name)
	}
	return chat, nil
}

// FindChat is the lookup rule used by Session: case-insensitive substring,
// first match wins.
func FindChat(chats []telegram.Chat, name string) (telegram.Chat, bool) {
	needle := strings.ToLower(name)
	for _, c := range chats {
		if strings.Contains(strings.ToLower(c.Title), needle) {
			return c, true
		}
	}
	return telegram.Chat{}, false
}

func (s *Session) download(ctx context.Context, chat telegram.Chat, log zerolog.Logger) (Summary, error) {
	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating download directory %s: %w", s.opts.Dir, err)
	}

	messages, err := s.client.ListMessages(ctx, chat, s.opts.MessageLimit)
	if err != nil {
		return Summary{}, err
	}

	exists := s.opts.Exists
	if exists == nil {
		idx, err := ListExisting(s.opts.Dir)
		if err != nil {
			return Summary{}, fmt.Errorf("listing download directory %s: %w", s.opts.Dir, err)
		}
		exists = idx.Has
	}

	plan := Build(messages, s.opts.Dir, exists, s.opts.Filter)
	for _, sk := range plan.Skipped {
		log.Debug().Str("file", sk.Name).Str("reason", sk.Reason).Msg("skipping")
	}

	summary := Summary{
		Skipped: plan.Skipped,
		Ignored: plan.Ignored,
		Scanned: len(messages),
	}

	if len(plan.Tasks) == 0 {
		log.Info().Int("skipped", len(plan.Skipped)).Msg("no new files to download")
		return summary, nil
	}
	log.Info().
		Int("tasks", len(plan.Tasks)).
		Int("skipped", len(plan.Skipped)).
		Msg("found files to download")

	onWindow := func(index, total, size int) {
		log.Info().Int("window", index+1).Int("windows", total).Int("size", size).Msg("processing batch")
		if s.opts.OnWindow != nil {
			s.opts.OnWindow(index, total, size)
		}
	}

	var started atomic.Int64
	results := RunWindows(ctx, plan.Tasks, s.opts.Concurrency, s.executor(log, &started), WindowOptions{
		OnWindow: onWindow,
		Logger:   log,
	})
	attempted := int(started.Load())
	summary.Downloaded = Completed(results)
	summary.Failed = attempted - len(summary.Downloaded)
	summary.Cancelled = len(plan.Tasks) - attempted

	if err := ctx.Err(); err != nil {
		summary.Interrupted = true
		return summary, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	return summary, nil
}

func (s *Session) executor(log zerolog.Logger, started *atomic.Int64) Executor {
	return func(ctx context.Context, task Task) (*FileInfo, error) {
		started.Add(1)
		size, err := s.client.DownloadAttachment(ctx, task.Message, task.Path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("file", task.Name).Int64("size", size).Msg("downloaded")
		return &FileInfo{
			Path:        task.Path,
			Name:        task.Name,
			Size:        size,
			CompletedAt: time.Now(),
		}, nil
	}
}
