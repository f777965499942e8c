package telegram

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/dcs"
	"github.com/gotd/td/tg"
	"github.com/rs/zerolog"

	"github.com/paramon-tech/tgfetch/internal/config"
)

var ErrNotConnected = errors.New("telegram client is not connected")

// Prompter asks the operator for the one-time login code and, when the
// account has two-step verification enabled, the cloud password.
type Prompter interface {
	Code(ctx context.Context, phone string) (string, error)
	Password(ctx context.Context) (string, error)
}

type Client struct {
	cfg    config.Config
	prompt Prompter
	log    zerolog.Logger

	mu     sync.Mutex
	client *telegram.Client
	api    *tg.Client
	cancel context.CancelFunc
	done   chan error
	selfID int64
}

func NewClient(cfg config.Config, prompt Prompter, log zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		prompt: prompt,
		log:    log.With().Str("component", "telegram").Logger(),
	}
}

// Connect starts the MTProto connection in the background and blocks until
// the account is authorized or the connection fails.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.done != nil {
		c.mu.Unlock()
		return nil
	}

	c.client = telegram.NewClient(c.cfg.APIID, c.cfg.APIHash, telegram.Options{
		SessionStorage: &FileSessionStorage{Path: c.cfg.SessionFile},
		DCList:         dcs.Prod(),
	})

	runCtx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	done := make(chan error, 1)
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go func() {
		done <- c.client.Run(runCtx, func(ctx context.Context) error {
			if err := c.authorize(ctx); err != nil {
				return err
			}
			c.mu.Lock()
			c.api = c.client.API()
			c.mu.Unlock()
			close(ready)

			<-ctx.Done()
			return ctx.Err()
		})
	}()

	select {
	case <-ready:
		c.log.Info().Int64("self_id", c.selfID).Msg("client connected")
		return nil
	case err := <-done:
		c.reset()
		if err == nil {
			err = errors.New("connection closed before authorization")
		}
		return fmt.Errorf("connecting to telegram: %w", err)
	case <-ctx.Done():
		_ = c.Disconnect()
		return ctx.Err()
	}
}

// Disconnect tears down the connection and waits for the background run to
// exit. It is a no-op when the client is not connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()
	if done == nil {
		return nil
	}

	cancel()
	err := <-done
	c.reset()
	c.log.Info().Msg("client disconnected")

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c *Client) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.api = nil
	c.cancel = nil
	c.done = nil
}

func (c *Client) apiClient() (*tg.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.api == nil {
		return nil, ErrNotConnected
	}
	return c.api, nil
}
