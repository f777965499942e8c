package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/gotd/td/tg"
	"github.com/rs/zerolog"

	"github.com/paramon-tech/tgfetch/internal/config"
)

func TestHistoryMessages(t *testing.T) {
	msgs := []tg.MessageClass{&tg.Message{ID: 3}, &tg.MessageService{ID: 2}}

	for _, result := range []tg.MessagesMessagesClass{
		&tg.MessagesMessages{Messages: msgs},
		&tg.MessagesMessagesSlice{Messages: msgs},
		&tg.MessagesChannelMessages{Messages: msgs},
	} {
		got, err := historyMessages(result)
		if err != nil {
			t.Fatalf("%T: %v", result, err)
		}
		if len(got) != 2 {
			t.Errorf("%T: expected 2 messages, got %d", result, len(got))
		}
	}

	got, err := historyMessages(&tg.MessagesMessagesNotModified{})
	if err != nil || len(got) != 0 {
		t.Errorf("Expected empty result for not-modified, got %d (%v)", len(got), err)
	}
}

func TestMessageID(t *testing.T) {
	if id := messageID(&tg.MessageService{ID: 9}); id != 9 {
		t.Errorf("Expected 9, got %d", id)
	}
	if id := messageID(&tg.MessageEmpty{ID: 4}); id != 4 {
		t.Errorf("Expected 4, got %d", id)
	}
}

func TestClient_NotConnected(t *testing.T) {
	c := NewClient(config.Config{}, nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := c.ListConversations(ctx); !errors.Is(err, ErrNotConnected) {
		t.Errorf("ListConversations: expected ErrNotConnected, got %v", err)
	}
	if _, err := c.ListMessages(ctx, Chat{ID: 1}, 10); !errors.Is(err, ErrNotConnected) {
		t.Errorf("ListMessages: expected ErrNotConnected, got %v", err)
	}
	if _, err := c.DownloadAttachment(ctx, Message{ID: 1}, t.TempDir()+"/x"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("DownloadAttachment: expected ErrNotConnected, got %v", err)
	}
	if err := c.Disconnect(); err != nil {
		t.Errorf("Disconnect on idle client: expected nil, got %v", err)
	}
}

func TestCollectHistory_ServiceMessagesCountTowardLimit(t *testing.T) {
	var requests []int
	fetch := func(_ context.Context, offsetID, batch int) ([]tg.MessageClass, error) {
		requests = append(requests, batch)
		start := 250
		if offsetID != 0 {
			start = offsetID - 1
		}
		page := make([]tg.MessageClass, 0, batch)
		for id := start; id > start-batch; id-- {
			if id%2 == 0 {
				page = append(page, &tg.MessageService{ID: id})
			} else {
				page = append(page, &tg.Message{ID: id})
			}
		}
		return page, nil
	}

	msgs, err := collectHistory(context.Background(), 5, 150, fetch)
	if err != nil {
		t.Fatalf("collectHistory: %v", err)
	}
	if len(requests) != 2 || requests[0] != 100 || requests[1] != 50 {
		t.Errorf("Expected batches of 100 and 50, got %v", requests)
	}
	if len(msgs) != 75 {
		t.Fatalf("Expected 75 regular messages among 150 scanned, got %d", len(msgs))
	}
	if msgs[0].ID != 249 || msgs[len(msgs)-1].ID != 101 {
		t.Errorf("Expected IDs 249 down to 101, got %d..%d", msgs[0].ID, msgs[len(msgs)-1].ID)
	}
	if msgs[0].ChatID != 5 {
		t.Errorf("Expected chat ID carried, got %d", msgs[0].ChatID)
	}
}

func TestCollectHistory_StopsOnShortPage(t *testing.T) {
	calls := 0
	fetch := func(context.Context, int, int) ([]tg.MessageClass, error) {
		calls++
		return []tg.MessageClass{&tg.Message{ID: 2}, &tg.Message{ID: 1}}, nil
	}

	msgs, err := collectHistory(context.Background(), 1, 500, fetch)
	if err != nil {
		t.Fatalf("collectHistory: %v", err)
	}
	if calls != 1 || len(msgs) != 2 {
		t.Errorf("Expected one request and 2 messages, got %d and %d", calls, len(msgs))
	}
}

func TestCollectHistory_Error(t *testing.T) {
	fetchErr := errors.New("FLOOD_WAIT_5")
	_, err := collectHistory(context.Background(), 1, 10, func(context.Context, int, int) ([]tg.MessageClass, error) {
		return nil, fetchErr
	})
	if !errors.Is(err, fetchErr) {
		t.Errorf("Expected fetch error, got %v", err)
	}
}
