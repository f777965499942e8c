package telegram

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
)

// historyBatch is the server-side cap for a single messages.getHistory call.
const historyBatch = 100

// ListMessages returns up to limit of the most recent messages in chat,
// newest first, as delivered by the server.
func (c *Client) ListMessages(ctx context.Context, chat Chat, limit int) ([]Message, error) {
	api, err := c.apiClient()
	if err != nil {
		return nil, err
	}

	peer := chatToInputPeer(chat)
	msgs, err := collectHistory(ctx, chat.ID, limit, func(ctx context.Context, offsetID, batch int) ([]tg.MessageClass, error) {
		result, err := api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
			Peer:     peer,
			OffsetID: offsetID,
			Limit:    batch,
		})
		if err != nil {
			return nil, fmt.Errorf("fetching history of %q: %w", chat.Title, err)
		}
		return historyMessages(result)
	})
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("chat", chat.Title).Int("count", len(msgs)).Msg("history loaded")
	return msgs, nil
}

type historyPage func(ctx context.Context, offsetID, batch int) ([]tg.MessageClass, error)

// collectHistory pages backwards until limit raw messages have been seen.
// Service and empty messages count toward limit but are not returned.
func collectHistory(ctx context.Context, chatID int64, limit int, fetch historyPage) ([]Message, error) {
	var msgs []Message
	offsetID := 0
	scanned := 0

	for scanned < limit {
		batch := min(limit-scanned, historyBatch)

		page, err := fetch(ctx, offsetID, batch)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		if len(page) > batch {
			page = page[:batch]
		}
		scanned += len(page)

		for _, m := range page {
			if id := messageID(m); id != 0 {
				offsetID = id
			}
			if msg, ok := m.(*tg.Message); ok {
				msgs = append(msgs, convertMessage(chatID, msg))
			}
		}

		if len(page) < batch {
			break
		}
	}

	return msgs, nil
}

func historyMessages(result tg.MessagesMessagesClass) ([]tg.MessageClass, error) {
	switch r := result.(type) {
	case *tg.MessagesMessages:
		return r.Messages, nil
	case *tg.MessagesMessagesSlice:
		return r.Messages, nil
	case *tg.MessagesChannelMessages:
		return r.Messages, nil
	case *tg.MessagesMessagesNotModified:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected history response: %T", result)
	}
}

func messageID(m tg.MessageClass) int {
	switch v := m.(type) {
	case *tg.Message:
		return v.ID
	case *tg.MessageService:
		return v.ID
	case *tg.MessageEmpty:
		return v.ID
	}
	return 0
}

func convertMessage(chatID int64, msg *tg.Message) Message {
	return Message{
		ID:         msg.ID,
		ChatID:     chatID,
		Date:       msg.Date,
		Attachment: extractAttachment(msg.Media),
	}
}

func chatToInputPeer(chat Chat) tg.InputPeerClass {
	switch chat.Type {
	case ChatTypePrivate:
		return &tg.InputPeerUser{UserID: chat.ID, AccessHash: chat.AccessHash}
	case ChatTypeGroup:
		if chat.AccessHash != 0 {
			return &tg.InputPeerChannel{ChannelID: chat.ID, AccessHash: chat.AccessHash}
		}
		return &tg.InputPeerChat{ChatID: chat.ID}
	case ChatTypeChannel:
		return &tg.InputPeerChannel{ChannelID: chat.ID, AccessHash: chat.AccessHash}
	default:
		return &tg.InputPeerEmpty{}
	}
}
