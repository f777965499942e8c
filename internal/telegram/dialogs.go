package telegram

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
)

// ListConversations returns the account's dialogs in server order (pinned
// first, then by last activity).
func (c *Client) ListConversations(ctx context.Context) ([]Chat, error) {
	api, err := c.apiClient()
	if err != nil {
		return nil, err
	}

	result, err := api.MessagesGetDialogs(ctx, &tg.MessagesGetDialogsRequest{
		OffsetPeer: &tg.InputPeerEmpty{},
		Limit:      c.cfg.DialogLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching dialogs: %w", err)
	}

	switch r := result.(type) {
	case *tg.MessagesDialogs:
		return extractDialogs(r.Dialogs, r.Users, r.Chats), nil
	case *tg.MessagesDialogsSlice:
		return extractDialogs(r.Dialogs, r.Users, r.Chats), nil
	default:
		return nil, fmt.Errorf("unexpected dialogs response: %T", result)
	}
}

func extractDialogs(dialogs []tg.DialogClass, users []tg.UserClass, chatClasses []tg.ChatClass) []Chat {
	userMap := make(map[int64]*tg.User)
	for _, u := range users {
		if user, ok := u.(*tg.User); ok {
			userMap[user.ID] = user
		}
	}

	chatMap := make(map[int64]*tg.Chat)
	channelMap := make(map[int64]*tg.Channel)
	for _, ch := range chatClasses {
		switch v := ch.(type) {
		case *tg.Chat:
			chatMap[v.ID] = v
		case *tg.Channel:
			channelMap[v.ID] = v
		}
	}

	var chats []Chat
	for _, d := range dialogs {
		dialog, ok := d.(*tg.Dialog)
		if !ok {
			continue
		}

		var chat Chat
		switch peer := dialog.Peer.(type) {
		case *tg.PeerUser:
			user, exists := userMap[peer.UserID]
			if !exists {
				continue
			}
			chat.ID = user.ID
			chat.AccessHash = user.AccessHash
			chat.Title = displayName(user.FirstName, user.LastName)
			chat.Type = ChatTypePrivate

		case *tg.PeerChat:
			group, exists := chatMap[peer.ChatID]
			if !exists {
				continue
			}
			chat.ID = group.ID
			chat.Title = group.Title
			chat.Type = ChatTypeGroup

		case *tg.PeerChannel:
			channel, exists := channelMap[peer.ChannelID]
			if !exists {
				continue
			}
			chat.ID = channel.ID
			chat.AccessHash = channel.AccessHash
			chat.Title = channel.Title
			if channel.Broadcast {
				chat.Type = ChatTypeChannel
			} else {
				chat.Type = ChatTypeGroup
			}

		default:
			continue
		}

		chats = append(chats, chat)
	}

	return chats
}

func displayName(first, last string) string {
	if last == "" {
		return first
	}
	return first + " " + last
}
