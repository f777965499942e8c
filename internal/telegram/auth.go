package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// authorize reuses the stored session when it is still valid and otherwise
// runs the phone code sign-in, falling back to the 2FA password step.
func (c *Client) authorize(ctx context.Context) error {
	status, err := c.client.Auth().Status(ctx)
	if err != nil {
		return fmt.Errorf("checking auth status: %w", err)
	}

	if !status.Authorized {
		if err := c.signIn(ctx); err != nil {
			return err
		}
	}

	self, err := c.client.Self(ctx)
	if err != nil {
		return fmt.Errorf("fetching self: %w", err)
	}
	c.selfID = self.ID
	return nil
}

func (c *Client) signIn(ctx context.Context) error {
	phone := c.cfg.Phone

	sentCode, err := c.client.Auth().SendCode(ctx, phone, auth.SendCodeOptions{})
	if err != nil {
		return fmt.Errorf("sending code: %w", err)
	}
	s, ok := sentCode.(*tg.AuthSentCode)
	if !ok {
		return fmt.Errorf("unexpected sent code type: %T", sentCode)
	}
	c.log.Info().Str("phone", phone).Msg("login code sent")

	code, err := c.prompt.Code(ctx, phone)
	if err != nil {
		return fmt.Errorf("reading login code: %w", err)
	}

	_, err = c.client.Auth().SignIn(ctx, phone, strings.TrimSpace(code), s.PhoneCodeHash)
	if err == nil {
		return nil
	}
	if !errors.Is(err, auth.ErrPasswordAuthNeeded) {
		return fmt.Errorf("signing in: %w", err)
	}

	password, err := c.prompt.Password(ctx)
	if err != nil {
		return fmt.Errorf("reading 2FA password: %w", err)
	}
	if _, err := c.client.Auth().Password(ctx, password); err != nil {
		return fmt.Errorf("checking 2FA password: %w", err)
	}
	return nil
}
