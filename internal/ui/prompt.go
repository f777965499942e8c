package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompt asks the operator for login secrets on the terminal.
type Prompt struct{}

func (Prompt) Code(ctx context.Context, phone string) (string, error) {
	var code string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Please enter the code you received").
				Description("Sent to " + phone).
				Value(&code).
				Validate(required("Code is required")),
		),
	).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}

func (Prompt) Password(ctx context.Context) (string, error) {
	var password string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your 2FA password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(required("Password is required")),
		),
	).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return password, nil
}

func required(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}
