package telegram

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gotd/td/session"
)

// FileSessionStorage persists the MTProto session as JSON so later runs
// skip the code prompt.
type FileSessionStorage struct {
	Path string
}

type storedSession struct {
	Data []byte `json:"data"`
}

func (s *FileSessionStorage) LoadSession(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	if len(stored.Data) == 0 {
		return nil, session.ErrNotFound
	}
	return stored.Data, nil
}

func (s *FileSessionStorage) StoreSession(_ context.Context, data []byte) error {
	out, err := json.Marshal(storedSession{Data: data})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, out, 0600)
}
