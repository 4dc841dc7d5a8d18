package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rental_frontend/domain"
)

// FileSessionStore keeps the pair in one JSON file. Writes go to a temp file
// that is renamed over the target, so a reader never sees half a pair.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) domain.SessionStorage {
	return &FileSessionStore{
		path: path,
	}
}

type sessionFile struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

func (store *FileSessionStore) Load(ctx context.Context) (domain.PersistedSession, error) {
	data, err := os.ReadFile(store.path)
	if os.IsNotExist(err) {
		return domain.PersistedSession{}, nil
	}
	if err != nil {
		return domain.PersistedSession{}, fmt.Errorf("read session file: %w", err)
	}

	var stored sessionFile
	if err := json.Unmarshal(data, &stored); err != nil {
		return domain.PersistedSession{}, fmt.Errorf("decode session file: %w", err)
	}
	return domain.PersistedSession{Token: stored.Token, User: stored.User}, nil
}

func (store *FileSessionStore) Save(ctx context.Context, session domain.PersistedSession) error {
	data, err := json.Marshal(sessionFile{Token: session.Token, User: session.User})
	if err != nil {
		return err
	}

	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return os.Rename(tmp.Name(), store.path)
}

func (store *FileSessionStore) Clear(ctx context.Context) error {
	err := os.Remove(store.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
