package domain

import "context"

// Keys under which the session pair is persisted.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// PersistedSession is the raw stored pair. User holds the serialized
// UserSummary exactly as it was written.
type PersistedSession struct {
	Token string
	User  string
}

func (p PersistedSession) Complete() bool {
	return p.Token != "" && p.User != ""
}

// SessionStorage is the durable copy of the session. Save and Clear write
// both keys as a single unit.
type SessionStorage interface {
	Load(ctx context.Context) (PersistedSession, error)
	Save(ctx context.Context, session PersistedSession) error
	Clear(ctx context.Context) error
}
