package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_frontend/client"
	"rental_frontend/domain"
	application "rental_frontend/service"
	"rental_frontend/store"
)

type fakeAuth struct {
	response *domain.AuthResponse
	err      error
	calls    int
}

func (f *fakeAuth) Login(ctx context.Context, input domain.LoginInput) (*domain.AuthResponse, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeAuth) RegisterTenant(ctx context.Context, input domain.TenantRegistration) (*domain.AuthResponse, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeAuth) RegisterLandlord(ctx context.Context, input domain.LandlordRegistration) (*domain.AuthResponse, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeAuth) ForgotPassword(ctx context.Context, email string) (*application.MessageResult, error) {
	f.calls++
	return &application.MessageResult{Message: "sent"}, f.err
}

func (f *fakeAuth) ResetPassword(ctx context.Context, input domain.ResetPasswordInput) (*application.MessageResult, error) {
	f.calls++
	return &application.MessageResult{Message: "reset"}, f.err
}

type failingStorage struct {
	store.MemorySessionStore
}

func (f *failingStorage) Save(ctx context.Context, session domain.PersistedSession) error {
	return errors.New("disk full")
}

func (f *failingStorage) Clear(ctx context.Context) error {
	return errors.New("disk full")
}

// flakyStorage fails the first clearFailures calls to Clear.
type flakyStorage struct {
	*store.MemorySessionStore
	clearFailures int
	clears        int
}

func (f *flakyStorage) Clear(ctx context.Context) error {
	f.clears++
	if f.clears <= f.clearFailures {
		return errors.New("locked")
	}
	return f.MemorySessionStore.Clear(ctx)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func tenantResponse(token string) *domain.AuthResponse {
	return &domain.AuthResponse{Token: token, User: &domain.UserSummary{ID: "1", Role: domain.Tenant}}
}

func TestStore_LoginPersistsAndAuthenticates(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemorySessionStore()
	sessions := NewStore(&fakeAuth{response: tenantResponse("abc")}, storage, quietLogger())
	sessions.Init(ctx)

	_, err := sessions.Login(ctx, "t@test.com", "pw", domain.Tenant)

	require.NoError(t, err)
	assert.Equal(t, "abc", sessions.Token())
	assert.True(t, sessions.IsAuthenticated())
	assert.Equal(t, domain.Tenant, sessions.CurrentUser().Role)

	persisted, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", persisted.Token)
	assert.JSONEq(t, `{"id":"1","email":"","full_name":"","role":"tenant","is_active":false,"created_at":"0001-01-01T00:00:00Z"}`, persisted.User)
}

func TestStore_LoginFailureLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{response: tenantResponse("abc")}
	sessions := NewStore(auth, store.NewMemorySessionStore(), quietLogger())
	sessions.Init(ctx)
	_, err := sessions.Login(ctx, "t@test.com", "pw", domain.Tenant)
	require.NoError(t, err)

	rejection := &client.APIError{Status: 401, Message: "Invalid credentials"}
	auth.response, auth.err = nil, rejection
	_, err = sessions.Login(ctx, "t@test.com", "wrong", domain.Tenant)

	assert.Same(t, rejection, err)
	assert.Equal(t, "abc", sessions.Token())
}

func TestStore_IncompleteResponseIsRejected(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemorySessionStore()
	sessions := NewStore(&fakeAuth{response: &domain.AuthResponse{Token: "abc"}}, storage, quietLogger())
	sessions.Init(ctx)

	_, err := sessions.RegisterTenant(ctx, domain.TenantRegistration{
		Email:           "t@test.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FullName:        "Tenant",
	})

	assert.ErrorIs(t, err, ErrIncompleteAuthResponse)
	assert.False(t, sessions.IsAuthenticated())
	persisted, _ := storage.Load(ctx)
	assert.False(t, persisted.Complete())
}

func TestStore_PersistenceFailureLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	sessions := NewStore(&fakeAuth{response: tenantResponse("abc")}, &failingStorage{}, quietLogger())
	sessions.Init(ctx)

	_, err := sessions.Login(ctx, "t@test.com", "pw", domain.Tenant)

	require.Error(t, err)
	assert.False(t, sessions.IsAuthenticated())
	assert.Nil(t, sessions.CurrentUser())
}

func TestStore_ValidationFailsBeforeAnyCall(t *testing.T) {
	auth := &fakeAuth{response: tenantResponse("abc")}
	sessions := NewStore(auth, store.NewMemorySessionStore(), quietLogger())

	_, err := sessions.Login(context.Background(), "not-an-email", "pw", domain.Tenant)

	assert.Equal(t, client.KindValidation, client.KindOf(err))
	assert.Equal(t, 0, auth.calls)
}

func TestStore_LogoutTwice(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemorySessionStore()
	sessions := NewStore(&fakeAuth{response: tenantResponse("abc")}, storage, quietLogger())
	sessions.Init(ctx)
	_, err := sessions.Login(ctx, "t@test.com", "pw", domain.Tenant)
	require.NoError(t, err)

	sessions.Logout(ctx)
	assert.Equal(t, domain.Session{}, sessions.Snapshot())
	sessions.Logout(ctx)
	assert.Equal(t, domain.Session{}, sessions.Snapshot())

	persisted, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PersistedSession{}, persisted)
}

func TestStore_LogoutIgnoresStorageFailure(t *testing.T) {
	sessions := NewStore(&fakeAuth{}, &failingStorage{}, quietLogger())

	sessions.Logout(context.Background())

	assert.False(t, sessions.IsAuthenticated())
}

func TestStore_LogoutRetriesClearOnce(t *testing.T) {
	ctx := context.Background()
	storage := &flakyStorage{MemorySessionStore: store.NewMemorySessionStore(), clearFailures: 1}
	logger, hook := logtest.NewNullLogger()
	sessions := NewStore(&fakeAuth{response: tenantResponse("abc")}, storage, logger)
	sessions.Init(ctx)
	_, err := sessions.Login(ctx, "t@test.com", "pw", domain.Tenant)
	require.NoError(t, err)

	sessions.Logout(ctx)

	assert.Equal(t, 2, storage.clears)
	persisted, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PersistedSession{}, persisted)
	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, entry.Level)
	}
}

func TestStore_LogoutReportsSessionLeftOnDisk(t *testing.T) {
	ctx := context.Background()
	storage := &flakyStorage{MemorySessionStore: store.NewMemorySessionStore(), clearFailures: 2}
	logger, hook := logtest.NewNullLogger()
	sessions := NewStore(&fakeAuth{response: tenantResponse("abc")}, storage, logger)
	sessions.Init(ctx)
	_, err := sessions.Login(ctx, "t@test.com", "pw", domain.Tenant)
	require.NoError(t, err)

	sessions.Logout(ctx)

	assert.False(t, sessions.IsAuthenticated())
	assert.Equal(t, 2, storage.clears)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "restored on next start")

	restored := NewStore(&fakeAuth{}, storage, quietLogger())
	restored.Init(ctx)
	assert.True(t, restored.IsAuthenticated())
}

func TestStore_InitRestoresCompletePair(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemorySessionStore()
	require.NoError(t, storage.Save(ctx, domain.PersistedSession{Token: "abc", User: `{"id":"9","role":"landlord"}`}))
	sessions := NewStore(&fakeAuth{}, storage, quietLogger())
	assert.False(t, sessions.Initialized())

	sessions.Init(ctx)

	assert.True(t, sessions.Initialized())
	assert.Equal(t, "abc", sessions.Token())
	assert.Equal(t, domain.Landlord, sessions.CurrentUser().Role)
}

func TestStore_InitIgnoresHalfPairsAndBadUsers(t *testing.T) {
	for _, persisted := range []domain.PersistedSession{
		{Token: "abc"},
		{User: `{"id":"1"}`},
		{Token: "abc", User: "{broken"},
	} {
		ctx := context.Background()
		storage := store.NewMemorySessionStore()
		require.NoError(t, storage.Save(ctx, persisted))
		sessions := NewStore(&fakeAuth{}, storage, quietLogger())

		sessions.Init(ctx)

		assert.True(t, sessions.Initialized())
		assert.Equal(t, domain.Session{}, sessions.Snapshot())
	}
}

func TestStore_InitRunsOnce(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemorySessionStore()
	sessions := NewStore(&fakeAuth{}, storage, quietLogger())
	sessions.Init(ctx)

	require.NoError(t, storage.Save(ctx, domain.PersistedSession{Token: "late", User: `{"id":"1"}`}))
	sessions.Init(ctx)

	assert.False(t, sessions.IsAuthenticated())
}

func TestStore_SubscribersSeeConsistentPairs(t *testing.T) {
	ctx := context.Background()
	sessions := NewStore(&fakeAuth{response: tenantResponse("abc")}, store.NewMemorySessionStore(), quietLogger())
	var seen []domain.Session
	unsubscribe := sessions.Subscribe(func(s domain.Session) {
		seen = append(seen, s)
	})

	sessions.Init(ctx)
	_, err := sessions.Login(ctx, "t@test.com", "pw", domain.Tenant)
	require.NoError(t, err)
	sessions.Logout(ctx)
	unsubscribe()
	sessions.Logout(ctx)

	require.Len(t, seen, 3)
	for _, s := range seen {
		assert.Equal(t, s.Token != "", s.User != nil)
	}
	assert.True(t, seen[1].IsAuthenticated())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	sessions := NewStore(&fakeAuth{response: tenantResponse("abc")}, store.NewMemorySessionStore(), quietLogger())
	_, err := sessions.Login(ctx, "t@test.com", "pw", domain.Tenant)
	require.NoError(t, err)

	snapshot := sessions.Snapshot()
	snapshot.User.Role = domain.Admin

	assert.Equal(t, domain.Tenant, sessions.CurrentUser().Role)
}

func testJWT(exp int64) string {
	encode := base64.RawURLEncoding.EncodeToString
	header := encode([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := encode([]byte(fmt.Sprintf(`{"sub":"1","exp":%d}`, exp)))
	return header + "." + payload + "." + encode([]byte("signature"))
}

func TestStore_TokenExpiry(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(time.Hour).Unix()
	sessions := NewStore(&fakeAuth{response: tenantResponse(testJWT(exp))}, store.NewMemorySessionStore(), quietLogger())

	_, ok := sessions.TokenExpiry()
	assert.False(t, ok)

	_, err := sessions.Login(ctx, "t@test.com", "pw", domain.Tenant)
	require.NoError(t, err)

	expiry, ok := sessions.TokenExpiry()
	require.True(t, ok)
	assert.Equal(t, exp, expiry.Unix())
}

func TestStore_OpaqueTokenHasNoExpiry(t *testing.T) {
	ctx := context.Background()
	sessions := NewStore(&fakeAuth{response: tenantResponse("abc")}, store.NewMemorySessionStore(), quietLogger())
	_, err := sessions.Login(ctx, "t@test.com", "pw", domain.Tenant)
	require.NoError(t, err)

	_, ok := sessions.TokenExpiry()

	assert.False(t, ok)
}

func TestStore_PasswordResetDoesNotTouchSession(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{}
	sessions := NewStore(auth, store.NewMemorySessionStore(), quietLogger())

	result, err := sessions.ForgotPassword(ctx, "t@test.com")
	require.NoError(t, err)
	assert.Equal(t, "sent", result.Message)

	_, err = sessions.ResetPassword(ctx, domain.ResetPasswordInput{Token: "t", Password: "secret1", ConfirmPassword: "nope"})
	assert.Equal(t, client.KindValidation, client.KindOf(err))

	assert.Equal(t, 1, auth.calls)
	assert.False(t, sessions.IsAuthenticated())
}
