package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/authcore/internal/auth/domain"
	authService "github.com/allisson/authcore/internal/auth/service"
	"github.com/allisson/authcore/internal/database"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testClock is a settable clock shared by the use cases under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeKeyService hashes by prefixing so tests stay fast and deterministic.
type fakeKeyService struct {
	mu          sync.Mutex
	counter     int
	dummyCalls  int
	compareHits int
}

func (f *fakeKeyService) GenerateKey() (string, string, error) {
	f.mu.Lock()
	f.counter++
	plain := "key-" + strings.Repeat("x", f.counter)
	f.mu.Unlock()

	hash, err := f.Hash(plain)
	return plain, hash, err
}

func (f *fakeKeyService) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (f *fakeKeyService) Compare(plain, hashed string) bool {
	f.mu.Lock()
	f.compareHits++
	f.mu.Unlock()
	return hashed == "hashed:"+plain
}

func (f *fakeKeyService) CompareDummy(string) bool {
	f.mu.Lock()
	f.dummyCalls++
	f.mu.Unlock()
	return false
}

var _ authService.KeyService = (*fakeKeyService)(nil)

// fakeTxManager runs fn inline.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ database.TxManager = fakeTxManager{}

// memoryAttemptRepository is an in-memory AuthAttemptRepository.
type memoryAttemptRepository struct {
	mu       sync.Mutex
	attempts []authDomain.AuthAttempt
}

func (m *memoryAttemptRepository) Create(_ context.Context, attempt *authDomain.AuthAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, *attempt)
	return nil
}

func (m *memoryAttemptRepository) count(match func(authDomain.AuthAttempt) bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, a := range m.attempts {
		if match(a) {
			n++
		}
	}
	return n
}

func (m *memoryAttemptRepository) CountByIP(_ context.Context, ip string, since time.Time) (int64, error) {
	return m.count(func(a authDomain.AuthAttempt) bool {
		return a.IP == ip && !a.CreatedAt.Before(since)
	}), nil
}

func (m *memoryAttemptRepository) CountByIPAndIdentity(
	_ context.Context,
	ip, identity string,
	since time.Time,
) (int64, error) {
	return m.count(func(a authDomain.AuthAttempt) bool {
		return a.IP == ip && a.Identity == identity && !a.CreatedAt.Before(since)
	}), nil
}

func (m *memoryAttemptRepository) DeleteOlderThan(_ context.Context, olderThan time.Time, dryRun bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.attempts[:0:0]
	var n int64
	for _, a := range m.attempts {
		if a.CreatedAt.Before(olderThan) {
			n++
			continue
		}
		kept = append(kept, a)
	}
	if !dryRun {
		m.attempts = kept
	}
	return n, nil
}

// memorySessionRepository is an in-memory SessionRepository.
type memorySessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]authDomain.Session
}

func newMemorySessionRepository() *memorySessionRepository {
	return &memorySessionRepository{sessions: make(map[uuid.UUID]authDomain.Session)}
}

func (m *memorySessionRepository) Create(_ context.Context, session *authDomain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *memorySessionRepository) Get(_ context.Context, sessionID uuid.UUID) (*authDomain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, authDomain.ErrSessionNotFound
	}
	return &session, nil
}

func (m *memorySessionRepository) Touch(_ context.Context, sessionID uuid.UUID, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return authDomain.ErrSessionNotFound
	}
	session.UpdatedAt = updatedAt
	m.sessions[sessionID] = session
	return nil
}

func (m *memorySessionRepository) Delete(_ context.Context, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return authDomain.ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}

// memoryUserRepository is an in-memory UserRepository.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]authDomain.UserCredentials
}

func newMemoryUserRepository(users ...authDomain.UserCredentials) *memoryUserRepository {
	repo := &memoryUserRepository{users: make(map[uuid.UUID]authDomain.UserCredentials)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *memoryUserRepository) Get(_ context.Context, userID uuid.UUID) (*authDomain.UserCredentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, authDomain.ErrUserNotFound
	}
	return &user, nil
}

func (m *memoryUserRepository) GetByIdentity(_ context.Context, identity string) (*authDomain.UserCredentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.ToLower(user.Username) == identity || strings.ToLower(user.Email) == identity {
			return &user, nil
		}
	}
	return nil, authDomain.ErrUserNotFound
}

func (m *memoryUserRepository) SetResetToken(
	_ context.Context,
	userID uuid.UUID,
	token *authDomain.ResetToken,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return authDomain.ErrUserNotFound
	}
	copied := *token
	user.ResetToken = &copied
	m.users[userID] = user
	return nil
}

func (m *memoryUserRepository) RedeemResetToken(
	_ context.Context,
	userID uuid.UUID,
	expectedTokenHash string,
	passwordHash string,
	_ time.Time,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok || user.ResetToken == nil || user.ResetToken.TokenHash != expectedTokenHash {
		return authDomain.ErrResetTokenInvalid
	}
	user.PasswordHash = passwordHash
	user.ResetToken = nil
	m.users[userID] = user
	return nil
}

// mockAuthAttemptRepository is a testify mock used for failure paths.
type mockAuthAttemptRepository struct {
	mock.Mock
}

func (m *mockAuthAttemptRepository) Create(ctx context.Context, attempt *authDomain.AuthAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *mockAuthAttemptRepository) CountByIP(ctx context.Context, ip string, since time.Time) (int64, error) {
	args := m.Called(ctx, ip, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAuthAttemptRepository) CountByIPAndIdentity(
	ctx context.Context,
	ip, identity string,
	since time.Time,
) (int64, error) {
	args := m.Called(ctx, ip, identity, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAuthAttemptRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, olderThan, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// mockSessionRepository is a testify mock used for failure paths.
type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *authDomain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (*authDomain.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

func (m *mockSessionRepository) Touch(ctx context.Context, sessionID uuid.UUID, updatedAt time.Time) error {
	args := m.Called(ctx, sessionID, updatedAt)
	return args.Error(0)
}

func (m *mockSessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}
