package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cloudsync/internal/client/models"
	"github.com/dmitrijs2005/cloudsync/internal/common"
	"github.com/dmitrijs2005/cloudsync/internal/logging"
)

// fakeAPI записывает вызовы и отдаёт заранее заданные ответы.
type fakeAPI struct {
	mu sync.Mutex

	loginResp models.AuthResponse
	loginErr  error

	profileResp  models.User
	profileErr   error
	profileCalls int

	logoutErr    error
	logoutCalls  int
	refreshToken string
	refreshErr   error

	updateResp models.User
	updateErr  error
}

func (f *fakeAPI) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return models.AuthResponse{}, nil
}

func (f *fakeAPI) Activate(ctx context.Context, code string) error { return nil }

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) RefreshToken(ctx context.Context) (string, error) {
	return f.refreshToken, f.refreshErr
}

func (f *fakeAPI) ForgotPassword(ctx context.Context, email string) error { return nil }

func (f *fakeAPI) ResetPassword(ctx context.Context, token, newPassword string) error { return nil }

func (f *fakeAPI) Profile(ctx context.Context) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	return f.profileResp, f.profileErr
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, req models.UserUpdateRequest) (models.User, error) {
	return f.updateResp, f.updateErr
}

func (f *fakeAPI) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return nil
}

func (f *fakeAPI) ProfileCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profileCalls
}

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu         sync.Mutex
	data       map[string][]byte
	clearCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *fakeStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *fakeStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string][]byte{}
	s.clearCalls++
	return nil
}

func (s *fakeStore) get(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

func newTestManager(api *fakeAPI, store *fakeStore) *Manager {
	return NewManager(api, store, logging.NewDefault())
}

func TestRestore_NoToken_AnonymousWithoutProfileFetch(t *testing.T) {
	api := &fakeAPI{}
	m := newTestManager(api, newFakeStore())

	require.NoError(t, m.Restore(context.Background()))

	assert.Equal(t, StateAnonymous, m.State())
	assert.False(t, m.Loading())
	assert.Zero(t, api.ProfileCalls(), "no token means no network round trip")
}

func TestRestore_ValidToken_Authenticated(t *testing.T) {
	api := &fakeAPI{profileResp: models.User{ID: "u1", Username: "alice"}}
	store := newFakeStore()
	store.Set(context.Background(), common.StoreKeyAccessToken, []byte("tok"))
	m := newTestManager(api, store)

	require.NoError(t, m.Restore(context.Background()))

	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, "tok", m.Token())
	u, ok := m.User()
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
}

func TestRestore_RejectedToken_ClearsAndGoesAnonymous(t *testing.T) {
	api := &fakeAPI{profileErr: common.ErrUnauthorized}
	store := newFakeStore()
	store.Set(context.Background(), common.StoreKeyAccessToken, []byte("stale"))
	m := newTestManager(api, store)

	require.NoError(t, m.Restore(context.Background()))

	assert.Equal(t, StateAnonymous, m.State())
	assert.Empty(t, m.Token())
	assert.Empty(t, store.get(common.StoreKeyAccessToken))
}

func TestRestore_OnlyOnce(t *testing.T) {
	m := newTestManager(&fakeAPI{}, newFakeStore())

	require.NoError(t, m.Restore(context.Background()))
	err := m.Restore(context.Background())
	require.ErrorIs(t, err, common.ErrSessionRestoring)
}

func TestLogin_Success(t *testing.T) {
	api := &fakeAPI{
		loginResp:   models.AuthResponse{Token: "tok", ID: "u1", Username: "alice"},
		profileResp: models.User{ID: "u1", Username: "alice", FirstName: "Alice"},
	}
	store := newFakeStore()
	m := newTestManager(api, store)

	require.NoError(t, m.Login(context.Background(), "alice", "secret"))

	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, "tok", m.Token())
	assert.Equal(t, "tok", string(store.get(common.StoreKeyAccessToken)))
	u, _ := m.User()
	assert.Equal(t, "Alice", u.FirstName, "приоритет у свежего профиля")
}

func TestLogin_Failure_StateUnchanged(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("bad credentials")}
	m := newTestManager(api, newFakeStore())

	err := m.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	assert.Equal(t, StateUninitialized, m.State())
	assert.Empty(t, m.Token())
}

func TestLogout_NeverFails(t *testing.T) {
	api := &fakeAPI{logoutErr: errors.New("server down")}
	store := newFakeStore()
	store.Set(context.Background(), common.StoreKeyAccessToken, []byte("tok"))
	m := newTestManager(&fakeAPI{profileResp: models.User{ID: "u1"}}, store)
	require.NoError(t, m.Restore(context.Background()))
	m.api = api

	m.Logout(context.Background())

	assert.Equal(t, StateAnonymous, m.State())
	assert.Empty(t, m.Token())
	assert.Empty(t, store.get(common.StoreKeyAccessToken))

	// повторный вызов безопасен
	m.Logout(context.Background())
	assert.Equal(t, StateAnonymous, m.State())
}

func TestHandleUnauthorized_ExactlyOnce(t *testing.T) {
	store := newFakeStore()
	store.Set(context.Background(), common.StoreKeyAccessToken, []byte("tok"))
	m := newTestManager(&fakeAPI{profileResp: models.User{ID: "u1"}}, store)
	require.NoError(t, m.Restore(context.Background()))

	var mu sync.Mutex
	var transitions []State
	m.Subscribe(func(s State) {
		mu.Lock()
		transitions = append(transitions, s)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.HandleUnauthorized()
		}()
	}
	wg.Wait()

	assert.Equal(t, StateAnonymous, m.State())
	assert.Empty(t, m.Token())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateAnonymous}, transitions, "ten concurrent 401s, one transition")
}

func TestUpdateProfile_MergesServerFields(t *testing.T) {
	api := &fakeAPI{
		profileResp: models.User{ID: "u1", FirstName: "X", LastName: "Y"},
		updateResp:  models.User{FirstName: "A"},
	}
	store := newFakeStore()
	store.Set(context.Background(), common.StoreKeyAccessToken, []byte("tok"))
	m := newTestManager(api, store)
	require.NoError(t, m.Restore(context.Background()))

	first := "A"
	got, err := m.UpdateProfile(context.Background(), models.UserUpdateRequest{FirstName: &first})
	require.NoError(t, err)

	assert.Equal(t, "A", got.FirstName)
	assert.Equal(t, "Y", got.LastName, "absent response fields keep the local value")

	u, _ := m.User()
	assert.Equal(t, "A", u.FirstName)
	assert.Equal(t, "Y", u.LastName)
}

func TestUpdateProfile_ErrorLeavesUserUntouched(t *testing.T) {
	api := &fakeAPI{
		profileResp: models.User{ID: "u1", FirstName: "X"},
		updateErr:   errors.New("validation failed"),
	}
	store := newFakeStore()
	store.Set(context.Background(), common.StoreKeyAccessToken, []byte("tok"))
	m := newTestManager(api, store)
	require.NoError(t, m.Restore(context.Background()))

	_, err := m.UpdateProfile(context.Background(), models.UserUpdateRequest{})
	require.Error(t, err)

	u, _ := m.User()
	assert.Equal(t, "X", u.FirstName)
}

func TestRefreshToken_PersistsNewToken(t *testing.T) {
	api := &fakeAPI{profileResp: models.User{ID: "u1"}, refreshToken: "tok2"}
	store := newFakeStore()
	store.Set(context.Background(), common.StoreKeyAccessToken, []byte("tok1"))
	m := newTestManager(api, store)
	require.NoError(t, m.Restore(context.Background()))

	require.NoError(t, m.RefreshToken(context.Background()))

	assert.Equal(t, "tok2", m.Token())
	assert.Equal(t, "tok2", string(store.get(common.StoreKeyAccessToken)))
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestTokenExpiresWithin(t *testing.T) {
	store := newFakeStore()
	store.Set(context.Background(), common.StoreKeyAccessToken, []byte(signedToken(t, time.Now().Add(time.Minute))))
	m := newTestManager(&fakeAPI{profileResp: models.User{ID: "u1"}}, store)
	require.NoError(t, m.Restore(context.Background()))

	assert.True(t, m.TokenExpiresWithin(2*time.Minute))
	assert.False(t, m.TokenExpiresWithin(10*time.Second))
}

func TestTokenExpiresWithin_GarbageToken(t *testing.T) {
	store := newFakeStore()
	store.Set(context.Background(), common.StoreKeyAccessToken, []byte("not-a-jwt"))
	m := newTestManager(&fakeAPI{profileResp: models.User{ID: "u1"}}, store)
	require.NoError(t, m.Restore(context.Background()))

	// нераспарсиваемый токен не трогаем, решает сервер
	assert.False(t, m.TokenExpiresWithin(time.Minute))
}
