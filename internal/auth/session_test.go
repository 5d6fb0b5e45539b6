package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinvey/cli/internal/constants"
	kinveyhttp "github.com/kinvey/cli/internal/http"
	"github.com/kinvey/cli/pkg/kinvey"
)

// stubPrompter records prompt invocations and plays back canned answers.
type stubPrompter struct {
	emails    []string
	passwords []string
	mfaTokens []string

	credentialCalls int
	mfaCalls        int
}

func (p *stubPrompter) EmailPassword(email, password string) (string, string, error) {
	idx := p.credentialCalls
	p.credentialCalls++

	if email == "" {
		email = p.emails[idx]
	}

	if password == "" {
		password = p.passwords[idx]
	}

	return email, password, nil
}

func (p *stubPrompter) MFAToken() (string, error) {
	p.mfaCalls++

	return p.mfaTokens[p.mfaCalls-1], nil
}

// loginServer accepts POST session calls, validating credentials against
// wantPassword and returning token on success.
func loginServer(t *testing.T, wantEmail, wantPassword, token string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		var req kinvey.LoginRequest

		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)

		if req.Email != wantEmail || req.Password != wantPassword {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"InvalidCredentials","description":"Invalid e-mail or password."}`))

			return
		}

		_ = json.NewEncoder(w).Encode(kinvey.LoginResponse{Email: req.Email, Token: token})
	}))
}

func newTestStore(t *testing.T, serverURL string, prompter kinvey.CredentialPrompter) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session")
	store := NewStore(serverURL, path, prompter, nil)
	store.AttachClient(kinveyhttp.NewClient(serverURL, store))

	return store
}

func TestLoginPersistsToken(t *testing.T) {
	t.Parallel()

	server := loginServer(t, "dev@acme.com", "secret", "tok-1")
	defer server.Close()

	store := newTestStore(t, server.URL, nil)

	err := store.Login(context.Background(), "dev@acme.com", "secret")
	require.NoError(t, err)

	assert.True(t, store.IsLoggedIn())
	assert.Equal(t, "tok-1", store.Token())

	// The session file holds the token keyed by host and is private.
	data, err := os.ReadFile(store.path)
	require.NoError(t, err)

	var record kinvey.SessionRecord

	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "tok-1", record.Tokens[server.URL])

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.SessionFilePerm), info.Mode().Perm())
}

func TestLoginFromEnvironment(t *testing.T) {
	server := loginServer(t, "env@acme.com", "env-secret", "tok-env")
	defer server.Close()

	t.Setenv(constants.EnvEmail, "env@acme.com")
	t.Setenv(constants.EnvPassword, "env-secret")

	store := newTestStore(t, server.URL, nil)

	err := store.Login(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, "tok-env", store.Token())
}

func TestLoginEnvOnlyInvalidCredentialsFailsWithoutPrompt(t *testing.T) {
	server := loginServer(t, "env@acme.com", "right", "tok")
	defer server.Close()

	t.Setenv(constants.EnvEmail, "env@acme.com")
	t.Setenv(constants.EnvPassword, "wrong")

	prompter := &stubPrompter{}
	store := newTestStore(t, server.URL, prompter)

	err := store.Login(context.Background(), "", "")
	require.Error(t, err)

	assert.True(t, kinvey.IsInvalidCredentials(err))
	assert.Zero(t, prompter.credentialCalls)
	assert.False(t, store.IsLoggedIn())
}

func TestLoginRepromptsOnceOnInvalidCredentials(t *testing.T) {
	t.Parallel()

	server := loginServer(t, "dev@acme.com", "right", "tok-2")
	defer server.Close()

	prompter := &stubPrompter{
		emails:    []string{"dev@acme.com", "dev@acme.com"},
		passwords: []string{"wrong", "right"},
	}
	store := newTestStore(t, server.URL, prompter)

	err := store.Login(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, prompter.credentialCalls)
	assert.Equal(t, "tok-2", store.Token())
}

func TestLoginInvalidCredentialsFailsAfterSingleRetry(t *testing.T) {
	t.Parallel()

	server := loginServer(t, "dev@acme.com", "right", "tok")
	defer server.Close()

	prompter := &stubPrompter{
		emails:    []string{"dev@acme.com", "dev@acme.com"},
		passwords: []string{"wrong", "still-wrong"},
	}
	store := newTestStore(t, server.URL, prompter)

	err := store.Login(context.Background(), "", "")
	require.Error(t, err)

	assert.True(t, kinvey.IsInvalidCredentials(err))
	assert.Equal(t, 2, prompter.credentialCalls)
}

func TestLoginRetriesWithMFAToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req kinvey.LoginRequest

		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)

		if req.TwoFactorToken == "" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code":"InvalidTwoFactorAuth","description":"Two-factor authentication token is required."}`))

			return
		}

		require.Equal(t, "123456", req.TwoFactorToken)
		_ = json.NewEncoder(w).Encode(kinvey.LoginResponse{Email: req.Email, Token: "tok-mfa"})
	}))
	defer server.Close()

	prompter := &stubPrompter{mfaTokens: []string{"123456"}}
	store := newTestStore(t, server.URL, prompter)

	err := store.Login(context.Background(), "dev@acme.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, 1, prompter.mfaCalls)
	assert.Equal(t, "tok-mfa", store.Token())
}

func TestLoginWithoutCredentialsOrPrompter(t *testing.T) {
	t.Parallel()

	server := loginServer(t, "x", "y", "tok")
	defer server.Close()

	store := newTestStore(t, server.URL, nil)

	err := store.Login(context.Background(), "", "")

	assert.ErrorIs(t, err, ErrNoPrompter)
}

func TestLogoutClearsSession(t *testing.T) {
	t.Parallel()

	deleteCalled := false

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleteCalled = true
			w.WriteHeader(http.StatusNoContent)

			return
		}

		_ = json.NewEncoder(w).Encode(kinvey.LoginResponse{Token: "tok"})
	}))
	defer server.Close()

	store := newTestStore(t, server.URL, nil)

	require.NoError(t, store.Login(context.Background(), "dev@acme.com", "secret"))
	require.NoError(t, store.SetActiveItem(kinvey.ItemTypeApp, &kinvey.ActiveItem{ID: "app-1"}))

	err := store.Logout(context.Background())
	require.NoError(t, err)

	assert.True(t, deleteCalled)
	assert.False(t, store.IsLoggedIn())

	_, ok := store.ActiveItem(kinvey.ItemTypeApp)
	assert.False(t, ok)
}

func TestRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	server := loginServer(t, "dev@acme.com", "secret", "tok-persist")
	defer server.Close()

	first := newTestStore(t, server.URL, nil)
	require.NoError(t, first.Login(context.Background(), "dev@acme.com", "secret"))

	// A second store over the same path restores without logging in again.
	second := NewStore(server.URL, first.path, nil, nil)
	second.AttachClient(kinveyhttp.NewClient(server.URL, second))

	err := second.Restore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-persist", second.Token())
}

func TestRestoreToleratesMalformedFile(t *testing.T) {
	t.Parallel()

	server := loginServer(t, "dev@acme.com", "secret", "tok-new")
	defer server.Close()

	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	prompter := &stubPrompter{
		emails:    []string{"dev@acme.com"},
		passwords: []string{"secret"},
	}
	store := NewStore(server.URL, path, prompter, nil)
	store.AttachClient(kinveyhttp.NewClient(server.URL, store))

	// A garbage file falls back to a fresh login.
	err := store.Restore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-new", store.Token())
}

func TestGetTokenTriggersRestore(t *testing.T) {
	t.Parallel()

	server := loginServer(t, "dev@acme.com", "secret", "tok-lazy")
	defer server.Close()

	first := newTestStore(t, server.URL, nil)
	require.NoError(t, first.Login(context.Background(), "dev@acme.com", "secret"))

	second := NewStore(server.URL, first.path, nil, nil)
	second.AttachClient(kinveyhttp.NewClient(server.URL, second))

	token, err := second.GetToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-lazy", token)
}

func TestRefreshForcesNewLogin(t *testing.T) {
	t.Parallel()

	var logins int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&logins, 1)
		_ = json.NewEncoder(w).Encode(kinvey.LoginResponse{Token: "tok-refreshed"})
	}))
	defer server.Close()

	prompter := &stubPrompter{
		emails:    []string{"dev@acme.com"},
		passwords: []string{"secret"},
	}
	store := newTestStore(t, server.URL, prompter)

	require.NoError(t, store.Login(context.Background(), "dev@acme.com", "secret"))

	// Refresh discards the cached token and authenticates again.
	err := store.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&logins))
	assert.Equal(t, "tok-refreshed", store.Token())
}

func TestSetActiveItem(t *testing.T) {
	t.Parallel()

	store := NewStore("https://manage.kinvey.com/", filepath.Join(t.TempDir(), "session"), nil, nil)

	err := store.SetActiveItem(kinvey.ItemTypeApp, &kinvey.ActiveItem{ID: "app-1", Name: "books"})
	require.NoError(t, err)

	item, ok := store.ActiveItem(kinvey.ItemTypeApp)
	require.True(t, ok)
	assert.Equal(t, "app-1", item.ID)
}

func TestSetActiveAppClearsForeignEnvironment(t *testing.T) {
	t.Parallel()

	store := NewStore("https://manage.kinvey.com/", filepath.Join(t.TempDir(), "session"), nil, nil)

	require.NoError(t, store.SetActiveItem(kinvey.ItemTypeEnv, &kinvey.ActiveItem{ID: "kid_SklZwh7dN", AppID: "app-1"}))

	// Activating a different app invalidates the environment selection.
	require.NoError(t, store.SetActiveItem(kinvey.ItemTypeApp, &kinvey.ActiveItem{ID: "app-2"}))

	_, ok := store.ActiveItem(kinvey.ItemTypeEnv)
	assert.False(t, ok)
}

func TestSetActiveAppKeepsOwnEnvironment(t *testing.T) {
	t.Parallel()

	store := NewStore("https://manage.kinvey.com/", filepath.Join(t.TempDir(), "session"), nil, nil)

	require.NoError(t, store.SetActiveItem(kinvey.ItemTypeEnv, &kinvey.ActiveItem{ID: "kid_SklZwh7dN", AppID: "app-1"}))
	require.NoError(t, store.SetActiveItem(kinvey.ItemTypeApp, &kinvey.ActiveItem{ID: "app-1"}))

	item, ok := store.ActiveItem(kinvey.ItemTypeEnv)
	require.True(t, ok)
	assert.Equal(t, "kid_SklZwh7dN", item.ID)
}

func TestRemoveActiveItem(t *testing.T) {
	t.Parallel()

	store := NewStore("https://manage.kinvey.com/", filepath.Join(t.TempDir(), "session"), nil, nil)

	require.NoError(t, store.SetActiveItem(kinvey.ItemTypeOrg, &kinvey.ActiveItem{ID: "org-1"}))
	require.NoError(t, store.RemoveActiveItem(kinvey.ItemTypeOrg))

	_, ok := store.ActiveItem(kinvey.ItemTypeOrg)
	assert.False(t, ok)
}

func TestActiveItemRejectsInvalidType(t *testing.T) {
	t.Parallel()

	store := NewStore("https://manage.kinvey.com/", filepath.Join(t.TempDir(), "session"), nil, nil)

	err := store.SetActiveItem(kinvey.ItemTypeJob, &kinvey.ActiveItem{ID: "job-1"})

	assert.ErrorIs(t, err, ErrInvalidItemType)
}

func TestBasicAuthToken(t *testing.T) {
	t.Parallel()

	token := BasicAuthToken("kid_SklZwh7dN", "master-secret")

	// base64("kid_SklZwh7dN:master-secret")
	assert.Equal(t, "a2lkX1NrbFp3aDdkTjptYXN0ZXItc2VjcmV0", token)
}
