package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinvey/cli/internal/auth"
	kinveyhttp "github.com/kinvey/cli/internal/http"
	"github.com/kinvey/cli/pkg/kinvey"
)

const (
	testUUID         = "f1f33a3d-90e4-4f21-a4e3-3f4e2a6b8d12"
	testUUIDNoDashes = "f1f33a3d90e44f21a4e33f4e2a6b8d12"
)

// staticTokens satisfies the executor's token provider without a login flow.
type staticTokens struct{}

func (staticTokens) GetToken(ctx context.Context) (string, error) {
	return "test-token", nil
}

// newTestService wires an entityService against a test server. The session
// store persists to a throwaway path so active-item tests stay isolated.
func newTestService(t *testing.T, serverURL string) entityService {
	t.Helper()

	store := auth.NewStore(serverURL, filepath.Join(t.TempDir(), "session"), nil, nil)
	httpClient := kinveyhttp.NewClient(serverURL, staticTokens{})
	store.AttachClient(httpClient)

	return entityService{
		httpClient:    httpClient,
		session:       store,
		schemaVersion: 3,
		logger:        kinvey.NoopLogger{},
	}
}

func appsSpec(schemaVersion int) resolveSpec {
	return resolveSpec{
		itemType:       kinvey.ItemTypeApp,
		listEndpoint:   AppsEndpoint(schemaVersion, ""),
		singleEndpoint: func(id string) string { return AppsEndpoint(schemaVersion, id) },
		looksLikeID:    IsUUID,
	}
}

func TestIsUUID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUUID(testUUID))
	assert.True(t, IsUUID(testUUIDNoDashes))

	// Only the exact dashed and dashless lengths qualify.
	assert.False(t, IsUUID(testUUID[:35]))
	assert.False(t, IsUUID(testUUIDNoDashes+"0"))
	assert.False(t, IsUUID("my-app-name"))
	assert.False(t, IsUUID("books"))
	assert.False(t, IsUUID(""))

	// Right length, wrong content.
	assert.False(t, IsUUID("zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"))
}

func TestIsEnvID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEnvID("kid_SklZwh7dN"))

	assert.False(t, IsEnvID("kid_tooooooooolong"))
	assert.False(t, IsEnvID("kid_short"))
	assert.False(t, IsEnvID("SklZwh7dNkid_"))
	assert.False(t, IsEnvID(""))
}

func TestResolveByIDFetchesSingleResource(t *testing.T) {
	t.Parallel()

	var (
		requests int32
		gotPath  string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"id":"` + testUUID + `","name":"books"}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	var app kinvey.App

	err := svc.resolveByIdOrName(context.Background(), testUUID, appsSpec(3), &app)
	require.NoError(t, err)

	// An id-shaped identifier never touches the list endpoint.
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	assert.Equal(t, "/v3/apps/"+testUUID, gotPath)
	assert.Equal(t, "books", app.Name)
}

func TestResolveByIDNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"AppNotFound","description":"This app does not exist."}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	var app kinvey.App

	err := svc.resolveByIdOrName(context.Background(), testUUID, appsSpec(3), &app)
	require.Error(t, err)

	assert.True(t, kinvey.IsNotFound(err))
	assert.Contains(t, err.Error(), testUUID)
}

func TestResolveByNameMatchesExactly(t *testing.T) {
	t.Parallel()

	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[
			{"id":"id-1","name":"books"},
			{"id":"id-2","name":"Books"},
			{"id":"id-3","name":"bookstore"}
		]`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	var app kinvey.App

	err := svc.resolveByIdOrName(context.Background(), "books", appsSpec(3), &app)
	require.NoError(t, err)

	// Matching is case-sensitive and exact.
	assert.Equal(t, "/v3/apps", gotPath)
	assert.Equal(t, "id-1", app.ID)
}

func TestResolveByNameNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"id-1","name":"other"}]`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	var app kinvey.App

	err := svc.resolveByIdOrName(context.Background(), "books", appsSpec(3), &app)

	assert.True(t, kinvey.IsNotFound(err))
}

func TestResolveByNameAmbiguous(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"id-1","name":"books"},
			{"id":"id-2","name":"books"}
		]`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	var app kinvey.App

	err := svc.resolveByIdOrName(context.Background(), "books", appsSpec(3), &app)

	assert.True(t, kinvey.IsTooManyFound(err))
}

func TestResolveWithoutIdentifierUsesActiveItem(t *testing.T) {
	t.Parallel()

	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"id":"` + testUUID + `","name":"books"}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	require.NoError(t, svc.session.SetActiveItem(kinvey.ItemTypeApp, &kinvey.ActiveItem{ID: testUUID, Name: "books"}))

	var app kinvey.App

	err := svc.resolveByIdOrName(context.Background(), "", appsSpec(3), &app)
	require.NoError(t, err)

	assert.Equal(t, "/v3/apps/"+testUUID, gotPath)
}

func TestResolveWithoutIdentifierOrActiveItem(t *testing.T) {
	t.Parallel()

	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	var app kinvey.App

	err := svc.resolveByIdOrName(context.Background(), "", appsSpec(3), &app)
	require.Error(t, err)

	// The failure is local; no network call is made.
	assert.True(t, kinvey.IsKind(err, kinvey.ErrorKindItemNotSpecified))
	assert.Zero(t, atomic.LoadInt32(&requests))
}
