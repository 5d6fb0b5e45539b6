package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinvey/cli/pkg/kinvey"
)

func TestAppsGetAll(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/apps", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"id-1","name":"books"},{"id":"id-2","name":"games"}]`))
	}))
	defer server.Close()

	svc := newAppsService(newTestService(t, server.URL))

	apps, err := svc.GetAll(context.Background())
	require.NoError(t, err)

	require.Len(t, apps, 2)
	assert.Equal(t, "books", apps[0].Name)
}

func TestAppsGetByName(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"id-1","name":"books","organizationId":"org-1"}]`))
	}))
	defer server.Close()

	svc := newAppsService(newTestService(t, server.URL))

	app, err := svc.GetByIdOrName(context.Background(), "books")
	require.NoError(t, err)

	assert.Equal(t, "id-1", app.ID)
	assert.Equal(t, "org-1", app.OrganizationID)
}

func TestAppsGetByNameNotFoundNamesTheApp(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc := newAppsService(newTestService(t, server.URL))

	_, err := svc.GetByIdOrName(context.Background(), "missing")
	require.Error(t, err)

	assert.True(t, kinvey.IsNotFound(err))
	assert.Contains(t, err.Error(), "Could not find app with identifier 'missing'.")
}

func TestAppsCreate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/apps", r.URL.Path)

		var req kinvey.AppCreateRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "books", req.Name)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"id-new","name":"books"}`))
	}))
	defer server.Close()

	svc := newAppsService(newTestService(t, server.URL))

	app, err := svc.Create(context.Background(), &kinvey.AppCreateRequest{Name: "books"})
	require.NoError(t, err)

	assert.Equal(t, "id-new", app.ID)
}

func TestAppsRemoveByIdOrName(t *testing.T) {
	t.Parallel()

	var deletedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletedPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)

			return
		}

		_, _ = w.Write([]byte(`[{"id":"id-1","name":"books"}]`))
	}))
	defer server.Close()

	svc := newAppsService(newTestService(t, server.URL))

	removedID, err := svc.RemoveByIdOrName(context.Background(), "books")
	require.NoError(t, err)

	// The name resolves first, then the delete hits the id endpoint.
	assert.Equal(t, "id-1", removedID)
	assert.Equal(t, "/v3/apps/id-1", deletedPath)
}
