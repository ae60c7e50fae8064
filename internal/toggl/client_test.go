package toggl_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/toggl-audit/internal/toggl"
)

func newServer(t *testing.T, handler http.HandlerFunc) *toggl.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return toggl.NewClient(srv.URL, "secret-token", 5*time.Second)
}

func TestWorkspacesSendsBasicAuth(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/workspaces", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "secret-token", user)
		assert.Equal(t, "api_token", pass)
		w.Write([]byte(`[{"id":42,"name":"Main"},{"id":43,"name":"Other"}]`))
	})

	got, err := client.Workspaces(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(42), got[0].ID)
	assert.Equal(t, "Main", got[0].Name)
}

func TestProjects(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workspaces/42/projects", r.URL.Path)
		w.Write([]byte(`[{"id":7,"workspace_id":42,"name":"ThinkGIS","active":true}]`))
	})

	got, err := client.Projects(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
	assert.True(t, got[0].Active)
}

func TestTimeEntries(t *testing.T) {
	from := time.Date(2025, 7, 6, 7, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 7, 6, 59, 59, 0, time.UTC)

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/time_entries", r.URL.Path)
		assert.Equal(t, "2025-07-06T07:00:00Z", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-07-07T06:59:59Z", r.URL.Query().Get("end_date"))
		w.Write([]byte(`[
			{"id":1,"workspace_id":42,"project_id":7,"description":"123","start":"2025-07-06T16:00:00+00:00","duration":1800},
			{"id":2,"workspace_id":99,"project_id":7,"description":"other ws","start":"2025-07-06T17:00:00+00:00","duration":60},
			{"id":3,"workspace_id":42,"project_id":null,"description":"no project","start":"2025-07-06T18:00:00-07:00","duration":60}
		]`))
	})

	got, err := client.TimeEntries(context.Background(), 42, from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(7), got[0].ProjectID)
	assert.Equal(t, int64(1800), got[0].Duration)
	assert.True(t, got[0].Start.Equal(time.Date(2025, 7, 6, 16, 0, 0, 0, time.UTC)))

	assert.Equal(t, int64(3), got[1].ID)
	assert.Equal(t, int64(0), got[1].ProjectID)
	assert.True(t, got[1].Start.Equal(time.Date(2025, 7, 7, 1, 0, 0, 0, time.UTC)))
}

func TestAPIError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Incorrect username and/or password", http.StatusForbidden)
	})

	_, err := client.Workspaces(context.Background())
	var apiErr *toggl.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "Incorrect username")
}

func TestMalformedResponse(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"`))
	})

	_, err := client.Workspaces(context.Background())
	assert.ErrorContains(t, err, "decoding toggl response")
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := toggl.NewClient("", "token", time.Second).Workspaces(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
