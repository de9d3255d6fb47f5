package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/files"
	"github.com/deskboardhq/deskboard/internal/dashboard/service"
	"github.com/deskboardhq/deskboard/internal/dashboard/store/drivers/sqlite"
	"github.com/deskboardhq/deskboard/pkg/jwtx"
	"github.com/deskboardhq/deskboard/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	uploadDir := t.TempDir()
	disk, err := files.NewDiskStorage(uploadDir, "/uploads")
	require.NoError(t, err)

	tokens := jwtx.NewHS256([]byte("router-test-secret"), "deskboard-test")
	logger := slogx.New(slogx.Config{Service: "deskboard", Env: "test", Level: "error"})

	router := NewRouter(tokens, "test", st, uploadDir, 1<<20, logger)
	router.AuthService = &service.AuthService{Store: st, Tokens: tokens}
	router.UserService = &service.UserService{Store: st}
	router.TaskService = &service.TaskService{Store: st, Files: disk}
	router.EventService = &service.EventService{Store: st}
	router.ActivityService = &service.ActivityService{Store: st}
	router.AnalyticsService = &service.AnalyticsService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, srv *httptest.Server, path, token string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

func registerAndLogin(t *testing.T, srv *httptest.Server, name, role string) string {
	t.Helper()

	resp, _ := postJSON(t, srv, "/api/auth/register", "", map[string]string{
		"name": name, "password": "hunter2", "role": role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, srv, "/api/auth/login", "", map[string]string{
		"name": name, "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAuthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("register then login", func(t *testing.T) {
		resp, body := postJSON(t, srv, "/api/auth/register", "", map[string]string{
			"name": "alice", "password": "hunter2", "role": "admin",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "alice", body["name"])
		require.Equal(t, "admin", body["role"])

		resp, body = postJSON(t, srv, "/api/auth/login", "", map[string]string{
			"name": "alice", "password": "hunter2",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotEmpty(t, body["token"])
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		resp, body := postJSON(t, srv, "/api/auth/register", "", map[string]string{
			"name": "alice", "password": "other",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		require.Equal(t, "conflict", body["error"])
	})

	t.Run("bad credentials are 401", func(t *testing.T) {
		resp, _ := postJSON(t, srv, "/api/auth/login", "", map[string]string{
			"name": "alice", "password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/auth/login",
			bytes.NewReader([]byte("{broken")))
		require.NoError(t, err)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRoleGates(t *testing.T) {
	srv := newTestServer(t)

	adminToken := registerAndLogin(t, srv, "root", "admin")
	userToken := registerAndLogin(t, srv, "plain", "user")

	t.Run("missing token is 401", func(t *testing.T) {
		resp, _ := getJSON(t, srv, "/api/users", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("user token on admin surface is 403", func(t *testing.T) {
		for _, path := range []string{"/api/users", "/api/activity", "/api/analytics"} {
			resp, _ := getJSON(t, srv, path, userToken)
			require.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		}
	})

	t.Run("admin token passes everywhere", func(t *testing.T) {
		for _, path := range []string{"/api/users", "/api/activity", "/api/analytics", "/api/tasks", "/api/events"} {
			resp, _ := getJSON(t, srv, path, adminToken)
			require.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	})

	t.Run("user token passes user surfaces", func(t *testing.T) {
		for _, path := range []string{"/api/tasks", "/api/events"} {
			resp, _ := getJSON(t, srv, path, userToken)
			require.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	})
}

func TestUserManagementFlow(t *testing.T) {
	srv := newTestServer(t)
	adminToken := registerAndLogin(t, srv, "root", "admin")

	resp, created := postJSON(t, srv, "/api/users", adminToken, map[string]string{
		"name": "new-hire", "password": "welcome1", "role": "user", "status": "active",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	t.Run("mutations show up in the activity log", func(t *testing.T) {
		resp, raw := getJSON(t, srv, "/api/activity", adminToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var entries []map[string]any
		require.NoError(t, json.Unmarshal(raw, &entries))
		require.NotEmpty(t, entries)
		require.Equal(t, "root", entries[0]["user"])
		require.Contains(t, entries[0]["details"], "new-hire")
	})

	t.Run("analytics counts the accounts", func(t *testing.T) {
		resp, raw := getJSON(t, srv, "/api/analytics", adminToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var summary map[string]any
		require.NoError(t, json.Unmarshal(raw, &summary))
		byRole, _ := summary["users_by_role"].(map[string]any)
		require.EqualValues(t, 1, byRole["admin"])
		require.EqualValues(t, 1, byRole["user"])
	})

	t.Run("delete responds with success and then 404s", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/users/"+id, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		body := decodeBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, true, body["success"])

		getResp, _ := getJSON(t, srv, "/api/users/"+id, adminToken)
		require.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})
}

func TestTaskAttachmentFlow(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "worker", "user")

	resp, task := postJSON(t, srv, "/api/tasks", token, map[string]string{
		"content": "write minutes",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID, _ := task["id"].(string)
	require.NotEmpty(t, taskID)

	attach := func(t *testing.T, size int) *http.Response {
		t.Helper()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", "minutes.txt")
		require.NoError(t, err)
		_, err = fw.Write(bytes.Repeat([]byte("a"), size))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req, err := http.NewRequest(http.MethodPost,
			fmt.Sprintf("%s/api/tasks/%s/attachments", srv.URL, taskID), &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("upload links the file and serves it back", func(t *testing.T) {
		resp := attach(t, 64)
		body := decodeBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		path, _ := body["file"].(string)
		require.NotEmpty(t, path)

		fileResp, raw := getJSON(t, srv, path, "")
		require.Equal(t, http.StatusOK, fileResp.StatusCode)
		require.Len(t, raw, 64)
	})

	t.Run("oversized upload is rejected", func(t *testing.T) {
		resp := attach(t, (1<<20)+512)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestEventFlow(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "organizer", "user")

	start := time.Now().UTC().Truncate(time.Second)

	resp, _ := postJSON(t, srv, "/api/events", token, map[string]any{
		"title":      "weekly sync",
		"start":      start,
		"end":        start.Add(time.Hour),
		"recurrence": "weekly",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("listing expands the recurrence", func(t *testing.T) {
		resp, raw := getJSON(t, srv, "/api/events", token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var occurrences []map[string]any
		require.NoError(t, json.Unmarshal(raw, &occurrences))
		require.Len(t, occurrences, 5)
		require.Equal(t, "weekly sync", occurrences[0]["title"])
	})

	t.Run("end before start is 400", func(t *testing.T) {
		resp, _ := postJSON(t, srv, "/api/events", token, map[string]any{
			"title": "broken",
			"start": start,
			"end":   start.Add(-time.Hour),
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := getJSON(t, srv, "/livez", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any
	require.NoError(t, json.Unmarshal(raw, &health))
	require.Equal(t, "ok", health["status"])

	resp, raw = getJSON(t, srv, "/readyz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &health))
	checks, _ := health["checks"].(map[string]any)
	require.Equal(t, "ok", checks["database"])
}
