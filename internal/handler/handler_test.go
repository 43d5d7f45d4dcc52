package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"project-manager/internal/config"
	"project-manager/internal/router"
	"project-manager/internal/service"
	"project-manager/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "pm_session"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Store: config.StoreConfig{
			Driver:       "memory",
			ProjectsFile: "projects.json",
			UsersFile:    "users.json",
		},
		Session: config.SessionConfig{
			CookieName:     cookieName,
			CookieTTLHours: 1,
		},
	}

	st := store.New(store.NewMemoryBackend())
	users := service.NewUserService(st, cfg.Store.UsersFile)
	projects := service.NewProjectService(st, cfg.Store.ProjectsFile)
	return router.SetupRouter(cfg, users, projects)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionToken(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Code int            `json:"code"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, 0, envelope.Code)
	return envelope.Data
}

func TestFullFlow(t *testing.T) {
	r := newTestRouter(t)

	// unauthenticated access is rejected
	w := doJSON(t, r, http.MethodGet, "/api/projects", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// alice signs up and is logged in immediately
	w = doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	alice := sessionToken(t, w)
	data := decodeData(t, w)
	user := data["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])

	// she creates a project with a default status
	w = doJSON(t, r, http.MethodPost, "/api/projects", `{"title":"T","description":"D"}`, alice)
	require.Equal(t, http.StatusOK, w.Code)
	project := decodeData(t, w)["project"].(map[string]any)
	assert.Equal(t, float64(1), project["id"])
	assert.Equal(t, "en cours", project["status"])
	assert.NotEmpty(t, project["createdAt"])

	// the list contains it
	w = doJSON(t, r, http.MethodGet, "/api/projects", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	projects := decodeData(t, w)["projects"].([]any)
	require.Len(t, projects, 1)

	// bob signs up; his list is empty and alice's project is off limits
	w = doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"username":"bob","password":"pw2"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	bob := sessionToken(t, w)

	w = doJSON(t, r, http.MethodGet, "/api/projects", "", bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeData(t, w)["projects"])

	w = doJSON(t, r, http.MethodDelete, "/api/projects/1", "", bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// alice updates the status, then deletes
	w = doJSON(t, r, http.MethodPatch, "/api/projects/1", `{"status":"terminé"}`, alice)
	require.Equal(t, http.StatusOK, w.Code)
	project = decodeData(t, w)["project"].(map[string]any)
	assert.Equal(t, "terminé", project["status"])

	w = doJSON(t, r, http.MethodDelete, "/api/projects/1", "", alice)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/projects", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeData(t, w)["projects"])
}

func TestSignupConflictAndLogin(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"pw1"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"username":"","password":""}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// wrong password and unknown user answer with the same status
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"pw1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, sessionToken(t, w))
}

func TestLogoutInvalidatesSession(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := sessionToken(t, w)

	w = doJSON(t, r, http.MethodGet, "/api/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	// the cleared cookie expires immediately
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			assert.Less(t, c.MaxAge, 0)
		}
	}

	// the old token never resolves again
	w = doJSON(t, r, http.MethodGet, "/api/me", "", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logging out twice is still fine
	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPreferencesRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := sessionToken(t, w)

	w = doJSON(t, r, http.MethodPut, "/api/profile/preferences", `{"prefs":{"theme":"dark"}}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/profile/preferences", `{"prefs":{"other":"x"}}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	prefs := decodeData(t, w)["prefs"].(map[string]any)
	assert.Equal(t, "dark", prefs["theme"])
	assert.Equal(t, "x", prefs["other"])

	// /me reflects the merge
	w = doJSON(t, r, http.MethodGet, "/api/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeData(t, w)["user"].(map[string]any)
	prefs = user["prefs"].(map[string]any)
	assert.Equal(t, "dark", prefs["theme"])
}

func TestChangePasswordFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := sessionToken(t, w)

	w = doJSON(t, r, http.MethodPost, "/api/profile/password", `{"currentPassword":"nope","newPassword":"pw2"}`, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/profile/password", `{"currentPassword":"pw1","newPassword":"pw2"}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	// the session survives the change
	w = doJSON(t, r, http.MethodGet, "/api/me", "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	// only the new password logs in
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"pw1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"pw2"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportXLSX(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := sessionToken(t, w)

	for i := 1; i <= 2; i++ {
		body := fmt.Sprintf(`{"title":"P%d","description":"D%d"}`, i, i)
		w = doJSON(t, r, http.MethodPost, "/api/projects", body, token)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects/export", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}

func TestInvalidProjectID(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := sessionToken(t, w)

	w = doJSON(t, r, http.MethodDelete, "/api/projects/abc", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/projects/42", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
