package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"truefeedback/internal/config"
	"truefeedback/internal/middleware"
	"truefeedback/internal/models"
	"truefeedback/internal/router"
	"truefeedback/internal/services"
	"truefeedback/internal/store"
	"truefeedback/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApp(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	users := store.NewMemoryStore()
	mail := services.NewMailService(config.SMTPConfig{}) // disabled, no SMTP env
	llm := services.NewLLMService(config.LLMConfig{})    // no token, always falls back

	r := gin.New()
	r.Use(sessions.Sessions("truefeedback_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(middleware.LoadUser(users))
	router.RegisterRoutes(r, users, mail, llm)
	return r, users
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// createVerifiedUser seeds a verified, accepting user directly in the store.
func createVerifiedUser(t *testing.T, users store.UserStore, username, password string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Username:            username,
		Email:               username + "@x.com",
		Password:            hash,
		IsVerified:          true,
		IsAcceptingMessages: true,
	}
	require.NoError(t, users.Create(user))
	return user
}

// signIn authenticates and returns the session cookies.
func signIn(t *testing.T, r *gin.Engine, identifier, password string) []*http.Cookie {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/sign-in", map[string]string{
		"identifier": identifier,
		"password":   password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, "sign-in failed: %s", w.Body.String())
	return w.Result().Cookies()
}
