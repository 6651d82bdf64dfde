package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"truefeedback/internal/models"
	"truefeedback/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	r, users := newTestApp(t)
	user := createVerifiedUser(t, users, "ann01", "secret1")

	send := func(username, content string) int {
		w := doJSON(t, r, http.MethodPost, "/api/send-message", map[string]string{
			"username": username, "content": content,
		}, nil)
		return w.Code
	}

	// Unknown recipient.
	assert.Equal(t, http.StatusNotFound, send("nobody", "hi there"))

	// Content out of bounds never reaches storage.
	assert.Equal(t, http.StatusForbidden, send("ann01", "hey"))
	assert.Equal(t, http.StatusForbidden, send("ann01", strings.Repeat("x", 301)))
	messages, err := users.MessagesByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	// Happy path.
	assert.Equal(t, http.StatusCreated, send("ann01", "hi there"))
	messages, err = users.MessagesByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hi there", messages[0].Content)
	assert.False(t, messages[0].CreatedAt.IsZero(), "a message always carries its timestamp")
	assert.NotEmpty(t, messages[0].ID)
}

func TestSendMessageSanitizesHTML(t *testing.T) {
	r, users := newTestApp(t)
	user := createVerifiedUser(t, users, "ann01", "secret1")

	w := doJSON(t, r, http.MethodPost, "/api/send-message", map[string]string{
		"username": "ann01",
		"content":  "<b>hello</b> there <script>alert(1)</script>friend",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	messages, err := users.MessagesByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello there friend", messages[0].Content)

	// A payload that is nothing but markup sanitizes to under 5 chars.
	w = doJSON(t, r, http.MethodPost, "/api/send-message", map[string]string{
		"username": "ann01",
		"content":  "<script>alert(1)</script>",
	}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSendMessageRespectsAcceptToggle(t *testing.T) {
	r, users := newTestApp(t)
	user := createVerifiedUser(t, users, "ann01", "secret1")
	cookies := signIn(t, r, "ann01", "secret1")

	// Turn the toggle off.
	off := false
	w := doJSON(t, r, http.MethodPost, "/api/accept-messages",
		map[string]interface{}{"acceptMessages": off}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	updated := parseBody(t, w)["updatedUser"].(map[string]interface{})
	assert.Equal(t, false, updated["isAcceptingMessages"])

	w = doJSON(t, r, http.MethodPost, "/api/send-message", map[string]string{
		"username": "ann01", "content": "hi there",
	}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User is not accepting messages", parseBody(t, w)["message"])

	messages, err := users.MessagesByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, messages, "a refused send appends nothing")

	// Back on.
	on := true
	w = doJSON(t, r, http.MethodPost, "/api/accept-messages",
		map[string]interface{}{"acceptMessages": on}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/send-message", map[string]string{
		"username": "ann01", "content": "hi there",
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAcceptMessagesValidation(t *testing.T) {
	r, users := newTestApp(t)
	createVerifiedUser(t, users, "ann01", "secret1")
	cookies := signIn(t, r, "ann01", "secret1")

	// Missing field.
	w := doJSON(t, r, http.MethodPost, "/api/accept-messages",
		map[string]interface{}{}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No session.
	w = doJSON(t, r, http.MethodPost, "/api/accept-messages",
		map[string]interface{}{"acceptMessages": true}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMessagesOrderingAndEmpty(t *testing.T) {
	r, users := newTestApp(t)
	user := createVerifiedUser(t, users, "ann01", "secret1")
	cookies := signIn(t, r, "ann01", "secret1")

	// Empty inbox is a valid 200 with an empty array.
	w := doJSON(t, r, http.MethodGet, "/api/get-messages", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Empty(t, body["messages"])

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"first message", "second message", "third message"} {
		msg := &models.Message{Content: content, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, users.AppendMessage(user.ID, msg))
	}

	w = doJSON(t, r, http.MethodGet, "/api/get-messages", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	got := parseBody(t, w)["messages"].([]interface{})
	require.Len(t, got, 3)

	contents := make([]string, 0, 3)
	var prev time.Time
	for i, m := range got {
		entry := m.(map[string]interface{})
		contents = append(contents, entry["content"].(string))
		created, err := time.Parse(time.RFC3339Nano, entry["created_at"].(string))
		require.NoError(t, err)
		if i > 0 {
			assert.True(t, prev.After(created), "messages must be strictly newest first")
		}
		prev = created
	}
	assert.Equal(t, []string{"third message", "second message", "first message"}, contents)
}

func TestDeleteMessage(t *testing.T) {
	r, users := newTestApp(t)
	user := createVerifiedUser(t, users, "ann01", "secret1")
	cookies := signIn(t, r, "ann01", "secret1")

	keep := &models.Message{Content: "keep this one", CreatedAt: time.Now().Add(-time.Minute)}
	drop := &models.Message{Content: "drop this one", CreatedAt: time.Now()}
	require.NoError(t, users.AppendMessage(user.ID, keep))
	require.NoError(t, users.AppendMessage(user.ID, drop))

	// No session: 401.
	w := doJSON(t, r, http.MethodDelete, "/api/delete-message/"+drop.ID, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/delete-message/"+drop.ID, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// The deleted id never shows up again.
	w = doJSON(t, r, http.MethodGet, "/api/get-messages", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	got := parseBody(t, w)["messages"].([]interface{})
	require.Len(t, got, 1)
	assert.Equal(t, keep.ID, got[0].(map[string]interface{})["id"])

	// Deleting it again is a 404.
	w = doJSON(t, r, http.MethodDelete, "/api/delete-message/"+drop.ID, nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Another user cannot delete someone else's message.
	createVerifiedUser(t, users, "bob", "secret1")
	bobCookies := signIn(t, r, "bob", "secret1")
	w = doJSON(t, r, http.MethodDelete, "/api/delete-message/"+keep.ID, nil, bobCookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuggestMessages(t *testing.T) {
	r, _ := newTestApp(t)

	// No LLM configured: the endpoint still answers 200 with the fallback
	// triple.
	w := doJSON(t, r, http.MethodPost, "/api/suggest-messages", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	suggestions := body["suggestions"].(string)
	assert.Equal(t, services.FallbackSuggestions, suggestions)
	assert.Len(t, strings.Split(suggestions, "||"), 3)
}

// Mirrors the end-to-end scenario from the product brief: register, verify,
// receive an anonymous message, read it back first in the inbox.
func TestRegistrationToInboxScenario(t *testing.T) {
	r, users := newTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/api/sign-up", map[string]string{
		"username": "ann01", "email": "a@x.com", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	user, err := users.ByUsername("ann01")
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	require.Regexp(t, `^[0-9]{6}$`, user.VerifyCode)

	w = doJSON(t, r, http.MethodPost, "/api/verify-code", map[string]string{
		"username": "ann01", "code": user.VerifyCode,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/send-message", map[string]string{
		"username": "ann01", "content": "hi there",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	cookies := signIn(t, r, "ann01", "secret1")
	w = doJSON(t, r, http.MethodGet, "/api/get-messages", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	got := parseBody(t, w)["messages"].([]interface{})
	require.NotEmpty(t, got)
	assert.Equal(t, "hi there", got[0].(map[string]interface{})["content"])
}
