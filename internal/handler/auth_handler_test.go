package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func registerBody(username string) map[string]string {
	return map[string]string{
		"username":   username,
		"password":   "secret1",
		"first_name": "Alice",
		"last_name":  "Smith",
		"phone":      "+15551234567",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/register", "", registerBody("alice"))
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &res)
	require.NotEmpty(t, res.Token)

	username, err := app.auth.VerifyToken(res.Token)
	require.NoError(t, err)
	require.Equal(t, "alice", username)
}

func TestRegisterEndpoint_DuplicateUsername(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/register", "", registerBody("alice"))
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/auth/register", "", registerBody("alice"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "username taken")
}

func TestRegisterEndpoint_MissingField(t *testing.T) {
	app := newTestApp(t)

	body := registerBody("alice")
	delete(body, "phone")

	w := app.do(t, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"status":400`)
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/register", "", registerBody("alice"))
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &res)
	require.NotEmpty(t, res.Token)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/register", "", registerBody("alice"))
	require.Equal(t, http.StatusOK, w.Code)

	// Wrong password and unknown username report identically.
	w = app.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid username/password")

	w = app.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "ghost",
		"password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid username/password")
}

// TestEndToEndFlow walks the whole API: register, login, send, fetch from both
// sides and a third party, then mark read.
func TestEndToEndFlow(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/register", "", registerBody("alice"))
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &login)
	alice := login.Token

	bob := app.register(t, "bob", "Bob", "Jones")
	carol := app.register(t, "carol", "Carol", "Baker")

	id := sendMessage(t, app, alice, "bob", "hi")

	for _, token := range []string{alice, bob} {
		w = app.do(t, http.MethodGet, "/messages/"+id, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = app.do(t, http.MethodGet, "/messages/"+id, carol, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/messages/"+id+"/read", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/messages/"+id, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched struct {
		Message struct {
			ReadAt *string `json:"read_at"`
		} `json:"message"`
	}
	decodeBody(t, w, &fetched)
	require.NotNil(t, fetched.Message.ReadAt)
}
