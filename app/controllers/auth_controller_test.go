package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"simpleblog/app/auth"
	"simpleblog/app/services"
	"simpleblog/app/session"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testCookie = "test_session"

func setupAuthController(t *testing.T) (*mux.Router, *session.Store) {
	t.Helper()
	store, err := session.Open("", time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	authService := services.NewAuthService("admin", string(hash), store, nil)
	controller := NewAuthController(authService, loadTemplates(t), testCookie, time.Hour, false, nil)

	r := mux.NewRouter()
	r.HandleFunc("/login", controller.LoginForm).Methods("GET")
	r.HandleFunc("/login", controller.Login).Methods("POST")
	r.HandleFunc("/logout", controller.Logout).Methods("POST")
	return r, store
}

func postLogin(router http.Handler, username, password string) *httptest.ResponseRecorder {
	body := url.Values{"username": {username}, "password": {password}}.Encode()
	req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

func TestAuthController_LoginForm(t *testing.T) {
	router, _ := setupAuthController(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="password"`)

	req := httptest.NewRequest("GET", "/login", nil)
	req = req.WithContext(auth.WithPrincipal(req.Context(), admin))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestAuthController_Login(t *testing.T) {
	t.Run("valid credentials set a session cookie", func(t *testing.T) {
		router, store := setupAuthController(t)
		rr := postLogin(router, "admin", "s3cret")

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
		cookie := sessionCookie(rr)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

		principal, err := store.Lookup(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "admin", principal.Username)
	})

	t.Run("wrong password re-renders the form", func(t *testing.T) {
		router, _ := setupAuthController(t)
		rr := postLogin(router, "admin", "nope")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), LoginFailedMessage)
		assert.Contains(t, rr.Body.String(), `value="admin"`)
		assert.Nil(t, sessionCookie(rr))
	})
}

func TestAuthController_Logout(t *testing.T) {
	router, store := setupAuthController(t)
	cookie := sessionCookie(postLogin(router, "admin", "s3cret"))
	require.NotNil(t, cookie)

	req := httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	cleared := sessionCookie(rr)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)

	_, err := store.Lookup(cookie.Value)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
