package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryShowsLoginWithoutSession(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	resp := env.get(t, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"view":"login"`)
}

func TestEntryRedirectsByRole(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	staffCookie := env.register(t, "alice", "pw1", false)
	resp := env.get(t, "/", staffCookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/clock-in-out", resp.Header.Get("Location"))

	adminCookie := env.register(t, "boss", "pw1", true)
	resp = env.get(t, "/", adminCookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin_dashboard", resp.Header.Get("Location"))
}

func TestRegisterRedirectsToLogin(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	form := url.Values{"username": {"alice"}, "password": {"pw1"}}
	resp := env.postForm(t, "/register", form, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = env.postForm(t, "/admin_register", url.Values{"username": {"boss"}, "password": {"pw1"}}, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin_login", resp.Header.Get("Location"))
}

func TestRegisterDuplicateUsernameFails(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	form := url.Values{"username": {"alice"}, "password": {"pw1"}}
	resp := env.postForm(t, "/register", form, "")
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp = env.postForm(t, "/register", form, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "There was an issue registering the staff", readBody(t, resp))
}

func TestLoginWrongRoleFails(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	form := url.Values{"username": {"alice"}, "password": {"pw1"}}
	resp := env.postForm(t, "/register", form, "")
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// correct username/password, staff account, admin login path
	resp = env.postForm(t, "/admin_login", form, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid admin credentials", readBody(t, resp))

	resp = env.postForm(t, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid staff credentials", readBody(t, resp))
}

func TestLoginEstablishesSession(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	cookie := env.register(t, "alice", "pw1", false)
	resp := env.get(t, "/staff_dashboard", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"username":"alice"`)
}

func TestLogoutClearsSession(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	cookie := env.register(t, "alice", "pw1", false)

	resp := env.get(t, "/logout", cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// the old cookie no longer resolves
	resp = env.get(t, "/history", cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestProtectedRoutesRedirectToEntry(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	staffCookie := env.register(t, "alice", "pw1", false)

	for _, path := range []string{"/history", "/staff_dashboard", "/export-history", "/clock-in-out", "/profile"} {
		resp := env.get(t, path, "")
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
	}

	// staff hitting admin routes gets the same redirect as no session at all
	for _, path := range []string{"/admin_dashboard", "/admin_history", "/admin_export_history", "/edit_staff", "/add_staff", "/admin_clock_in_out"} {
		resp := env.get(t, path, staffCookie)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
	}
}

func TestProfileEditPasswordRule(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	cookie := env.register(t, "alice", "pw1", false)

	// empty new_password keeps the old credential working
	resp := env.postForm(t, "/profile", url.Values{"new_username": {"alice2"}, "new_password": {""}}, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile", resp.Header.Get("Location"))

	resp = env.postForm(t, "/login", url.Values{"username": {"alice2"}, "password": {"pw1"}}, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	// non-empty new_password replaces it
	resp = env.postForm(t, "/profile", url.Values{"new_username": {"alice2"}, "new_password": {"pw2"}}, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp = env.postForm(t, "/login", url.Values{"username": {"alice2"}, "password": {"pw1"}}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = env.postForm(t, "/login", url.Values{"username": {"alice2"}, "password": {"pw2"}}, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestProfileEditConflict(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	env.register(t, "alice", "pw1", false)
	bobCookie := env.register(t, "bob", "pw1", false)

	resp := env.postForm(t, "/profile", url.Values{"new_username": {"alice"}, "new_password": {""}}, bobCookie)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "There was an issue updating your profile", readBody(t, resp))
}

func TestAdminProfileAcceptsAnySession(t *testing.T) {
	t.Parallel()
	env := newTestApp(t)

	staffCookie := env.register(t, "alice", "pw1", false)
	resp := env.postForm(t, "/admin_profile", url.Values{"new_username": {"alice9"}, "new_password": {""}}, staffCookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin_profile", resp.Header.Get("Location"))
}
