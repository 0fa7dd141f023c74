package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/backend"
	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/forms"
	"github.com/nfrund/authforms/internal/handlers"
	"github.com/nfrund/authforms/internal/notify"
	"github.com/nfrund/authforms/internal/rendering"
	"github.com/nfrund/authforms/internal/testutils"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func setupFormTest(t *testing.T, fail bool, policy forms.ResetPolicy) (*echo.Echo, *notify.Recorder) {
	t.Helper()
	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))

	bus := &notify.Recorder{}
	b := backend.NewSimulated(backend.WithDelay(time.Millisecond), backend.WithFailure(fail))
	h := handlers.NewFormHandler(validation.NewEngine(), b, bus, policy)

	e.GET("/auth", h.AuthGet)
	e.POST("/auth/submit", h.AuthSubmit)
	e.POST("/auth/navigate", h.AuthNavigate)
	e.POST("/auth/toggle-password", h.AuthTogglePassword)
	e.GET("/register", h.RegisterGet)
	e.POST("/register", h.RegisterPost)
	e.POST("/register/terms", h.RegisterTerms)
	return e, bus
}

func validRegisterForm() url.Values {
	form := url.Values{}
	form.Set("mode", "register")
	form.Set("username", "validName")
	form.Set("email", "user@example.com")
	form.Set("password", "password1")
	form.Set("confirmPassword", "password1")
	form.Set("agreeTerms", "on")
	return form
}

func TestAuthGet(t *testing.T) {
	e, _ := setupFormTest(t, false, forms.KeepFields)

	t.Run("defaults to login as a full page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<!doctype html>")
		assert.Contains(t, body, `name="usernameOrEmail"`)
		assert.Contains(t, body, `value="login"`)
	})

	t.Run("renders the requested mode", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth?mode=forgotPassword", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `name="resetEmail"`)
		assert.Contains(t, rec.Body.String(), "Send reset link")
	})

	t.Run("rejects an unknown mode", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth?mode=bogus", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthSubmit(t *testing.T) {
	t.Run("shows field errors and stays in mode", func(t *testing.T) {
		e, bus := setupFormTest(t, false, forms.KeepFields)
		form := url.Values{}
		form.Set("mode", "register")
		form.Set("username", "abc")

		rec := testutils.PostForm(e, "/auth/submit", form, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.NotContains(t, body, "<!doctype html>")
		assert.Contains(t, body, "Username must be 4-16 characters.")
		assert.Contains(t, body, `value="register"`)
		assert.Empty(t, bus.Notifications())
	})

	t.Run("flashes success and publishes to the bus", func(t *testing.T) {
		e, bus := setupFormTest(t, false, forms.KeepFields)

		rec := testutils.PostForm(e, "/auth/submit", validRegisterForm(), true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Account created successfully!")
		assert.Contains(t, rec.Body.String(), `value="register"`)
		require.Len(t, bus.Notifications(), 1)
		assert.Equal(t, domain.LevelSuccess, bus.Notifications()[0].Level)
	})

	t.Run("flashes a generic error on backend failure", func(t *testing.T) {
		e, bus := setupFormTest(t, true, forms.KeepFields)
		form := url.Values{}
		form.Set("usernameOrEmail", "someone")
		form.Set("password", "secret")

		rec := testutils.PostForm(e, "/auth/submit", form, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong. Please try again later.")
		assert.Contains(t, rec.Body.String(), `value="someone"`)
		require.Len(t, bus.Notifications(), 1)
		assert.Equal(t, domain.LevelError, bus.Notifications()[0].Level)
	})
}

func TestAuthNavigate(t *testing.T) {
	t.Run("every offered action switches mode", func(t *testing.T) {
		e, _ := setupFormTest(t, false, forms.KeepFields)
		tests := []struct {
			from, action, to string
		}{
			{"login", "toggleRegister", "register"},
			{"login", "forgotPassword", "forgotPassword"},
			{"register", "toggleRegister", "login"},
			{"forgotPassword", "backToLogin", "login"},
		}
		for _, tt := range tests {
			form := url.Values{"mode": {tt.from}, "action": {tt.action}}
			rec := testutils.PostForm(e, "/auth/navigate", form, true)

			require.Equal(t, http.StatusOK, rec.Code, "%s from %s", tt.action, tt.from)
			assert.Contains(t, rec.Body.String(), `<input type="hidden" name="mode" value="`+tt.to+`">`)
		}
	})

	t.Run("keeps values of hidden fields", func(t *testing.T) {
		e, _ := setupFormTest(t, false, forms.KeepFields)
		form := url.Values{}
		form.Set("mode", "login")
		form.Set("usernameOrEmail", "alice")
		form.Set("action", "toggleRegister")

		rec := testutils.PostForm(e, "/auth/navigate", form, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `value="register"`)
		assert.Contains(t, body, `<input type="hidden" name="usernameOrEmail" value="alice">`)
	})

	t.Run("reset policy drops values", func(t *testing.T) {
		e, _ := setupFormTest(t, false, forms.ResetOnSwitch)
		form := url.Values{}
		form.Set("mode", "login")
		form.Set("usernameOrEmail", "alice")
		form.Set("action", "toggleRegister")

		rec := testutils.PostForm(e, "/auth/navigate", form, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "alice")
	})

	t.Run("rejects an action the mode does not offer", func(t *testing.T) {
		e, _ := setupFormTest(t, false, forms.KeepFields)
		form := url.Values{}
		form.Set("mode", "forgotPassword")
		form.Set("action", "toggleRegister")

		rec := testutils.PostForm(e, "/auth/navigate", form, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthTogglePassword(t *testing.T) {
	e, _ := setupFormTest(t, false, forms.KeepFields)
	form := url.Values{}
	form.Set("mode", "login")
	form.Set("password", "secret")

	rec := testutils.PostForm(e, "/auth/toggle-password", form, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<input type="text" id="password" name="password" value="secret"`)
	assert.Contains(t, body, `name="showPassword" value="true"`)
	assert.Contains(t, body, "Hide password")
}

func TestRegister(t *testing.T) {
	t.Run("get renders an empty form", func(t *testing.T) {
		e, _ := setupFormTest(t, false, forms.KeepFields)
		req := httptest.NewRequest(http.MethodGet, "/register", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `name="captcha"`)
		assert.Contains(t, rec.Body.String(), "Register now")
	})

	validRegistration := func() url.Values {
		form := url.Values{}
		form.Set("username", "validName")
		form.Set("email", "user@example.com")
		form.Set("password", "password1")
		form.Set("confirmPassword", "password1")
		form.Set("captcha", "1234")
		return form
	}

	t.Run("blocks submit without terms", func(t *testing.T) {
		e, bus := setupFormTest(t, false, forms.KeepFields)

		rec := testutils.PostForm(e, "/register", validRegistration(), true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Account created successfully!")
		assert.Empty(t, bus.Notifications())
	})

	t.Run("submits with terms", func(t *testing.T) {
		e, bus := setupFormTest(t, false, forms.KeepFields)
		form := validRegistration()
		form.Set("agreedToTerms", "on")

		rec := testutils.PostForm(e, "/register", form, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Account created successfully!")
		require.Len(t, bus.Notifications(), 1)
	})

	t.Run("failure uses registration text", func(t *testing.T) {
		e, _ := setupFormTest(t, true, forms.KeepFields)
		form := validRegistration()
		form.Set("agreedToTerms", "on")

		rec := testutils.PostForm(e, "/register", form, true)

		assert.Contains(t, rec.Body.String(), "Registration failed. Please try again later.")
	})
}

const registrationSubmitDisabled = `id="registration-submit" class="w-full py-2 px-4 rounded-md text-white bg-indigo-600 disabled:opacity-50" disabled>`

func TestSubmitControlInFlight(t *testing.T) {
	e, _ := setupFormTest(t, false, forms.KeepFields)

	t.Run("auth form disables its submit buttons during a request", func(t *testing.T) {
		rec := testutils.PostForm(e, "/auth/navigate", url.Values{"mode": {"login"}, "action": {"toggleRegister"}}, true)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `hx-disabled-elt="find button[type=submit]"`)
		assert.Contains(t, body, `hx-sync="this:drop"`)
		assert.Contains(t, body, `hx-indicator="#auth-submit"`)
		assert.Contains(t, body, `<span class="busy-label">Processing...</span>`)
	})

	t.Run("registration form disables its submit buttons during a request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/register", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		body := rec.Body.String()
		assert.Contains(t, body, `hx-disabled-elt="find button[type=submit]"`)
		assert.Contains(t, body, `hx-indicator="#registration-submit"`)
		assert.Contains(t, body, `<span class="busy-label">Submitting...</span>`)
	})
}

func TestRegisterTerms(t *testing.T) {
	e, bus := setupFormTest(t, false, forms.KeepFields)

	t.Run("submit starts disabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/register", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Contains(t, rec.Body.String(), registrationSubmitDisabled)
		assert.Contains(t, rec.Body.String(), `hx-post="/register/terms"`)
	})

	t.Run("checking the terms enables submit without submitting", func(t *testing.T) {
		form := url.Values{}
		form.Set("username", "validName")
		form.Set("agreedToTerms", "on")

		rec := testutils.PostForm(e, "/register/terms", form, true)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.NotContains(t, body, registrationSubmitDisabled)
		assert.Contains(t, body, `value="validName"`)
		assert.Contains(t, body, `name="agreedToTerms" checked`)
		assert.NotContains(t, body, "field-error")
		assert.Empty(t, bus.Notifications())
	})

	t.Run("unchecking disables it again", func(t *testing.T) {
		rec := testutils.PostForm(e, "/register/terms", url.Values{"username": {"validName"}}, true)

		assert.Contains(t, rec.Body.String(), registrationSubmitDisabled)
	})
}
