package testutils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/config"
)

// testDefaults keep submissions fast and mail local.
var testDefaults = map[string]string{
	"SERVER_ADDR":       ":0",
	"SESSION_SECRET":    "a-very-secret-key-for-testing-!",
	"APP_BASE_URL":      "http://localhost:8080",
	"EMAIL_PROVIDER":    "log",
	"SUBMIT_DELAY":      "1ms",
	"SUBMIT_FAIL":       "false",
	"FORM_RESET_POLICY": "keep",
	"RULES_FILE":        "",
}

// ConfigForTests returns a config.Provider built from test defaults, then a
// .env.test file at the project root if present, then overrides.
func ConfigForTests(t *testing.T, overrides map[string]string) config.Provider {
	t.Helper()

	env := make(map[string]string, len(testDefaults))
	for k, v := range testDefaults {
		env[k] = v
	}

	if root, ok := projectRoot(); ok {
		fileEnv, err := godotenv.Read(filepath.Join(root, ".env.test"))
		if err == nil {
			for k, v := range fileEnv {
				env[k] = v
			}
		}
	}

	for k, v := range overrides {
		env[k] = v
	}

	// t.Setenv restores the previous values when the test ends.
	for key, value := range env {
		t.Setenv(key, value)
	}
	return config.New()
}

// projectRoot walks up from the working directory to the go.mod.
func projectRoot() (string, bool) {
	path, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path, true
		}
		if path == filepath.Dir(path) {
			return "", false
		}
		path = filepath.Dir(path)
	}
}

// PostForm sends a url-encoded POST through e. htmx marks it as an htmx
// request.
func PostForm(e *echo.Echo, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
