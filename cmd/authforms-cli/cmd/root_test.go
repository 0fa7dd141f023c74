package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "authforms-cli v"+version+"\n", out)
}

func TestModes(t *testing.T) {
	out, err := run(t, "modes")
	require.NoError(t, err)
	assert.Contains(t, out, "login\n")
	assert.Contains(t, out, "forgotPassword -> forgotPassword")
	assert.Contains(t, out, "toggleRegister -> register")
	assert.Contains(t, out, "  - phone [tel] (optional)")
	assert.Contains(t, out, "  - captcha [text]")
}

func TestValidate(t *testing.T) {
	t.Run("valid login", func(t *testing.T) {
		out, err := run(t, "validate", "usernameOrEmail=alice", "password=secret")
		require.NoError(t, err)
		assert.Contains(t, out, "All fields are valid")
	})

	t.Run("reports every failing field", func(t *testing.T) {
		out, err := run(t, "validate", "--rule-set", "register", "username=abc", "email=nope")
		require.ErrorIs(t, err, errInvalidFields)
		assert.Contains(t, out, "❌ username: Username must be 4-16 characters.")
		assert.Contains(t, out, "❌ email: Please enter a valid email address.")
		assert.Contains(t, out, "❌ agreeTerms:")
	})

	t.Run("rejects malformed assignments", func(t *testing.T) {
		_, err := run(t, "validate", "username")
		assert.ErrorContains(t, err, "want name=value")
	})

	t.Run("unknown rule set", func(t *testing.T) {
		_, err := run(t, "validate", "--rule-set", "nope")
		assert.Error(t, err)
	})

	t.Run("rules file override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		rules := "rule_sets:\n  login:\n    - field: usernameOrEmail\n      check: email\n      message: Use your email.\n"
		require.NoError(t, os.WriteFile(path, []byte(rules), 0o644))

		out, err := run(t, "validate", "--rules", path, "usernameOrEmail=alice")
		require.Error(t, err)
		assert.Contains(t, out, "❌ usernameOrEmail: Use your email.")
	})
}

func TestSubmit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		out, err := run(t, "submit", "--delay", "1ms", "--mode", "forgotPassword", "resetEmail=user@example.com")
		require.NoError(t, err)
		assert.Contains(t, out, "[success] A password reset link has been sent to your email.")
	})

	t.Run("backend failure", func(t *testing.T) {
		out, err := run(t, "submit", "--delay", "1ms", "--fail", "usernameOrEmail=alice", "password=secret")
		require.Error(t, err)
		assert.Contains(t, out, "[error] Something went wrong. Please try again later.")
	})

	t.Run("invalid fields are not submitted", func(t *testing.T) {
		out, err := run(t, "submit", "--delay", "1ms", "usernameOrEmail=alice")
		require.ErrorIs(t, err, errInvalidFields)
		assert.Contains(t, out, "❌ password: Password is required.")
		assert.NotContains(t, out, "[success]")
	})

	registration := []string{"submit", "--delay", "1ms", "--registration",
		"username=validName", "email=user@example.com", "password=password1",
		"confirmPassword=password1", "captcha=1234"}

	t.Run("registration needs the terms", func(t *testing.T) {
		_, err := run(t, registration...)
		assert.ErrorContains(t, err, "terms have not been agreed")
	})

	t.Run("registration with terms", func(t *testing.T) {
		out, err := run(t, append(registration, "agreedToTerms=yes")...)
		require.NoError(t, err)
		assert.Contains(t, out, "[success] Account created successfully!")
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := run(t, "submit", "--mode", "signup")
		assert.Error(t, err)
	})
}
