package forms_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/authforms/internal/backend"
	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/forms"
	"github.com/nfrund/authforms/internal/notify"
	"github.com/nfrund/authforms/internal/submission"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusLog struct {
	mu      sync.Mutex
	changes []domain.Status
}

func (l *statusLog) record(s domain.Status) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changes = append(l.changes, s)
}

func (l *statusLog) get() []domain.Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Status(nil), l.changes...)
}

func newAuthForm(t *testing.T, fail bool, opts ...forms.AuthOption) (*forms.AuthForm, *notify.Recorder, *statusLog) {
	t.Helper()
	engine := validation.NewEngine()
	rec := &notify.Recorder{}
	log := &statusLog{}
	b := backend.NewSimulated(backend.WithDelay(time.Millisecond), backend.WithFailure(fail))
	c := submission.NewController(engine, b, rec, submission.WithStatusHook(log.record))
	return forms.NewAuthForm(engine, c, opts...), rec, log
}

func fillRegister(f *forms.AuthForm) {
	f.Set("username", "validName")
	f.Set("email", "user@example.com")
	f.Set("password", "password1")
	f.Set("confirmPassword", "password1")
	f.SetChecked("agreeTerms", true)
}

func TestAuthForm_StartsInLogin(t *testing.T) {
	f, _, _ := newAuthForm(t, false)
	assert.Equal(t, domain.ModeLogin, f.Mode())
	assert.Equal(t, domain.StatusIdle, f.Status())
	assert.False(t, f.PasswordVisible())
	assert.True(t, f.CanSubmit())
	assert.Equal(t, "Log in", f.SubmitLabel())
}

func TestAuthForm_Navigation(t *testing.T) {
	f, _, _ := newAuthForm(t, false)

	require.NoError(t, f.Navigate(domain.ActionToggleRegister))
	assert.Equal(t, domain.ModeRegister, f.Mode())

	require.NoError(t, f.Navigate(domain.ActionToggleRegister))
	assert.Equal(t, domain.ModeLogin, f.Mode())

	require.NoError(t, f.Navigate(domain.ActionForgotPassword))
	assert.Equal(t, domain.ModeForgotPassword, f.Mode())

	err := f.Navigate(domain.ActionToggleRegister)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.ModeForgotPassword, f.Mode())

	require.NoError(t, f.Navigate(domain.ActionBackToLogin))
	assert.Equal(t, domain.ModeLogin, f.Mode())
}

func TestAuthForm_ValidationNeverChangesMode(t *testing.T) {
	f, _, _ := newAuthForm(t, false, forms.WithMode(domain.ModeRegister))
	out := f.Submit(context.Background())
	assert.False(t, out.Submitted)
	assert.Equal(t, domain.ModeRegister, f.Mode())
}

func TestAuthForm_KeepFieldsAcrossModes(t *testing.T) {
	f, _, _ := newAuthForm(t, false)
	f.Set("usernameOrEmail", "alice")
	f.Set("password", "secret")

	require.NoError(t, f.Navigate(domain.ActionToggleRegister))
	assert.Equal(t, "secret", f.Values().Get("password"), "password is shared between modes")

	require.NoError(t, f.Navigate(domain.ActionToggleRegister))
	assert.Equal(t, "alice", f.Values().Get("usernameOrEmail"))
}

func TestAuthForm_ResetOnSwitch(t *testing.T) {
	f, _, _ := newAuthForm(t, false, forms.WithResetPolicy(forms.ResetOnSwitch))
	f.Set("usernameOrEmail", "alice")
	_, err := f.Validate()
	require.NoError(t, err)
	require.NotEmpty(t, f.Errors())

	require.NoError(t, f.Navigate(domain.ActionToggleRegister))
	assert.Empty(t, f.Values().Names())
	assert.Empty(t, f.Errors())
}

func TestParseResetPolicy(t *testing.T) {
	p, err := forms.ParseResetPolicy("reset")
	require.NoError(t, err)
	assert.Equal(t, forms.ResetOnSwitch, p)

	p, err = forms.ParseResetPolicy("")
	require.NoError(t, err)
	assert.Equal(t, forms.KeepFields, p)

	_, err = forms.ParseResetPolicy("sometimes")
	assert.Error(t, err)
}

func TestAuthForm_PasswordVisibility(t *testing.T) {
	f, _, _ := newAuthForm(t, false, forms.WithMode(domain.ModeRegister))

	assert.Equal(t, forms.InputPassword, f.InputType("password"))
	assert.Equal(t, forms.InputPassword, f.InputType("confirmPassword"))

	f.TogglePasswordVisibility()
	assert.True(t, f.PasswordVisible())
	assert.Equal(t, forms.InputText, f.InputType("password"))
	assert.Equal(t, forms.InputText, f.InputType("confirmPassword"))
	assert.Equal(t, forms.InputEmail, f.InputType("email"), "non-password fields are unaffected")

	f.TogglePasswordVisibility()
	assert.False(t, f.PasswordVisible())
	assert.Equal(t, forms.InputPassword, f.InputType("password"))
	assert.Equal(t, forms.InputPassword, f.InputType("confirmPassword"))
}

func TestAuthForm_ValidateRecomputesWholesale(t *testing.T) {
	f, _, _ := newAuthForm(t, false, forms.WithMode(domain.ModeRegister))

	ok, err := f.Validate()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, f.Errors(), "username")

	f.Set("username", "ab")
	assert.Contains(t, f.Errors(), "username", "editing does not clear errors")

	fillRegister(f)
	ok, err = f.Validate()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, f.Errors())
}

func TestAuthForm_SubmitSuccess(t *testing.T) {
	for _, fail := range []bool{false, true} {
		f, rec, log := newAuthForm(t, fail, forms.WithMode(domain.ModeRegister))
		fillRegister(f)

		out := f.Submit(context.Background())

		assert.True(t, out.Submitted)
		assert.Equal(t, fail, out.Err != nil)
		assert.Equal(t, []domain.Status{domain.StatusSubmitting, domain.StatusIdle}, log.get())
		require.Len(t, rec.Notifications(), 1)
		if fail {
			assert.Equal(t, domain.LevelError, rec.Notifications()[0].Level)
		} else {
			assert.Equal(t, "Account created successfully!", rec.Notifications()[0].Message)
		}
		assert.True(t, f.CanSubmit())
	}
}

func TestAuthForm_SubmitRequiresTerms(t *testing.T) {
	f, rec, log := newAuthForm(t, false, forms.WithMode(domain.ModeRegister))
	fillRegister(f)
	f.SetChecked("agreeTerms", false)

	out := f.Submit(context.Background())

	assert.False(t, out.Submitted)
	assert.Equal(t, []string{"agreeTerms"}, f.Errors().Keys())
	assert.Empty(t, log.get())
	assert.Empty(t, rec.Notifications())
}

func TestAuthForm_ForgotPassword(t *testing.T) {
	f, rec, _ := newAuthForm(t, false, forms.WithMode(domain.ModeForgotPassword))
	f.Set("resetEmail", "user@example.com")

	out := f.Submit(context.Background())

	require.True(t, out.Submitted)
	assert.Equal(t, "Send reset link", f.SubmitLabel())
	assert.Equal(t, "A password reset link has been sent to your email.", rec.Notifications()[0].Message)
}

func TestAuthForm_ErrorsReturnsCopy(t *testing.T) {
	f, _, _ := newAuthForm(t, false)
	_, _ = f.Validate()
	errs := f.Errors()
	errs.Clear("password")
	assert.Contains(t, f.Errors(), "password")
}
