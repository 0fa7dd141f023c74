package forms

import (
	"context"
	"fmt"
	"strings"

	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/fields"
	"github.com/nfrund/authforms/internal/submission"
	"github.com/nfrund/authforms/internal/validation"
)

// ResetPolicy decides what happens to field state when the mode changes.
type ResetPolicy int

const (
	// KeepFields shares one field state across all modes, so values typed in
	// one mode are still there when the user comes back to it.
	KeepFields ResetPolicy = iota
	// ResetOnSwitch clears every value and error on each mode change.
	ResetOnSwitch
)

func (p ResetPolicy) String() string {
	if p == ResetOnSwitch {
		return "reset"
	}
	return "keep"
}

// ParseResetPolicy accepts "keep" or "reset".
func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return KeepFields, nil
	case "reset":
		return ResetOnSwitch, nil
	}
	return KeepFields, fmt.Errorf("unknown reset policy %q", s)
}

// AuthForm is the login / register / forgot-password form.
type AuthForm struct {
	mode         domain.Mode
	values       *fields.State
	errors       validation.ErrorMap
	showPassword bool
	policy       ResetPolicy

	engine     *validation.Engine
	controller *submission.Controller
}

// AuthOption configures an AuthForm.
type AuthOption func(*AuthForm)

// WithResetPolicy sets the mode-switch reset policy.
func WithResetPolicy(p ResetPolicy) AuthOption {
	return func(f *AuthForm) { f.policy = p }
}

// WithMode starts the form in mode m instead of Login.
func WithMode(m domain.Mode) AuthOption {
	return func(f *AuthForm) { f.mode = m }
}

// WithValues starts the form with existing field state.
func WithValues(s *fields.State) AuthOption {
	return func(f *AuthForm) { f.values = s }
}

// WithPasswordVisible starts the form with passwords shown or masked.
func WithPasswordVisible(visible bool) AuthOption {
	return func(f *AuthForm) { f.showPassword = visible }
}

// NewAuthForm creates a form in Login mode with empty fields.
func NewAuthForm(engine *validation.Engine, controller *submission.Controller, opts ...AuthOption) *AuthForm {
	f := &AuthForm{
		mode:       domain.ModeLogin,
		values:     fields.New(),
		errors:     validation.ErrorMap{},
		engine:     engine,
		controller: controller,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *AuthForm) Mode() domain.Mode           { return f.mode }
func (f *AuthForm) Values() *fields.State       { return f.values }
func (f *AuthForm) Policy() ResetPolicy         { return f.policy }
func (f *AuthForm) Status() domain.Status       { return f.controller.Status() }
func (f *AuthForm) Schema() []FieldSpec         { return Schema(f.mode) }
func (f *AuthForm) Errors() validation.ErrorMap { return copyErrors(f.errors) }

// Set updates a text field. Errors are left alone until the next
// validation pass.
func (f *AuthForm) Set(name, value string) {
	f.values.Set(name, value)
}

// SetChecked updates a checkbox field.
func (f *AuthForm) SetChecked(name string, checked bool) {
	f.values.SetChecked(name, checked)
}

// Navigate applies a user navigation action.
func (f *AuthForm) Navigate(action domain.Action) error {
	next, err := domain.Transition(f.mode, action)
	if err != nil {
		return err
	}
	f.mode = next
	if f.policy == ResetOnSwitch {
		f.values.Clear()
		f.errors = validation.ErrorMap{}
	}
	return nil
}

// TogglePasswordVisibility flips masking for every password field at once.
func (f *AuthForm) TogglePasswordVisibility() {
	f.showPassword = !f.showPassword
}

// PasswordVisible reports whether password fields are shown in clear text.
func (f *AuthForm) PasswordVisible() bool {
	return f.showPassword
}

// InputType returns the input type to render for a field of the current
// mode, honouring the password visibility flag.
func (f *AuthForm) InputType(name string) string {
	spec, ok := specFor(f.Schema(), name)
	if !ok {
		return InputText
	}
	if spec.Type == InputPassword && f.showPassword {
		return InputText
	}
	return spec.Type
}

func (f *AuthForm) rules() (validation.RuleSet, error) {
	return f.engine.RuleSet(f.mode.String())
}

// Validate recomputes the error map for the current mode from scratch.
func (f *AuthForm) Validate() (bool, error) {
	rs, err := f.rules()
	if err != nil {
		return false, err
	}
	f.errors = f.engine.ValidateRules(f.values, rs)
	return f.errors.Valid(), nil
}

// Submit validates the form and, if valid, runs one backend attempt.
func (f *AuthForm) Submit(ctx context.Context) submission.Outcome {
	rs, err := f.rules()
	if err != nil {
		return submission.Outcome{Errors: validation.ErrorMap{}, Err: err}
	}
	out := f.controller.Submit(ctx, submission.Request{
		Mode:   f.mode,
		Rules:  rs,
		Fields: f.values,
		Gate:   true,
	})
	f.errors = out.Errors
	return out
}

// CanSubmit reports whether the submit control is enabled.
func (f *AuthForm) CanSubmit() bool {
	return !f.controller.Busy()
}

// AuthBusyLabel is the submit control's text while a submission is in flight.
const AuthBusyLabel = "Processing..."

var submitLabels = map[domain.Mode]string{
	domain.ModeLogin:          "Log in",
	domain.ModeRegister:       "Register",
	domain.ModeForgotPassword: "Send reset link",
}

// SubmitLabel is the text of the submit control.
func (f *AuthForm) SubmitLabel() string {
	if f.controller.Busy() {
		return AuthBusyLabel
	}
	return submitLabels[f.mode]
}

func copyErrors(m validation.ErrorMap) validation.ErrorMap {
	out := make(validation.ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
