package forms

import (
	"context"

	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/fields"
	"github.com/nfrund/authforms/internal/submission"
	"github.com/nfrund/authforms/internal/validation"
)

// RegistrationForm is the stand-alone registration form. Unlike AuthForm it
// clears a field's error as soon as the field is edited, keeps the terms
// agreement outside the field state and never shows passwords.
type RegistrationForm struct {
	values *fields.State
	errors validation.ErrorMap
	agreed bool

	engine     *validation.Engine
	controller *submission.Controller
}

// NewRegistrationForm creates an empty registration form. The controller
// should be built with submission.RegistrationMessages.
func NewRegistrationForm(engine *validation.Engine, controller *submission.Controller) *RegistrationForm {
	return &RegistrationForm{
		values:     fields.New(),
		errors:     validation.ErrorMap{},
		engine:     engine,
		controller: controller,
	}
}

func (f *RegistrationForm) Values() *fields.State       { return f.values }
func (f *RegistrationForm) Errors() validation.ErrorMap { return copyErrors(f.errors) }
func (f *RegistrationForm) Status() domain.Status       { return f.controller.Status() }
func (f *RegistrationForm) Schema() []FieldSpec         { return RegistrationSchema() }
func (f *RegistrationForm) AgreedToTerms() bool         { return f.agreed }

// Set updates a field and drops any error currently shown for it.
func (f *RegistrationForm) Set(name, value string) {
	f.values.Set(name, value)
	f.errors.Clear(name)
}

// SetAgreedToTerms updates the terms checkbox.
func (f *RegistrationForm) SetAgreedToTerms(agreed bool) {
	f.agreed = agreed
}

// InputType returns the input type for a field. Password fields are always
// masked.
func (f *RegistrationForm) InputType(name string) string {
	if spec, ok := specFor(registrationSchema, name); ok {
		return spec.Type
	}
	return InputText
}

func (f *RegistrationForm) rules() (validation.RuleSet, error) {
	return f.engine.RuleSet(validation.RuleSetRegistration)
}

// Validate recomputes every field error.
func (f *RegistrationForm) Validate() (bool, error) {
	rs, err := f.rules()
	if err != nil {
		return false, err
	}
	f.errors = f.engine.ValidateRules(f.values, rs)
	return f.errors.Valid(), nil
}

// Submit validates the form and, when valid and the terms are agreed, runs
// one backend attempt. Validation messages are surfaced even when the terms
// gate blocks the attempt.
func (f *RegistrationForm) Submit(ctx context.Context) submission.Outcome {
	rs, err := f.rules()
	if err != nil {
		return submission.Outcome{Errors: validation.ErrorMap{}, Err: err}
	}
	out := f.controller.Submit(ctx, submission.Request{
		Mode:   domain.ModeRegister,
		Rules:  rs,
		Fields: f.values,
		Gate:   f.agreed,
	})
	f.errors = out.Errors
	return out
}

// CanSubmit reports whether the submit control is enabled: the terms must be
// agreed and no submission may be in flight.
func (f *RegistrationForm) CanSubmit() bool {
	return f.agreed && !f.controller.Busy()
}

// RegistrationBusyLabel is the submit control's text while a submission is in
// flight.
const RegistrationBusyLabel = "Submitting..."

// SubmitLabel is the text of the submit control.
func (f *RegistrationForm) SubmitLabel() string {
	if f.controller.Busy() {
		return RegistrationBusyLabel
	}
	return "Register now"
}
