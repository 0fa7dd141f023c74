package view

import (
	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/forms"
	"github.com/nfrund/authforms/internal/view/dto/auth"
)

var modeTitles = map[domain.Mode]string{
	domain.ModeLogin:          "Log in to your account",
	domain.ModeRegister:       "Create a new account",
	domain.ModeForgotPassword: "Reset your password",
}

var actionLabels = map[domain.Action]string{
	domain.ActionForgotPassword: "Forgot password?",
	domain.ActionToggleRegister: "Need an account? Register",
	domain.ActionBackToLogin:    "Back to login",
}

// NewAuthFormData maps an AuthForm onto its view model. Values of fields the
// current mode does not show are carried as hidden inputs so the shared field
// state survives the round trip.
func NewAuthFormData(f *forms.AuthForm) auth.AuthFormData {
	errs := f.Errors()
	values := f.Values()
	schema := f.Schema()

	data := auth.AuthFormData{
		Mode:         f.Mode().String(),
		Title:        modeTitles[f.Mode()],
		Hidden:       make(map[string]string),
		ShowPassword: f.PasswordVisible(),
		SubmitLabel:  f.SubmitLabel(),
		BusyLabel:    forms.AuthBusyLabel,
		CanSubmit:    f.CanSubmit(),
	}

	shown := make(map[string]bool, len(schema))
	for _, spec := range schema {
		shown[spec.Name] = true
		if spec.Type == forms.InputPassword {
			data.HasPassword = true
		}
		data.Fields = append(data.Fields, auth.FieldData{
			Name:        spec.Name,
			Label:       spec.Label,
			Type:        f.InputType(spec.Name),
			Placeholder: spec.Placeholder,
			Value:       values.Get(spec.Name),
			Checked:     values.Checked(spec.Name),
			Optional:    spec.Optional,
			Error:       errs[spec.Name],
		})
	}

	// Password values are carried as well. Under KeepFields they are part of
	// the shared state, and a hidden input exposes them no more than the
	// masked input that posted them. Under ResetOnSwitch nothing is left to
	// carry after a mode change.
	for _, name := range values.Names() {
		if shown[name] {
			continue
		}
		if v := values.Get(name); v != "" {
			data.Hidden[name] = v
		} else if values.Checked(name) {
			data.Hidden[name] = "on"
		}
	}

	for _, a := range domain.Actions(f.Mode()) {
		label := actionLabels[a]
		if a == domain.ActionToggleRegister && f.Mode() == domain.ModeRegister {
			label = "Already have an account? Log in"
		}
		data.Actions = append(data.Actions, auth.ActionData{Action: string(a), Label: label})
	}
	return data
}

// NewRegistrationData maps a RegistrationForm onto its view model.
func NewRegistrationData(f *forms.RegistrationForm) auth.RegistrationData {
	errs := f.Errors()
	data := auth.RegistrationData{
		AgreedToTerms: f.AgreedToTerms(),
		SubmitLabel:   f.SubmitLabel(),
		BusyLabel:     forms.RegistrationBusyLabel,
		CanSubmit:     f.CanSubmit(),
	}
	for _, spec := range f.Schema() {
		data.Fields = append(data.Fields, auth.FieldData{
			Name:        spec.Name,
			Label:       spec.Label,
			Type:        f.InputType(spec.Name),
			Placeholder: spec.Placeholder,
			Value:       f.Values().Get(spec.Name),
			Optional:    spec.Optional,
			Error:       errs[spec.Name],
		})
	}
	return data
}
