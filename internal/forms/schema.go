// Package forms implements the tri-mode auth form and the stand-alone
// registration form on top of the validation engine and submission
// controller.
package forms

import "github.com/nfrund/authforms/internal/domain"

// Input types used by form fields.
const (
	InputText     = "text"
	InputEmail    = "email"
	InputPassword = "password"
	InputTel      = "tel"
	InputCheckbox = "checkbox"
)

// FieldSpec describes one input of a form variant.
type FieldSpec struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Optional    bool
}

var authSchemas = map[domain.Mode][]FieldSpec{
	domain.ModeLogin: {
		{Name: "usernameOrEmail", Label: "Username or email", Type: InputText, Placeholder: "Enter your username or email"},
		{Name: "password", Label: "Password", Type: InputPassword, Placeholder: "Enter your password"},
		{Name: "rememberMe", Label: "Remember me", Type: InputCheckbox, Optional: true},
	},
	domain.ModeRegister: {
		{Name: "username", Label: "Username", Type: InputText, Placeholder: "Choose a username"},
		{Name: "email", Label: "Email", Type: InputEmail, Placeholder: "Enter a valid email address"},
		{Name: "password", Label: "Password", Type: InputPassword, Placeholder: "Enter your password"},
		{Name: "confirmPassword", Label: "Confirm password", Type: InputPassword, Placeholder: "Enter your password again"},
		{Name: "phone", Label: "Phone", Type: InputTel, Placeholder: "Mobile number (optional)", Optional: true},
		{Name: "agreeTerms", Label: "I agree to the terms of service and privacy policy", Type: InputCheckbox},
	},
	domain.ModeForgotPassword: {
		{Name: "resetEmail", Label: "Email", Type: InputEmail, Placeholder: "Enter your registered email"},
	},
}

var registrationSchema = []FieldSpec{
	{Name: "username", Label: "Username", Type: InputText, Placeholder: "Choose a username"},
	{Name: "email", Label: "Email", Type: InputEmail, Placeholder: "Enter a valid email address"},
	{Name: "password", Label: "Password", Type: InputPassword, Placeholder: "Enter your password"},
	{Name: "confirmPassword", Label: "Confirm password", Type: InputPassword, Placeholder: "Enter your password again"},
	{Name: "phone", Label: "Phone", Type: InputTel, Placeholder: "Mobile number (optional)", Optional: true},
	{Name: "captcha", Label: "Verification code", Type: InputText, Placeholder: "Enter the verification code"},
}

// Schema returns the fields relevant to an auth form mode.
func Schema(mode domain.Mode) []FieldSpec {
	return append([]FieldSpec(nil), authSchemas[mode]...)
}

// RegistrationSchema returns the fields of the stand-alone registration
// form. The terms checkbox is not part of it.
func RegistrationSchema() []FieldSpec {
	return append([]FieldSpec(nil), registrationSchema...)
}

// AuthCheckboxes lists the checkbox field names of the auth form.
func AuthCheckboxes() []string {
	return []string{"rememberMe", "agreeTerms"}
}

func specFor(schema []FieldSpec, name string) (FieldSpec, bool) {
	for _, f := range schema {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
