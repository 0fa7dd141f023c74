package validation

// Names of the built-in rule sets. The first three match domain.Mode names.
const (
	RuleSetLogin          = "login"
	RuleSetRegister       = "register"
	RuleSetForgotPassword = "forgotPassword"
	RuleSetRegistration   = "registration"
)

// Messages shared by several rule sets.
const (
	msgUsernameLength  = "Username must be 4-16 characters."
	msgPasswordsDiffer = "Passwords do not match."
	msgInvalidEmail    = "Please enter a valid email address."
)

// DefaultRuleSets returns a fresh copy of the built-in rule sets.
//
// The auth form's register mode and the stand-alone registration form share
// username and confirmation rules but differ on password strength and email
// anchoring.
func DefaultRuleSets() map[string]RuleSet {
	return map[string]RuleSet{
		RuleSetLogin: {
			{Field: "usernameOrEmail", Check: "required", Message: "Username or email is required."},
			{Field: "password", Check: "required", Message: "Password is required."},
		},
		RuleSetRegister: {
			{Field: "username", Check: "u16min=4,u16max=16", Message: msgUsernameLength},
			{Field: "password", Check: "u16min=8,u16max=20", Message: "Password must be 8-20 characters."},
			{Field: "confirmPassword", EqualTo: "password", Message: msgPasswordsDiffer},
			{Field: "email", Check: "looseemail", Message: msgInvalidEmail},
			{Field: "agreeTerms", Kind: KindCheckbox, Check: "required", Message: "Please agree to the terms of service and privacy policy."},
		},
		RuleSetForgotPassword: {
			{Field: "resetEmail", Check: "looseemail", Message: msgInvalidEmail},
		},
		RuleSetRegistration: {
			{Field: "username", Check: "u16min=4,u16max=16", Message: msgUsernameLength},
			{Field: "password", Check: "u16min=8,u16max=20,letterdigit", Message: "Password must be 8-20 characters and contain both letters and digits."},
			{Field: "confirmPassword", EqualTo: "password", Message: msgPasswordsDiffer},
			{Field: "email", Check: "strictemail", Message: msgInvalidEmail},
			{Field: "phone", Check: "omitempty,cnmobile", Message: "Please enter a valid mobile number."},
			{Field: "captcha", Check: "required", Message: "Please enter the verification code."},
		},
	}
}
