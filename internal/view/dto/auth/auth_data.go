package auth

// FieldData is everything a template needs to draw one input.
type FieldData struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Value       string
	Checked     bool
	Optional    bool
	Error       string
}

// ActionData is a navigation link between auth form modes.
type ActionData struct {
	Action string
	Label  string
}

// AuthFormData is the View Model (DTO) for the tri-mode auth form.
type AuthFormData struct {
	Mode         string
	Title        string
	Fields       []FieldData
	Hidden       map[string]string
	Actions      []ActionData
	ShowPassword bool
	HasPassword  bool
	SubmitLabel  string
	BusyLabel    string
	CanSubmit    bool
}

// RegistrationData is the View Model (DTO) for the stand-alone registration form.
type RegistrationData struct {
	Fields        []FieldData
	AgreedToTerms bool
	SubmitLabel   string
	BusyLabel     string
	CanSubmit     bool
}
