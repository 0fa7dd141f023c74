package domain

import "fmt"

// Mode is the current variant of the tri-mode auth form.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeForgotPassword
)

var modeNames = map[Mode]string{
	ModeLogin:          "login",
	ModeRegister:       "register",
	ModeForgotPassword: "forgotPassword",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts the wire name of a mode back into a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeLogin, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeLogin, ModeRegister, ModeForgotPassword}
}

// Action is a user navigation action between modes.
type Action string

const (
	ActionForgotPassword Action = "forgotPassword"
	ActionToggleRegister Action = "toggleRegister"
	ActionBackToLogin    Action = "backToLogin"
)

type transitionKey struct {
	from   Mode
	action Action
}

// transitions is the complete navigation table. Validation and submission
// results never appear here.
var transitions = map[transitionKey]Mode{
	{ModeLogin, ActionForgotPassword}:       ModeForgotPassword,
	{ModeLogin, ActionToggleRegister}:       ModeRegister,
	{ModeRegister, ActionToggleRegister}:    ModeLogin,
	{ModeForgotPassword, ActionBackToLogin}: ModeLogin,
}

// Transition returns the mode reached by applying action in mode from.
func Transition(from Mode, action Action) (Mode, error) {
	to, ok := transitions[transitionKey{from, action}]
	if !ok {
		return from, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, from)
	}
	return to, nil
}

// Actions lists the navigation actions available in mode m.
func Actions(m Mode) []Action {
	var out []Action
	for _, a := range []Action{ActionForgotPassword, ActionToggleRegister, ActionBackToLogin} {
		if _, ok := transitions[transitionKey{m, a}]; ok {
			out = append(out, a)
		}
	}
	return out
}
