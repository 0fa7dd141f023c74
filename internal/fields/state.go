// Package fields holds the mutable input values owned by a single form
// instance.
package fields

import (
	"net/url"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// State maps field names to their current values. Text inputs and
// checkboxes are kept apart so a checkbox can never be mistaken for an empty
// string. The zero value is ready to use.
type State struct {
	text    map[string]string
	checked map[string]bool
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// Set stores the value of a text input. Values are normalized to NFC so that
// length rules count what the user sees.
func (s *State) Set(name, value string) {
	if s.text == nil {
		s.text = make(map[string]string)
	}
	s.text[name] = norm.NFC.String(value)
}

// Get returns the value of a text input, or "" if it was never set.
func (s *State) Get(name string) string {
	return s.text[name]
}

// SetChecked stores the value of a checkbox.
func (s *State) SetChecked(name string, checked bool) {
	if s.checked == nil {
		s.checked = make(map[string]bool)
	}
	s.checked[name] = checked
}

// Checked returns the value of a checkbox, false if it was never set.
func (s *State) Checked(name string) bool {
	return s.checked[name]
}

// Clear drops every value.
func (s *State) Clear() {
	s.text = nil
	s.checked = nil
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := &State{}
	for k, v := range s.text {
		out.Set(k, v)
	}
	for k, v := range s.checked {
		out.SetChecked(k, v)
	}
	return out
}

// Names returns the sorted names of every field that has been set.
func (s *State) Names() []string {
	names := make([]string, 0, len(s.text)+len(s.checked))
	for k := range s.text {
		names = append(names, k)
	}
	for k := range s.checked {
		if _, dup := s.text[k]; !dup {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// FromForm builds a State from posted form values. Names listed in
// checkboxes are read as booleans; every other key is read as text.
func FromForm(values url.Values, checkboxes ...string) *State {
	s := New()
	isCheckbox := make(map[string]bool, len(checkboxes))
	for _, name := range checkboxes {
		isCheckbox[name] = true
		s.SetChecked(name, parseChecked(values.Get(name)))
	}
	for name := range values {
		if isCheckbox[name] {
			continue
		}
		s.Set(name, values.Get(name))
	}
	return s
}

func parseChecked(v string) bool {
	switch v {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
