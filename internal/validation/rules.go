package validation

import (
	"sort"
)

// Kind tells the engine which half of the field state a rule reads.
type Kind string

const (
	KindText     Kind = "text"
	KindCheckbox Kind = "checkbox"
)

// Rule is a single declarative constraint on one field.
//
// Check is a go-playground/validator tag (for example "u16min=4,u16max=16"
// or "omitempty,cnmobile"). u16min and u16max count UTF-16 code units; the
// stock min and max count runes. When EqualTo is set the field is compared against
// that other field's value and Check is ignored.
type Rule struct {
	Field   string `yaml:"field"`
	Kind    Kind   `yaml:"kind,omitempty"`
	Check   string `yaml:"check,omitempty"`
	EqualTo string `yaml:"equal_to,omitempty"`
	Message string `yaml:"message"`
}

// RuleSet is an ordered list of rules. When several rules target the same
// field, the first failing one supplies the message.
type RuleSet []Rule

// Fields returns the distinct field names the set constrains, in order.
func (rs RuleSet) Fields() []string {
	seen := make(map[string]bool, len(rs))
	var out []string
	for _, r := range rs {
		if !seen[r.Field] {
			seen[r.Field] = true
			out = append(out, r.Field)
		}
	}
	return out
}

// ErrorMap maps a field name to its validation message. A missing key means
// the field is valid.
type ErrorMap map[string]string

// Valid reports whether no field has an error.
func (m ErrorMap) Valid() bool {
	return len(m) == 0
}

// Keys returns the failing field names in sorted order.
func (m ErrorMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear removes the error for a single field.
func (m ErrorMap) Clear(field string) {
	delete(m, field)
}
