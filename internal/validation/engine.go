// Package validation evaluates declarative per-field rule sets against a
// form's field state.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/fields"
)

// space is the browser's whitespace class: RE2's \s covers ASCII only, so the
// vertical tab, Unicode separators and the BOM are listed explicitly.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	looseEmailPattern  = regexp.MustCompile(`[^` + space + `]+@[^` + space + `]+\.[^` + space + `]+`)
	strictEmailPattern = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	mobilePattern      = regexp.MustCompile(`^1[3-9]\d{9}$`)
)

// Engine evaluates rule sets. It is safe for concurrent use.
type Engine struct {
	validate *validator.Validate

	mu       sync.RWMutex
	ruleSets map[string]RuleSet
}

// NewEngine creates an engine preloaded with the default rule sets.
func NewEngine() *Engine {
	v := validator.New()
	// The patterns are fixed, registration cannot fail.
	_ = v.RegisterValidation("looseemail", matches(looseEmailPattern))
	_ = v.RegisterValidation("strictemail", matches(strictEmailPattern))
	_ = v.RegisterValidation("cnmobile", matches(mobilePattern))
	_ = v.RegisterValidation("letterdigit", letterAndDigit)
	_ = v.RegisterValidation("u16min", utf16Bound(func(n, bound int) bool { return n >= bound }))
	_ = v.RegisterValidation("u16max", utf16Bound(func(n, bound int) bool { return n <= bound }))

	return &Engine{
		validate: v,
		ruleSets: DefaultRuleSets(),
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// utf16Bound compares a string's length in UTF-16 code units, the unit
// browsers report as a value's length, against the tag parameter.
func utf16Bound(ok func(n, bound int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		bound, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		n := 0
		for _, r := range fl.Field().String() {
			n += utf16.RuneLen(r)
		}
		return ok(n, bound)
	}
}

// letterAndDigit accepts only ASCII letters and digits and requires at least
// one of each.
func letterAndDigit(fl validator.FieldLevel) bool {
	var letter, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return false
		}
	}
	return letter && digit
}

// SetRuleSet registers or replaces a named rule set after checking that every
// tag in it is known to the validator.
func (e *Engine) SetRuleSet(name string, rs RuleSet) error {
	if err := e.check(rs); err != nil {
		return fmt.Errorf("rule set %q: %w", name, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ruleSets[name] = rs
	return nil
}

// RuleSet returns the named rule set.
func (e *Engine) RuleSet(name string) (RuleSet, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rs, ok := e.ruleSets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRuleSet, name)
	}
	return rs, nil
}

// Validate runs the named rule set against values.
func (e *Engine) Validate(values *fields.State, name string) (ErrorMap, error) {
	rs, err := e.RuleSet(name)
	if err != nil {
		return nil, err
	}
	return e.ValidateRules(values, rs), nil
}

// ForMode runs the rule set belonging to an auth form mode.
func (e *Engine) ForMode(values *fields.State, mode domain.Mode) (ErrorMap, error) {
	return e.Validate(values, mode.String())
}

// ValidateRules evaluates rs against values. The returned map is never nil,
// so callers can always replace stale messages with it.
func (e *Engine) ValidateRules(values *fields.State, rs RuleSet) ErrorMap {
	errs := make(ErrorMap)
	for _, r := range rs {
		if _, failed := errs[r.Field]; failed {
			continue
		}
		if !e.passes(values, r) {
			errs[r.Field] = r.Message
		}
	}
	return errs
}

func (e *Engine) passes(values *fields.State, r Rule) bool {
	if r.Kind == KindCheckbox {
		return e.validate.Var(values.Checked(r.Field), r.Check) == nil
	}
	value := values.Get(r.Field)
	if r.EqualTo != "" {
		return e.validate.VarWithValue(value, values.Get(r.EqualTo), "eqcsfield") == nil
	}
	return e.validate.Var(value, r.Check) == nil
}

// check rejects rules whose tags the validator does not understand. The
// validator panics on unknown tags, so the probe is recovered.
func (e *Engine) check(rs RuleSet) error {
	for _, r := range rs {
		if r.Field == "" {
			return errors.New("rule without field")
		}
		if r.Kind != "" && r.Kind != KindText && r.Kind != KindCheckbox {
			return fmt.Errorf("field %q: unknown kind %q", r.Field, r.Kind)
		}
		if r.EqualTo != "" {
			continue
		}
		if r.Check == "" {
			return fmt.Errorf("field %q: empty check", r.Field)
		}
		if probeErr := e.probe(r); probeErr != nil {
			return fmt.Errorf("field %q: %w", r.Field, probeErr)
		}
	}
	return nil
}

func (e *Engine) probe(r Rule) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("invalid check %q: %v", r.Check, p)
		}
	}()
	if r.Kind == KindCheckbox {
		_ = e.validate.Var(false, r.Check)
	} else {
		_ = e.validate.Var("", r.Check)
	}
	return nil
}
