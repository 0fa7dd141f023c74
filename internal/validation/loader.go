package validation

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a rule file:
//
//	rule_sets:
//	  register:
//	    - field: username
//	      check: min=6,max=16
//	      message: Username must be 6-16 characters.
type File struct {
	RuleSets map[string]RuleSet `yaml:"rule_sets"`
}

// LoadRuleSets reads a YAML rule file from fsys and installs every rule set
// it declares, replacing built-in sets of the same name. Nothing is installed
// if any set fails to load.
func (e *Engine) LoadRuleSets(fsys afero.Fs, path string) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read rule file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}

	for name, rs := range f.RuleSets {
		for i := range rs {
			if rs[i].Kind == "" {
				rs[i].Kind = KindText
			}
		}
		if err := e.check(rs); err != nil {
			return fmt.Errorf("rule set %q in %s: %w", name, path, err)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for name, rs := range f.RuleSets {
		e.ruleSets[name] = rs
	}
	return nil
}
