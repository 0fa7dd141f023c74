package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/nfrund/authforms/internal/fields"
	"github.com/nfrund/authforms/internal/forms"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the authforms-cli command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "authforms-cli",
		Short: "Auth forms CLI tool",
		Long: `authforms-cli drives the auth forms from the command line.

Available commands:
  validate    Validate field values against a form's rules
  submit      Validate and submit field values to the simulated backend
  modes       List form modes, their fields and navigation actions
  version     Print the version number

Use "authforms-cli [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("rules", "", "YAML file overriding the built-in rule sets")

	root.AddCommand(newValidateCmd(), newSubmitCmd(), newModesCmd(), newVersionCmd())
	return root
}

// Execute executes the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newEngine returns the validation engine, with overrides from --rules if set.
func newEngine(cmd *cobra.Command) (*validation.Engine, error) {
	engine := validation.NewEngine()
	path, _ := cmd.Flags().GetString("rules")
	if path == "" {
		return engine, nil
	}
	if err := engine.LoadRuleSets(afero.NewOsFs(), path); err != nil {
		return nil, err
	}
	return engine, nil
}

// parseAssignments turns name=value arguments into field state. Checkbox
// fields accept on/true/1/yes.
func parseAssignments(args []string) (*fields.State, error) {
	values := url.Values{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field assignment %q, want name=value", arg)
		}
		values.Set(name, value)
	}
	checkboxes := append(forms.AuthCheckboxes(), agreedToTermsField)
	return fields.FromForm(values, checkboxes...), nil
}

const agreedToTermsField = "agreedToTerms"
