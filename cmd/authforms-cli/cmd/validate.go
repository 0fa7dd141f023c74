package cmd

import (
	"errors"
	"fmt"

	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/spf13/cobra"
)

var errInvalidFields = errors.New("validation failed")

func newValidateCmd() *cobra.Command {
	var ruleSet string

	cmd := &cobra.Command{
		Use:   "validate [name=value ...]",
		Short: "Validate field values against a form's rules",
		Long: `Validate field values against one rule set and print every field error.

The rule set is login, register, forgotPassword or registration, or any set
added through --rules.

Examples:
  authforms-cli validate --rule-set login usernameOrEmail=alice password=secret
  authforms-cli validate --rule-set register username=abc email=a@b.co agreeTerms=on`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			state, err := parseAssignments(args)
			if err != nil {
				return err
			}
			errs, err := engine.Validate(state, ruleSet)
			if err != nil {
				return err
			}
			return printErrors(cmd, errs)
		},
	}
	cmd.Flags().StringVar(&ruleSet, "rule-set", domain.ModeLogin.String(), "rule set to validate against")
	return cmd
}

// printErrors writes errs in field order and fails when there are any.
func printErrors(cmd *cobra.Command, errs validation.ErrorMap) error {
	out := cmd.OutOrStdout()
	if errs.Valid() {
		fmt.Fprintln(out, "✅ All fields are valid")
		return nil
	}
	for _, field := range errs.Keys() {
		fmt.Fprintf(out, "❌ %s: %s\n", field, errs[field])
	}
	return fmt.Errorf("%w: %d field(s)", errInvalidFields, len(errs))
}
