package cmd

import (
	"fmt"
	"strings"

	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/forms"
	"github.com/spf13/cobra"
)

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List form modes, their fields and navigation actions",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, m := range domain.Modes() {
				fmt.Fprintf(out, "%s\n", m)
				printSchema(cmd, forms.Schema(m))
				var actions []string
				for _, a := range domain.Actions(m) {
					next, _ := domain.Transition(m, a)
					actions = append(actions, fmt.Sprintf("%s -> %s", a, next))
				}
				fmt.Fprintf(out, "  actions: %s\n", strings.Join(actions, ", "))
			}
			fmt.Fprintln(out, "registration")
			printSchema(cmd, forms.RegistrationSchema())
		},
	}
}

func printSchema(cmd *cobra.Command, schema []forms.FieldSpec) {
	for _, spec := range schema {
		optional := ""
		if spec.Optional {
			optional = " (optional)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s [%s]%s\n", spec.Name, spec.Type, optional)
	}
}
