package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/nfrund/authforms/internal/backend"
	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/forms"
	"github.com/nfrund/authforms/internal/notify"
	"github.com/nfrund/authforms/internal/submission"
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var (
		mode         string
		registration bool
		delay        time.Duration
		fail         bool
	)

	cmd := &cobra.Command{
		Use:   "submit [name=value ...]",
		Short: "Validate and submit field values to the simulated backend",
		Long: `Run one submit click against the simulated backend and print the outcome.

With --registration the stand-alone registration form is used; its terms
checkbox is agreedToTerms.

Examples:
  authforms-cli submit --mode forgotPassword resetEmail=user@example.com
  authforms-cli submit --fail --mode login usernameOrEmail=alice password=secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			state, err := parseAssignments(args)
			if err != nil {
				return err
			}

			recorder := &notify.Recorder{}
			b := backend.NewSimulated(backend.WithDelay(delay), backend.WithFailure(fail))
			ctx := cmd.Context()

			var out submission.Outcome
			if registration {
				ctrl := submission.NewController(engine, b, recorder, submission.WithMessages(submission.RegistrationMessages()))
				f := forms.NewRegistrationForm(engine, ctrl)
				for _, spec := range f.Schema() {
					f.Set(spec.Name, state.Get(spec.Name))
				}
				f.SetAgreedToTerms(state.Checked(agreedToTermsField))
				out = f.Submit(ctx)
			} else {
				m, err := domain.ParseMode(mode)
				if err != nil {
					return err
				}
				ctrl := submission.NewController(engine, b, recorder)
				f := forms.NewAuthForm(engine, ctrl, forms.WithMode(m), forms.WithValues(state))
				out = f.Submit(ctx)
			}

			if !out.Errors.Valid() {
				return printErrors(cmd, out.Errors)
			}
			if !out.Submitted {
				if out.Err != nil {
					return out.Err
				}
				return errors.New("not submitted: the terms have not been agreed to")
			}
			for _, note := range recorder.Notifications() {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", note.Level, note.Message)
			}
			return out.Err
		},
	}
	cmd.Flags().StringVar(&mode, "mode", domain.ModeLogin.String(), "auth form mode: login, register or forgotPassword")
	cmd.Flags().BoolVar(&registration, "registration", false, "use the stand-alone registration form")
	cmd.Flags().DurationVar(&delay, "delay", backend.DefaultDelay, "simulated backend latency")
	cmd.Flags().BoolVar(&fail, "fail", false, "make the simulated backend reject the attempt")
	return cmd
}
