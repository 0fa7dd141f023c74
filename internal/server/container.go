package server

import (
	"fmt"
	"log/slog"

	"github.com/nfrund/authforms/internal/backend"
	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/email"
	"github.com/nfrund/authforms/internal/forms"
	"github.com/nfrund/authforms/internal/handlers"
	"github.com/nfrund/authforms/internal/notify"
	"github.com/nfrund/authforms/internal/pubsub"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// NewContainer wires every application service. fsys is where RULES_FILE
// is read from.
func NewContainer(cfg config.Provider, fsys afero.Fs) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, fsys)

	do.Provide(injector, func(i do.Injector) (*validation.Engine, error) {
		engine := validation.NewEngine()
		path := do.MustInvoke[config.Provider](i).GetRulesFile()
		if path == "" {
			return engine, nil
		}
		if err := engine.LoadRuleSets(do.MustInvoke[afero.Fs](i), path); err != nil {
			return nil, fmt.Errorf("loading rule sets: %w", err)
		}
		slog.Info("Loaded validation rule sets", "path", path)
		return engine, nil
	})

	do.Provide(injector, func(i do.Injector) (domain.EmailSender, error) {
		return email.NewEmailService(do.MustInvoke[config.Provider](i))
	})

	do.Provide(injector, func(i do.Injector) (domain.AuthBackend, error) {
		cfg := do.MustInvoke[config.Provider](i)
		mailer, err := do.Invoke[domain.EmailSender](i)
		if err != nil {
			return nil, err
		}
		return backend.NewSimulated(
			backend.WithDelay(cfg.GetSubmitDelay()),
			backend.WithFailure(cfg.GetSubmitFail()),
			backend.WithResetMailer(mailer, cfg.GetAppBaseURL()),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(), nil
	})

	do.Provide(injector, func(i do.Injector) (*notify.BusNotifier, error) {
		return notify.NewBusNotifier(do.MustInvoke[*pubsub.WatermillBridge](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.FormHandler, error) {
		policy, err := forms.ParseResetPolicy(do.MustInvoke[config.Provider](i).GetResetPolicy())
		if err != nil {
			return nil, err
		}
		engine, err := do.Invoke[*validation.Engine](i)
		if err != nil {
			return nil, err
		}
		authBackend, err := do.Invoke[domain.AuthBackend](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewFormHandler(
			engine,
			authBackend,
			do.MustInvoke[*notify.BusNotifier](i),
			policy,
		), nil
	})

	return injector
}
