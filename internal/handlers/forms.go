package handlers

import (
	"errors"
	"maps"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/domain"
	"github.com/nfrund/authforms/internal/fields"
	"github.com/nfrund/authforms/internal/forms"
	"github.com/nfrund/authforms/internal/middleware"
	"github.com/nfrund/authforms/internal/notify"
	"github.com/nfrund/authforms/internal/submission"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/nfrund/authforms/internal/view"
	"github.com/nfrund/authforms/web/src/templates/layouts"
	"github.com/nfrund/authforms/web/src/templates/pages"
	g "maragu.dev/gomponents"
)

// FormHandler serves the auth and registration forms.
//
// HTTP is stateless, so every request rebuilds its form from the posted
// values. Fields the current mode does not show travel as hidden inputs,
// which keeps one shared field state across mode switches.
type FormHandler struct {
	engine  *validation.Engine
	backend domain.AuthBackend
	bus     domain.Notifier
	policy  forms.ResetPolicy
}

// NewFormHandler creates a new FormHandler. bus receives a copy of every
// submission notification; it may be nil.
func NewFormHandler(engine *validation.Engine, backend domain.AuthBackend, bus domain.Notifier, policy forms.ResetPolicy) *FormHandler {
	return &FormHandler{
		engine:  engine,
		backend: backend,
		bus:     bus,
		policy:  policy,
	}
}

// notifier returns the notification sink for one request: the session flash
// plus the bus.
func (h *FormHandler) notifier(c echo.Context) domain.Notifier {
	sinks := notify.Multi{view.NewFlashNotifier(c)}
	if h.bus != nil {
		sinks = append(sinks, h.bus)
	}
	return sinks
}

func (h *FormHandler) controller(c echo.Context, opts ...submission.Option) *submission.Controller {
	opts = append(opts, submission.WithLogger(middleware.FromContext(c.Request().Context())))
	return submission.NewController(h.engine, h.backend, h.notifier(c), opts...)
}

// bindAuthForm rebuilds an AuthForm from the request's form values.
func (h *FormHandler) bindAuthForm(c echo.Context) (*forms.AuthForm, error) {
	form, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	// FormParams is the request's own map; the control fields are removed
	// from a copy so later FormValue calls still see them.
	params := maps.Clone(form)

	mode := domain.ModeLogin
	if raw := params.Get("mode"); raw != "" {
		if mode, err = domain.ParseMode(raw); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	params.Del("mode")

	showPassword, _ := strconv.ParseBool(params.Get("showPassword"))
	params.Del("showPassword")
	params.Del("action")

	return forms.NewAuthForm(h.engine, h.controller(c),
		forms.WithMode(mode),
		forms.WithResetPolicy(h.policy),
		forms.WithValues(fields.FromForm(params, forms.AuthCheckboxes()...)),
		forms.WithPasswordVisible(showPassword),
	), nil
}

// AuthGet renders the auth form (GET /auth?mode=).
func (h *FormHandler) AuthGet(c echo.Context) error {
	f, err := h.bindAuthForm(c)
	if err != nil {
		return err
	}
	return h.renderAuth(c, f)
}

// AuthSubmit validates the form and, if valid, runs a backend attempt
// (POST /auth/submit). The response always re-renders the form; the mode
// never changes here.
func (h *FormHandler) AuthSubmit(c echo.Context) error {
	f, err := h.bindAuthForm(c)
	if err != nil {
		return err
	}

	out := f.Submit(c.Request().Context())
	if out.Err != nil && !errors.Is(out.Err, domain.ErrSubmissionFailed) {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not process form").SetInternal(out.Err)
	}
	return h.renderAuth(c, f)
}

// AuthNavigate applies a mode navigation action (POST /auth/navigate).
func (h *FormHandler) AuthNavigate(c echo.Context) error {
	f, err := h.bindAuthForm(c)
	if err != nil {
		return err
	}
	if err := f.Navigate(domain.Action(c.FormValue("action"))); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.renderAuth(c, f)
}

// AuthTogglePassword flips password masking (POST /auth/toggle-password).
func (h *FormHandler) AuthTogglePassword(c echo.Context) error {
	f, err := h.bindAuthForm(c)
	if err != nil {
		return err
	}
	f.TogglePasswordVisibility()
	return h.renderAuth(c, f)
}

func (h *FormHandler) renderAuth(c echo.Context, f *forms.AuthForm) error {
	panel := pages.AuthPanel(view.GetFlashData(c), view.NewAuthFormData(f))
	return render(c, "Sign in", panel)
}

// bindRegistrationForm rebuilds a RegistrationForm from the request.
func (h *FormHandler) bindRegistrationForm(c echo.Context) (*forms.RegistrationForm, error) {
	params, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}

	ctrl := h.controller(c, submission.WithMessages(submission.RegistrationMessages()))
	f := forms.NewRegistrationForm(h.engine, ctrl)
	for _, spec := range f.Schema() {
		f.Set(spec.Name, params.Get(spec.Name))
	}
	f.SetAgreedToTerms(fields.FromForm(params, "agreedToTerms").Checked("agreedToTerms"))
	return f, nil
}

// RegisterGet renders an empty registration form (GET /register).
func (h *FormHandler) RegisterGet(c echo.Context) error {
	ctrl := h.controller(c, submission.WithMessages(submission.RegistrationMessages()))
	return h.renderRegistration(c, forms.NewRegistrationForm(h.engine, ctrl))
}

// RegisterPost handles a registration submit (POST /register).
func (h *FormHandler) RegisterPost(c echo.Context) error {
	f, err := h.bindRegistrationForm(c)
	if err != nil {
		return err
	}

	out := f.Submit(c.Request().Context())
	if out.Err != nil && !errors.Is(out.Err, domain.ErrSubmissionFailed) {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not process form").SetInternal(out.Err)
	}
	return h.renderRegistration(c, f)
}

// RegisterTerms re-renders the registration form after its terms checkbox
// changes, so the submit control's disabled state follows it
// (POST /register/terms). Nothing is validated or submitted.
func (h *FormHandler) RegisterTerms(c echo.Context) error {
	f, err := h.bindRegistrationForm(c)
	if err != nil {
		return err
	}
	return h.renderRegistration(c, f)
}

func (h *FormHandler) renderRegistration(c echo.Context, f *forms.RegistrationForm) error {
	panel := pages.RegistrationPanel(view.GetFlashData(c), view.NewRegistrationData(f))
	return render(c, "Register", panel)
}

// render writes just the panel for htmx requests and the whole page
// otherwise.
func render(c echo.Context, title string, panel g.Node) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		return c.Render(http.StatusOK, "", panel)
	}
	return c.Render(http.StatusOK, "", layouts.Base(title, view.AdaptGomponentToTempl(panel)))
}
