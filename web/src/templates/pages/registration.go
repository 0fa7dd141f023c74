package pages

import (
	"github.com/nfrund/authforms/internal/view"
	"github.com/nfrund/authforms/internal/view/dto/auth"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// RegistrationPanelID is the element htmx swaps on registration submits.
const RegistrationPanelID = "registration-panel"

const registrationSubmitID = "registration-submit"

// RegistrationPanel renders the flash messages and the registration form.
func RegistrationPanel(flashes view.FlashData, data auth.RegistrationData) g.Node {
	return h.Div(
		h.ID(RegistrationPanelID),
		Flashes(flashes),
		h.Form(
			h.Method("post"),
			h.Action("/register"),
			hx.Post("/register"),
			hx.Target("#"+RegistrationPanelID),
			hx.Swap("outerHTML"),
			inFlight(registrationSubmitID),
			h.Class("space-y-6"),
			h.H2(h.Class("text-2xl font-bold text-gray-900"), g.Text("Create your account")),
			g.Map(data.Fields, field),
			termsCheckbox(data.AgreedToTerms),
			submitButton(registrationSubmitID, data.SubmitLabel, data.BusyLabel, data.CanSubmit),
		),
	)
}

// termsCheckbox re-renders the panel on change so the submit control's
// disabled state follows it.
func termsCheckbox(checked bool) g.Node {
	return h.Div(
		h.Class("flex items-center"),
		h.Input(
			h.Type("checkbox"),
			h.ID("agreedToTerms"),
			h.Name("agreedToTerms"),
			g.If(checked, h.Checked()),
			hx.Post("/register/terms"),
			hx.Trigger("change"),
		),
		h.Label(h.For("agreedToTerms"), h.Class("ml-2 text-sm"),
			g.Text("I have read and agree to the terms of service and privacy policy")),
	)
}
