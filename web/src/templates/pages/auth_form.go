package pages

import (
	"strconv"

	"github.com/nfrund/authforms/internal/view"
	"github.com/nfrund/authforms/internal/view/dto/auth"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// AuthPanelID is the element htmx swaps on every auth form interaction.
const AuthPanelID = "auth-panel"

const authSubmitID = "auth-submit"

// AuthPanel renders the flash messages and the auth form for its current mode.
func AuthPanel(flashes view.FlashData, data auth.AuthFormData) g.Node {
	return h.Div(
		h.ID(AuthPanelID),
		Flashes(flashes),
		authForm(data),
	)
}

func authForm(data auth.AuthFormData) g.Node {
	return h.Form(
		h.Method("post"),
		h.Action("/auth/submit"),
		hx.Post("/auth/submit"),
		hx.Target("#"+AuthPanelID),
		hx.Swap("outerHTML"),
		inFlight(authSubmitID),
		h.Class("space-y-6"),
		h.H2(h.Class("text-2xl font-bold text-gray-900"), g.Text(data.Title)),
		h.Input(h.Type("hidden"), h.Name("mode"), h.Value(data.Mode)),
		h.Input(h.Type("hidden"), h.Name("showPassword"), h.Value(strconv.FormatBool(data.ShowPassword))),
		hiddenInputs(data.Hidden),
		g.Map(data.Fields, field),
		g.If(data.HasPassword, postButton("/auth/toggle-password", "", "", passwordToggleLabel(data.ShowPassword))),
		submitButton(authSubmitID, data.SubmitLabel, data.BusyLabel, data.CanSubmit),
		h.Div(
			h.Class("flex justify-between text-sm"),
			g.Map(data.Actions, func(a auth.ActionData) g.Node {
				return postButton("/auth/navigate", "action", a.Action, a.Label)
			}),
		),
	)
}

func passwordToggleLabel(visible bool) string {
	if visible {
		return "Hide password"
	}
	return "Show password"
}

// postButton submits the surrounding form to a different endpoint.
func postButton(url, name, value, label string) g.Node {
	return h.Button(
		h.Type("submit"),
		g.Attr("formaction", url),
		hx.Post(url),
		g.If(name != "", h.Name(name)),
		g.If(name != "", h.Value(value)),
		h.Class("text-indigo-600 hover:text-indigo-500"),
		g.Text(label),
	)
}
