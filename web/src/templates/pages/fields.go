package pages

import (
	"sort"

	"github.com/nfrund/authforms/internal/view"
	"github.com/nfrund/authforms/internal/view/dto/auth"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// Flashes renders pending flash messages.
func Flashes(f view.FlashData) g.Node {
	if f.Empty() {
		return nil
	}
	return h.Div(
		h.ID("flashes"),
		g.Map(f.Success, func(msg string) g.Node {
			return h.P(h.Class("flash flash-success text-green-700"), g.Text(msg))
		}),
		g.Map(f.Error, func(msg string) g.Node {
			return h.P(h.Class("flash flash-error text-red-700"), g.Text(msg))
		}),
	)
}

func field(f auth.FieldData) g.Node {
	if f.Type == "checkbox" {
		return h.Div(
			h.Class("flex items-center"),
			h.Input(h.Type("checkbox"), h.ID(f.Name), h.Name(f.Name), g.If(f.Checked, h.Checked())),
			h.Label(h.For(f.Name), h.Class("ml-2 text-sm"), g.Text(f.Label)),
			fieldError(f.Name, f.Error),
		)
	}
	return h.Div(
		h.Label(h.For(f.Name), h.Class("block text-sm font-medium"), g.Text(f.Label)),
		h.Input(
			h.Type(f.Type),
			h.ID(f.Name),
			h.Name(f.Name),
			h.Value(f.Value),
			h.Placeholder(f.Placeholder),
			h.Class(inputClass(f.Error)),
		),
		fieldError(f.Name, f.Error),
	)
}

func inputClass(errMsg string) string {
	if errMsg != "" {
		return "block w-full rounded-md border-red-300"
	}
	return "block w-full rounded-md border-gray-300"
}

func fieldError(name, msg string) g.Node {
	if msg == "" {
		return nil
	}
	return h.P(h.ID(name+"-error"), h.Class("field-error mt-2 text-sm text-red-600"), g.Text(msg))
}

func hiddenInputs(values map[string]string) g.Node {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return g.Map(names, func(name string) g.Node {
		return h.Input(h.Type("hidden"), h.Name(name), h.Value(values[name]))
	})
}

// inFlight makes htmx disable the form's submit buttons, drop repeat submits
// and mark the submit control busy while a request is running.
func inFlight(submitID string) g.Node {
	return g.Group{
		hx.DisabledElt("find button[type=submit]"),
		hx.Sync("this:drop"),
		hx.Indicator("#" + submitID),
	}
}

// submitButton shows label when idle and busyLabel while its form's request
// is in flight.
func submitButton(id, label, busyLabel string, enabled bool) g.Node {
	return h.Button(
		h.Type("submit"),
		h.ID(id),
		h.Class("w-full py-2 px-4 rounded-md text-white bg-indigo-600 disabled:opacity-50"),
		g.If(!enabled, h.Disabled()),
		h.Span(h.Class("idle-label"), g.Text(label)),
		h.Span(h.Class("busy-label"), g.Text(busyLabel)),
	)
}
