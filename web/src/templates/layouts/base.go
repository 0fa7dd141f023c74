package layouts

import (
	"github.com/a-h/templ"
	"github.com/nfrund/authforms/internal/view"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// busyCSS swaps a submit control's label while htmx marks it as the request
// indicator.
const busyCSS = `.busy-label{display:none}` +
	`.htmx-request .busy-label,.htmx-request.busy-label{display:inline}` +
	`.htmx-request .idle-label{display:none}`

// Base wraps page content in the HTML document shell.
func Base(title string, content templ.Component) templ.Component {
	doc := h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(CalculateTitle(title))),
				h.Script(h.Src(htmxSrc)),
				h.StyleEl(g.Raw(busyCSS)),
			),
			h.Body(
				h.Class("min-h-screen bg-gray-50 flex items-center justify-center"),
				h.Main(
					h.Class("w-full max-w-md p-8 bg-white shadow rounded-lg"),
					view.AdaptTemplToGomponent(content),
				),
			),
		),
	)
	return view.AdaptGomponentToTempl(doc)
}
