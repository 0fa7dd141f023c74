package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// gomponentComponent lets a gomponents.Node stand in wherever a
// templ.Component is expected.
type gomponentComponent struct {
	node gomponents.Node
}

func (a gomponentComponent) Render(_ context.Context, w io.Writer) error {
	if a.node == nil {
		return nil
	}
	return a.node.Render(w)
}

// AdaptGomponentToTempl wraps a gomponents node as a templ component.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return gomponentComponent{node: node}
}

// templNode lets a templ.Component be embedded in a gomponents tree.
// gomponents does not pass a context down, so the component renders with
// context.Background().
type templNode struct {
	component templ.Component
}

func (a templNode) Render(w io.Writer) error {
	return a.component.Render(context.Background(), w)
}

// AdaptTemplToGomponent wraps a templ component as a gomponents node.
func AdaptTemplToGomponent(component templ.Component) gomponents.Node {
	return templNode{component: component}
}
