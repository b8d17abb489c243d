package hostmux

import (
	"github.com/rohanthewiz/element"

	"github.com/rohanthewiz/hostmux/core/branch"
)

const routesPageStyle = `
	body { font-family: Arial, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; }
	table { border-collapse: collapse; width: 100%; }
	th, td { border: 1px solid #dee2e6; padding: 6px 10px; text-align: left; }
	th { background: #e9ecef; }
	td.wild { color: #6c757d; }
`

// routesPage is the component rendering the route table.
type routesPage struct {
	Routes []branch.RouteList
}

func (p routesPage) Render(b *element.Builder) any {
	b.H1().T("Registered Routes")

	b.Table().R(
		b.Tr().R(
			b.Th().T("Host"),
			b.Th().T("Method"),
			b.Th().T("Path"),
			b.Th().T("Handler"),
		),
		func() (x any) {
			for _, rt := range p.Routes {
				hostClass := ""
				if rt.Host == "*" {
					hostClass = "wild"
				}

				b.Tr().R(
					b.Td("class", hostClass).T(rt.Host),
					b.Td().T(rt.Method),
					b.Td().T(rt.Path),
					b.Td().T(rt.HandlerRef),
				)
			}
			return
		}(),
	)

	return nil
}

// RoutesHandler returns a handler rendering the registered routes as an
// HTML page. Mount it wherever suits:
//
//	s.Get("/routes", s.RoutesHandler())
func (s *Server) RoutesHandler() Handler {
	return func(ctx Context) error {
		b := element.NewBuilder()

		b.Html().R(
			b.Head().R(
				b.Title().T("Registered Routes"),
				b.Style().T(routesPageStyle),
			),
			b.Body().R(
				element.RenderComponents(b, routesPage{Routes: s.Routes()}),
			),
		)

		return ctx.WriteHTML(b.String())
	}
}
