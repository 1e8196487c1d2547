// Package routemux mounts a compiled route tree onto a chi router.
//
// Each routable leaf becomes one chi route. ":id" segments become "{id}",
// and a trailing splat becomes "*". Handlers are wrapped in the
// layout chain of their ancestors, outermost first. Match precedence between
// sibling static, dynamic and splat segments is chi's: static first, then
// parameters, then catch-all.
//
//	r := chi.NewRouter()
//	err := routemux.Mount(r, root, routemux.Registry{
//	    Pages:   map[string]http.Handler{"messages/$id": messageHandler},
//	    Layouts: map[string]routemux.Layout{"_layout": shell},
//	})
package routemux

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/fileroutes/pkg/routepath"
	"github.com/vango-dev/fileroutes/pkg/routetree"
)

// Layout wraps the handler of every route nested below a layout node.
type Layout func(next http.Handler) http.Handler

// Registry binds route IDs to handlers.
type Registry struct {
	// Pages maps a route ID (e.g. "messages/$id") to its handler.
	Pages map[string]http.Handler

	// Layouts maps the ID of an ancestor node to its wrapper.
	Layouts map[string]Layout

	// Fallback builds a handler for routes without an entry in Pages.
	// Routes are skipped when Fallback is nil.
	Fallback func(route routetree.Route) http.Handler
}

// ChiPattern converts a route pattern to chi syntax.
func ChiPattern(pattern string) string {
	segs := strings.Split(strings.Trim(pattern, "/"), "/")
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") {
			segs[i] = "{" + seg[1:] + "}"
		}
	}
	return "/" + strings.Join(segs, "/")
}

// Mount registers every route of root on r.
func Mount(r chi.Router, root *routetree.Node, reg Registry) error {
	seen := make(map[string]string)

	for _, route := range routetree.Flatten(root) {
		if prev, ok := seen[route.Pattern]; ok {
			return fmt.Errorf("routes %s and %s both resolve to %s", prev, route.File, route.Pattern)
		}
		seen[route.Pattern] = route.File

		h := reg.Pages[route.ID]
		if h == nil && reg.Fallback != nil {
			h = reg.Fallback(route)
		}
		if h == nil {
			continue
		}

		for i := len(route.Layouts) - 1; i >= 0; i-- {
			if wrap := reg.Layouts[route.Layouts[i]]; wrap != nil {
				h = wrap(h)
			}
		}

		r.Handle(ChiPattern(route.Pattern), withRoute(route, h))
	}
	return nil
}

type routeKey struct{}

func withRoute(route routetree.Route, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := context.WithValue(req.Context(), routeKey{}, route)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// RouteFromContext returns the route matched for the request.
func RouteFromContext(ctx context.Context) (routetree.Route, bool) {
	route, ok := ctx.Value(routeKey{}).(routetree.Route)
	return route, ok
}

// Param returns the decoded value of a route parameter. The catch-all value
// is available under "*".
func Param(r *http.Request, name string) (string, error) {
	return routepath.DecodeSegment(chi.URLParam(r, name), name == "*")
}
