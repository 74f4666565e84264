package router

import (
	"context"
	"net/http"

	"github.com/craftloop/backend/pkg/xcontext"
	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after a handler. A non-nil returned
// context replaces the request context for the rest of the chain.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, regardless of outcome.
type CloserFunc func(ctx context.Context)

// Router registers typed handlers on a shared mux. Branch creates an
// isolated middleware chain over the same mux, so one server can expose
// public and authenticated route groups.
type Router struct {
	mux     *http.ServeMux
	baseCtx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router rooted at ctx. The context must carry the
// database, configs, logger, and snowflake generator; handlers receive a
// request-scoped child of it.
func New(ctx context.Context) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		baseCtx: ctx,
	}
}

func (r *Router) Branch() *Router {
	return &Router{
		mux:     r.mux,
		baseCtx: r.baseCtx,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(pattern, root string) {
	r.mux.Handle(pattern, http.FileServer(http.Dir(root)))
}

// Handler returns the http handler serving all registered routes, with
// CORS applied when origins are configured.
func (r *Router) Handler() http.Handler {
	allowed := xcontext.Configs(r.baseCtx).ApiServer.AllowCORS
	if len(allowed) == 0 {
		return r.mux
	}

	return cors.New(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, pattern, http.MethodGet, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, pattern, http.MethodPost, handler)
}

func register[Request, Response any](
	r *Router, pattern, method string, handler HandlerFunc[Request, Response],
) {
	befores := r.befores
	afters := r.afters
	closers := r.closers

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := withRequest(r.baseCtx, req, w)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		run := func() (*Response, error) {
			for _, middleware := range befores {
				newCtx, err := middleware(ctx)
				if err != nil {
					return nil, err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			body, err := bind[Request](req)
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return nil, errBadBinding
			}

			resp, err := handler(ctx, body)
			if err != nil {
				return nil, err
			}

			for _, middleware := range afters {
				newCtx, err := middleware(ctx)
				if err != nil {
					return nil, err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			return resp, nil
		}

		resp, err := run()
		if err != nil {
			ctx = withError(ctx, err)
			writeError(w, err)
			return
		}

		writeSuccess(w, resp)
	})
}
