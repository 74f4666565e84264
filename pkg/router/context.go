package router

import (
	"context"
	"net/http"
)

type (
	requestKey struct{}
	writerKey  struct{}
	errorKey   struct{}
)

func withRequest(ctx context.Context, req *http.Request, w http.ResponseWriter) context.Context {
	ctx = context.WithValue(ctx, requestKey{}, req)
	return context.WithValue(ctx, writerKey{}, w)
}

func GetRequest(ctx context.Context) *http.Request {
	req, ok := ctx.Value(requestKey{}).(*http.Request)
	if !ok {
		return nil
	}

	return req
}

func GetWriter(ctx context.Context) http.ResponseWriter {
	w, ok := ctx.Value(writerKey{}).(http.ResponseWriter)
	if !ok {
		return nil
	}

	return w
}

func withError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

// GetError returns the error the handler chain ended with, if any. It is
// only populated for closers.
func GetError(ctx context.Context) error {
	err, ok := ctx.Value(errorKey{}).(error)
	if !ok {
		return nil
	}

	return err
}
