package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/craftloop/backend/pkg/errorx"
	"github.com/craftloop/backend/pkg/router"
	"github.com/craftloop/backend/pkg/xcontext"
)

// Logger reports the outcome of every request after its response is
// written.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := router.GetRequest(ctx)
		if req == nil {
			return
		}

		info := fmt.Sprintf("%s | %s", req.Method, req.URL.Path)
		if err := router.GetError(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
