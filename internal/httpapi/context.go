package httpapi

import (
	"context"
	"net/http"
	"time"
)

// serverBaseCtx is canceled when the process starts shutting down.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
// Nil resets it to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// predictContext derives the context a prediction runs under. It keeps the
// request's values and is canceled by the client going away, by shutdown,
// or by the inference timeout when one is set.
func predictContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(r.Context())
	stop := context.AfterFunc(serverBaseCtx, cancel)
	release := func() {
		stop()
		cancel()
	}
	if inferTimeout <= 0 {
		return ctx, release
	}
	tctx, tcancel := context.WithTimeout(ctx, time.Duration(inferTimeout)*time.Second)
	return tctx, func() {
		tcancel()
		release()
	}
}

// abandoned reports whether nobody will read the response: the client left
// or the server is shutting down.
func abandoned(r *http.Request) bool {
	return r.Context().Err() != nil || serverBaseCtx.Err() != nil
}
