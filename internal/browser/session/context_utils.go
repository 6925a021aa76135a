// internal/browser/session/context_utils.go
package session

import (
	"context"
)

// CombineContext returns a context that carries the values and deadline of
// primary (the chromedp target context) and is also cancelled when secondary
// (the caller's operational context) is done.
func CombineContext(primary, secondary context.Context) (context.Context, context.CancelFunc) {
	combined, cancel := context.WithCancel(primary)
	stop := context.AfterFunc(secondary, cancel)
	return combined, func() {
		stop()
		cancel()
	}
}

// Detach returns a context that keeps ctx's values, including the chromedp
// target, but ignores its deadline and cancellation.
func Detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
