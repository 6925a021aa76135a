// internal/browser/session/interfaces.go
package session

import (
	"context"

	"github.com/chromedp/chromedp"
)

// ActionExecutor runs chromedp actions against a browser target without
// the caller holding the target context itself.
type ActionExecutor interface {
	// RunActions executes actions under ctx combined with the long-lived
	// target context, so either one can cancel them.
	RunActions(ctx context.Context, actions ...chromedp.Action) error

	// RunBackgroundActions executes actions that must finish even when ctx
	// is cancelled. Only the target context can stop them.
	RunBackgroundActions(ctx context.Context, actions ...chromedp.Action) error
}
