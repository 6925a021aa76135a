// internal/browser/session/attach.go
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/framepoint/internal/config"
)

const detachTimeout = time.Second

// ErrNoPageTarget is returned when the browser exposes no page to attach to.
var ErrNoPageTarget = errors.New("no page target to attach to")

// Attach connects to the browser at cfg's remote URL and binds a session to
// its first ordinary page. Close detaches from the page and leaves both the
// page and the browser running.
func Attach(ctx context.Context, cfg config.Interface, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	remoteURL := cfg.Browser().RemoteURL

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, remoteURL)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	release := func() {
		browserCancel()
		allocCancel()
	}

	targets, err := chromedp.Targets(browserCtx)
	if err != nil {
		release()
		return nil, fmt.Errorf("failed to list targets at %s: %w", remoteURL, err)
	}
	info, err := pickPageTarget(targets)
	if err != nil {
		release()
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx, chromedp.WithTargetID(info.TargetID))
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		release()
		return nil, fmt.Errorf("failed to attach to target %s: %w", info.TargetID, err)
	}

	c := chromedp.FromContext(tabCtx)
	s := NewSession(tabCtx, func() {
		detachTarget(c, c.Browser, logger)
		tabCancel()
		release()
	}, cfg, logger)
	s.logger.Info("Attached to page target.",
		zap.String("target_id", string(info.TargetID)),
		zap.String("url", info.URL))
	return s, nil
}

// detachTarget hands the attached page back to the browser. chromedp closes
// the target still bound to a context when that context is cancelled, so the
// binding is dropped before any cancel runs.
func detachTarget(c *chromedp.Context, browser cdp.Executor, logger *zap.Logger) {
	if c == nil || c.Target == nil {
		return
	}
	t := c.Target
	c.Target = nil

	if browser == nil || t.SessionID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), detachTimeout)
	defer cancel()
	if err := target.DetachFromTarget().WithSessionID(t.SessionID).Do(cdp.WithExecutor(ctx, browser)); err != nil {
		logger.Debug("Failed to detach from page target.",
			zap.String("target_id", string(t.TargetID)),
			zap.Error(err))
	}
}

// pickPageTarget returns the first page that is not a DevTools window.
func pickPageTarget(targets []*target.Info) (*target.Info, error) {
	for _, t := range targets {
		if t == nil || t.Type != "page" {
			continue
		}
		if strings.HasPrefix(t.URL, "devtools://") {
			continue
		}
		return t, nil
	}
	return nil, ErrNoPageTarget
}
