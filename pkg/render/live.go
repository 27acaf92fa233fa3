package render

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	tolgee "github.com/jcunliffe1/tolgee-go"
	"github.com/jcunliffe1/tolgee-go/pkg/broadcast"
	"github.com/jcunliffe1/tolgee-go/pkg/logger"
)

// Notifier is the part of the client Live subscribes to.
type Notifier interface {
	OnLangChange(fn func()) *broadcast.Subscription
	OnTranslationChange(fn func(tolgee.TranslationChange)) *broadcast.Subscription
}

// LiveOption configures a Live handler.
type LiveOption func(*liveHandler)

// WithLiveLogger sets the logger for stream errors.
func WithLiveLogger(l *slog.Logger) LiveOption {
	return func(h *liveHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithPatchMode overrides how patches are merged into the target.
// The default replaces the target's inner HTML.
func WithPatchMode(mode datastar.ElementPatchMode) LiveOption {
	return func(h *liveHandler) {
		h.mode = mode
	}
}

type liveHandler struct {
	client    Notifier
	selector  string
	component templ.Component
	mode      datastar.ElementPatchMode
	logger    *slog.Logger
}

// Live streams component into the element matched by selector as Datastar
// patches: once on connect, then again after language or translation changes.
// Changes that arrive while a patch is being written are folded into the next
// one. Subscriptions end with the request.
func Live(client Notifier, selector string, component templ.Component, opts ...LiveOption) http.Handler {
	h := &liveHandler{
		client:    client,
		selector:  selector,
		component: component,
		mode:      datastar.ElementPatchModeInner,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *liveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dirty := make(chan struct{}, 1)
	notify := func() {
		select {
		case dirty <- struct{}{}:
		default:
		}
	}

	langSub := h.client.OnLangChange(notify)
	defer langSub.Unsubscribe()
	transSub := h.client.OnTranslationChange(func(tolgee.TranslationChange) { notify() })
	defer transSub.Unsubscribe()

	sse := datastar.NewSSE(w, r)
	opts := []datastar.PatchElementOption{
		datastar.WithSelector(h.selector),
		datastar.WithMode(h.mode),
	}

	if err := sse.PatchElementTempl(h.component, opts...); err != nil {
		h.logger.WarnContext(ctx, "live patch failed", slog.String("selector", h.selector), logger.Error(err))
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-dirty:
			if err := sse.PatchElementTempl(h.component, opts...); err != nil {
				h.logger.WarnContext(ctx, "live patch failed", slog.String("selector", h.selector), logger.Error(err))
				return
			}
		}
	}
}
