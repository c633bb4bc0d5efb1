package conversation

import (
	"context"
	"sync"

	"chatpane/internal/transcript"
)

// Refresher serializes transcript refreshes for one pane session. A newer
// selection cancels the in-flight fetch for the previous one, so results
// are delivered only for the most recent request and a slow early fetch
// can never overwrite a faster later one.
type Refresher struct {
	service TranscriptService

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewRefresher creates a refresher over the given service.
func NewRefresher(service TranscriptService) *Refresher {
	return &Refresher{service: service}
}

// Refresh starts a fetch for the given conversation, canceling any fetch
// still in flight. Exactly one of deliver or fail is called, and only if
// no newer refresh superseded this one; a superseded fetch is discarded
// silently so the previous transcript stays on screen.
func (r *Refresher) Refresh(ctx context.Context, conversationID, viewerAddress string, deliver func(transcript.View), fail func(error)) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	go func() {
		defer cancel()

		view, err := r.service.Transcript(fetchCtx, conversationID, viewerAddress)

		r.mu.Lock()
		superseded := seq != r.seq
		r.mu.Unlock()
		if superseded {
			return
		}

		if err != nil {
			fail(err)
			return
		}
		deliver(view)
	}()
}

// Stop cancels any in-flight fetch and discards its result.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.seq++
}
