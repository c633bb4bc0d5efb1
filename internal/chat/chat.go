// Package chat implements the local echo of outgoing chat input and the
// simulated reply that follows it. Nothing here sends mail; the echo is
// purely a pane-side affordance.
package chat

import (
	"strings"
	"sync"
	"time"

	"chatpane/internal/transcript"
)

// DefaultReplyDelay is how long the simulated reply waits before firing.
const DefaultReplyDelay = time.Second

// DefaultReplyText is the canned simulated reply.
const DefaultReplyText = "This is a bot response."

// OwnEntry builds the transcript entry for a locally submitted chat line:
// an own bubble with the current time and no attachments. Blank input is
// ignored, matching how the pane swallows empty submissions.
func OwnEntry(text, viewerName, viewerAddress string, now time.Time) (transcript.Entry, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return transcript.Entry{}, false
	}
	return transcript.Entry{
		Message: transcript.Message{
			Body:        text,
			VisibleText: text,
			Sender: transcript.Sender{
				Name:    viewerName,
				Address: viewerAddress,
			},
			CreatedAt:   now,
			Headers:     []transcript.Header{},
			Attachments: []transcript.Attachment{},
		},
		IsOwn:       true,
		DisplayDate: now.Format(transcript.DateLayout),
	}, true
}

// ReplyEntry builds the simulated reply bubble.
func ReplyEntry(text string, now time.Time) transcript.Entry {
	return transcript.Entry{
		Message: transcript.Message{
			Body:        text,
			VisibleText: text,
			CreatedAt:   now,
			Headers:     []transcript.Header{},
			Attachments: []transcript.Attachment{},
		},
		DisplayDate: now.Format(transcript.DateLayout),
	}
}

// Simulator schedules the one-shot simulated reply that follows an echoed
// chat message. Pending replies are cancelable so a torn-down pane is
// never updated after the fact.
type Simulator struct {
	delay time.Duration
	reply string

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
}

// NewSimulator creates a simulator. A non-positive delay selects the
// default.
func NewSimulator(delay time.Duration) *Simulator {
	if delay <= 0 {
		delay = DefaultReplyDelay
	}
	return &Simulator{
		delay:  delay,
		reply:  DefaultReplyText,
		timers: make(map[*time.Timer]struct{}),
	}
}

// Schedule arms a one-shot reply and returns a cancel function. Cancel is
// a no-op once the reply has fired.
func (s *Simulator) Schedule(deliver func(text string)) (cancel func()) {
	s.mu.Lock()
	var timer *time.Timer
	timer = time.AfterFunc(s.delay, func() {
		// Deliver only while still armed; a cancel that raced the timer
		// firing wins.
		s.mu.Lock()
		_, armed := s.timers[timer]
		delete(s.timers, timer)
		s.mu.Unlock()
		if armed {
			deliver(s.reply)
		}
	})
	s.timers[timer] = struct{}{}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.timers, timer)
		s.mu.Unlock()
		timer.Stop()
	}
}

// CancelAll stops every pending reply. Called when a pane session ends.
func (s *Simulator) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for timer := range s.timers {
		timer.Stop()
		delete(s.timers, timer)
	}
}

// Pending returns the number of replies still armed.
func (s *Simulator) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
