package transcript

import "time"

// DateLayout is the calendar-date format used for date separators.
const DateLayout = "Jan 2, 2006"

// TimeLayout is the time-of-day format shown on chat bubbles.
const TimeLayout = "3:04 PM"

// Sender identifies the author of a message.
type Sender struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Header is one internet message header name/value pair.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attachment describes one message attachment.
type Attachment struct {
	Name        string `json:"name"`
	ContentURL  string `json:"content_url"`
	ContentType string `json:"content_type"`
}

// Message is the pipeline's canonical message unit, built from a raw
// provider record. It is rebuilt from scratch on every fetch and never
// mutated after construction.
type Message struct {
	Body        string       `json:"body"`
	VisibleText string       `json:"visible_text"`
	Sender      Sender       `json:"sender"`
	CreatedAt   time.Time    `json:"created_at"`
	Headers     []Header     `json:"headers"`
	Attachments []Attachment `json:"attachments"`
}

// HeaderValue returns the value of the first header with the given name.
func (m Message) HeaderValue(name string) (string, bool) {
	for _, h := range m.Headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// Entry is one renderable unit of the chat-style transcript.
type Entry struct {
	Message           Message `json:"message"`
	IsOwn             bool    `json:"is_own"`
	DisplayDate       string  `json:"display_date"`
	ShowDateSeparator bool    `json:"show_date_separator"`
}
