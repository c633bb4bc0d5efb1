package graph

import (
	"errors"
	"strings"

	"chatpane/internal/transcript"
)

// ErrMissingSender reports a provider record without a sender address.
// Such a record cannot be classified for authorship and is rejected;
// callers drop it rather than failing the whole conversation.
var ErrMissingSender = errors.New("message record has no sender address")

// Normalize converts a raw provider record to the canonical transcript
// message. It never fails for a structurally valid record: missing headers
// and attachments become empty slices, and a missing unique body falls back
// to reply extraction over the full body.
func Normalize(raw RawMessage) (transcript.Message, error) {
	if raw.Sender == nil || raw.Sender.EmailAddress == nil || raw.Sender.EmailAddress.Address == "" {
		return transcript.Message{}, ErrMissingSender
	}

	body := ""
	if raw.Body != nil {
		body = raw.Body.Content
	}

	visible := ""
	if raw.UniqueBody != nil && strings.TrimSpace(raw.UniqueBody.Content) != "" {
		visible = strings.TrimSpace(raw.UniqueBody.Content)
	} else {
		visible = transcript.ExtractVisibleText(body)
	}

	headers := make([]transcript.Header, 0, len(raw.InternetMessageHeaders))
	for _, h := range raw.InternetMessageHeaders {
		headers = append(headers, transcript.Header{Name: h.Name, Value: h.Value})
	}

	attachments := make([]transcript.Attachment, 0, len(raw.Attachments))
	for _, a := range raw.Attachments {
		attachments = append(attachments, transcript.Attachment{
			Name:        a.Name,
			ContentURL:  a.ContentURL,
			ContentType: a.ContentType,
		})
	}

	return transcript.Message{
		Body:        body,
		VisibleText: visible,
		Sender: transcript.Sender{
			Name:    raw.Sender.EmailAddress.Name,
			Address: raw.Sender.EmailAddress.Address,
		},
		CreatedAt:   raw.CreatedDateTime,
		Headers:     headers,
		Attachments: attachments,
	}, nil
}
