package graph

import (
	"errors"
	"testing"
	"time"
)

func rawMessage() RawMessage {
	return RawMessage{
		Subject:    "Re: plans",
		Body:       &ItemBody{ContentType: "text", Content: "Sure!\n\nOn Jan 1, Alice wrote:\n> earlier"},
		UniqueBody: &ItemBody{ContentType: "text", Content: "Sure!"},
		Sender: &Recipient{
			EmailAddress: &EmailAddress{Name: "Bob", Address: "bob@example.com"},
		},
		CreatedDateTime: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		InternetMessageHeaders: []RawHeader{
			{Name: "X-Mailer", Value: "TestMailer 1.0"},
		},
		HasAttachments: true,
		Attachments: []RawAttachment{
			{Name: "a.pdf", ContentURL: "https://files.example.com/a.pdf", ContentType: "application/pdf"},
		},
	}
}

func TestNormalize(t *testing.T) {
	t.Run("maps all fields", func(t *testing.T) {
		msg, err := Normalize(rawMessage())
		if err != nil {
			t.Fatalf("Normalize returned error: %v", err)
		}

		if msg.VisibleText != "Sure!" {
			t.Errorf("Expected visible text 'Sure!', got %q", msg.VisibleText)
		}
		if msg.Sender.Name != "Bob" || msg.Sender.Address != "bob@example.com" {
			t.Errorf("Unexpected sender %+v", msg.Sender)
		}
		if !msg.CreatedAt.Equal(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)) {
			t.Errorf("Unexpected created at %v", msg.CreatedAt)
		}
		if len(msg.Headers) != 1 || msg.Headers[0].Name != "X-Mailer" {
			t.Errorf("Unexpected headers %+v", msg.Headers)
		}
		if len(msg.Attachments) != 1 || msg.Attachments[0].ContentURL != "https://files.example.com/a.pdf" {
			t.Errorf("Unexpected attachments %+v", msg.Attachments)
		}
	})

	t.Run("falls back to reply extraction when unique body is missing", func(t *testing.T) {
		raw := rawMessage()
		raw.UniqueBody = nil

		msg, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize returned error: %v", err)
		}
		if msg.VisibleText != "Sure!" {
			t.Errorf("Expected extracted visible text 'Sure!', got %q", msg.VisibleText)
		}
	})

	t.Run("missing headers and attachments become empty slices", func(t *testing.T) {
		raw := rawMessage()
		raw.InternetMessageHeaders = nil
		raw.Attachments = nil

		msg, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize returned error: %v", err)
		}
		if msg.Headers == nil || len(msg.Headers) != 0 {
			t.Errorf("Expected empty headers slice, got %#v", msg.Headers)
		}
		if msg.Attachments == nil || len(msg.Attachments) != 0 {
			t.Errorf("Expected empty attachments slice, got %#v", msg.Attachments)
		}
	})

	t.Run("partial attachment entries keep present fields", func(t *testing.T) {
		raw := rawMessage()
		raw.Attachments = []RawAttachment{{Name: "only-name.txt"}}

		msg, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize returned error: %v", err)
		}
		if len(msg.Attachments) != 1 {
			t.Fatalf("Expected 1 attachment, got %d", len(msg.Attachments))
		}
		if msg.Attachments[0].Name != "only-name.txt" || msg.Attachments[0].ContentURL != "" {
			t.Errorf("Unexpected attachment %+v", msg.Attachments[0])
		}
	})

	t.Run("missing body yields empty body and visible text", func(t *testing.T) {
		raw := rawMessage()
		raw.Body = nil
		raw.UniqueBody = nil

		msg, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize returned error: %v", err)
		}
		if msg.Body != "" || msg.VisibleText != "" {
			t.Errorf("Expected empty body and visible text, got %q / %q", msg.Body, msg.VisibleText)
		}
	})

	t.Run("record without sender is rejected", func(t *testing.T) {
		cases := []RawMessage{
			func() RawMessage { r := rawMessage(); r.Sender = nil; return r }(),
			func() RawMessage { r := rawMessage(); r.Sender.EmailAddress = nil; return r }(),
			func() RawMessage { r := rawMessage(); r.Sender.EmailAddress.Address = ""; return r }(),
		}

		for i, raw := range cases {
			_, err := Normalize(raw)
			if !errors.Is(err, ErrMissingSender) {
				t.Errorf("Case %d: expected ErrMissingSender, got %v", i, err)
			}
		}
	})
}
