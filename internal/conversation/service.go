package conversation

import (
	"context"
	"errors"
	"log"
	"time"

	"chatpane/internal/graph"
	"chatpane/internal/identity"
	"chatpane/internal/transcript"
)

// DefaultPageSize bounds how many messages one fetch requests.
const DefaultPageSize = 10

// TranscriptService defines the conversation pipeline as seen by handlers.
// This interface allows handlers to be tested with fake implementations.
type TranscriptService interface {
	// FetchConversation returns the normalized messages of a conversation
	// in provider order.
	FetchConversation(ctx context.Context, conversationID string) ([]transcript.Message, error)

	// Transcript fetches a conversation and assembles the render model for
	// the given viewer.
	Transcript(ctx context.Context, conversationID, viewerAddress string) (transcript.View, error)
}

// Service runs the conversation pipeline: acquire a credential, query the
// mail API once, normalize each record, and assemble the transcript.
type Service struct {
	provider identity.Provider
	client   *graph.Client
	scopes   []string
	pageSize int
	loc      *time.Location
}

var _ TranscriptService = (*Service)(nil)

// NewService creates a conversation service. pageSize <= 0 selects the
// default; a nil location leaves timestamps in the provider's zone.
func NewService(provider identity.Provider, client *graph.Client, scopes []string, pageSize int, loc *time.Location) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		provider: provider,
		client:   client,
		scopes:   scopes,
		pageSize: pageSize,
		loc:      loc,
	}
}

// FetchConversation acquires a fresh credential, issues the single filtered
// query, and normalizes the result. Credential and transport failures abort
// the whole call; records without a sender identity are dropped one by one
// and the rest of the conversation still renders.
func (s *Service) FetchConversation(ctx context.Context, conversationID string) ([]transcript.Message, error) {
	token, err := s.provider.AccessToken(ctx, s.scopes...)
	if err != nil {
		return nil, &CredentialError{Err: err}
	}

	raw, err := s.client.ListConversationMessages(ctx, token, conversationID, s.pageSize)
	if err != nil {
		fetchErr := &FetchError{Err: err}
		var statusErr *graph.StatusError
		if errors.As(err, &statusErr) {
			fetchErr.StatusCode = statusErr.StatusCode
		}
		return nil, fetchErr
	}

	messages := make([]transcript.Message, 0, len(raw))
	for i, record := range raw {
		msg, err := graph.Normalize(record)
		if err != nil {
			log.Printf("Conversation: dropping record %d of conversation %s: %v", i, conversationID, err)
			continue
		}
		if s.loc != nil {
			msg.CreatedAt = msg.CreatedAt.In(s.loc)
		}
		if mailer, ok := msg.HeaderValue("X-Mailer"); ok {
			log.Printf("Conversation: message from %s sent with %s", msg.Sender.Address, mailer)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Transcript runs the full pipeline for one viewer.
func (s *Service) Transcript(ctx context.Context, conversationID, viewerAddress string) (transcript.View, error) {
	messages, err := s.FetchConversation(ctx, conversationID)
	if err != nil {
		return transcript.View{}, err
	}
	entries := transcript.Assemble(messages, viewerAddress)
	return transcript.BuildView(conversationID, entries), nil
}
