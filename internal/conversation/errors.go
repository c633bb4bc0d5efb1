package conversation

import "fmt"

// CredentialError reports a failed access-token acquisition. The whole
// fetch aborts; no partial transcript is produced.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("acquiring mail credential: %v", e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// FetchError reports a failed conversation query against the remote mail
// API. StatusCode is zero when the request never produced a response.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching conversation (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching conversation: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
