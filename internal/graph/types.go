package graph

import "time"

// RawMessage mirrors the shape of a message record returned by the
// /me/messages endpoint with the field projection this service requests.
// Pointer fields cover records where the API omits a nested object.
type RawMessage struct {
	Subject                string          `json:"subject"`
	Body                   *ItemBody       `json:"body"`
	UniqueBody             *ItemBody       `json:"uniqueBody"`
	Sender                 *Recipient      `json:"sender"`
	CreatedDateTime        time.Time       `json:"createdDateTime"`
	InternetMessageHeaders []RawHeader     `json:"internetMessageHeaders"`
	HasAttachments         bool            `json:"hasAttachments"`
	Attachments            []RawAttachment `json:"attachments"`
}

// ItemBody is a Graph itemBody resource.
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Recipient is a Graph recipient resource.
type Recipient struct {
	EmailAddress *EmailAddress `json:"emailAddress"`
}

// EmailAddress is a Graph emailAddress resource.
type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RawHeader is one internetMessageHeader entry.
type RawHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawAttachment carries the attachment fields the pane renders. Entries
// missing some fields are still usable; absent fields stay empty.
type RawAttachment struct {
	Name        string `json:"name"`
	ContentURL  string `json:"contentUrl"`
	ContentType string `json:"contentType"`
}

// listResponse is the envelope of a Graph collection response.
type listResponse struct {
	Value []RawMessage `json:"value"`
}
