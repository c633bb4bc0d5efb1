// Package selection models the host-reported mail item selection.
package selection

// Item describes one selected mail item as reported by the pane from the
// host application.
type Item struct {
	ItemID         string `json:"item_id"`
	Subject        string `json:"subject"`
	ItemType       string `json:"item_type"`
	ConversationID string `json:"conversation_id"`
}

// UnavailableError reports that no usable selection exists. The pipeline
// aborts before any fetch and the previous transcript stays in place.
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	return "selection unavailable: " + e.Reason
}

// Resolve validates a reported selection and returns the item whose
// conversation drives the transcript. As in the host API, the first
// selected item wins when several are reported.
func Resolve(items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, &UnavailableError{Reason: "no item selected"}
	}
	item := items[0]
	if item.ConversationID == "" {
		return Item{}, &UnavailableError{Reason: "selected item has no conversation id"}
	}
	return item, nil
}
