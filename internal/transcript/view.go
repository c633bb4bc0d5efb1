package transcript

// View is the declarative render model the pane consumes. The pane owns
// all mutable UI state; this model is rebuilt whole on every refresh so a
// failed refresh never leaves a partially-rendered transcript.
type View struct {
	ConversationID string      `json:"conversation_id"`
	Entries        []ViewEntry `json:"entries"`
}

// ViewEntry is one rendered chat bubble, with an optional date-separator
// line preceding it.
type ViewEntry struct {
	DateSeparator string           `json:"date_separator,omitempty"`
	Kind          string           `json:"kind"`
	SenderName    string           `json:"sender_name,omitempty"`
	SenderAddress string           `json:"sender_address,omitempty"`
	Segments      []Segment        `json:"segments"`
	Timestamp     string           `json:"timestamp"`
	Attachments   []ViewAttachment `json:"attachments,omitempty"`
}

// ViewAttachment is a clickable attachment name linking to its content.
type ViewAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Bubble kinds. Own messages render without sender info, like the
// compose side of a chat.
const (
	KindOwn   = "own"
	KindOther = "other"
)

// BuildView converts an assembled entry sequence into the render model.
// Pure: same entries, same view.
func BuildView(conversationID string, entries []Entry) View {
	view := View{
		ConversationID: conversationID,
		Entries:        make([]ViewEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		view.Entries = append(view.Entries, BuildViewEntry(entry))
	}
	return view
}

// BuildViewEntry renders a single transcript entry.
func BuildViewEntry(entry Entry) ViewEntry {
	ve := ViewEntry{
		Kind:      KindOther,
		Segments:  LinkifyText(FormatMessageText(entry.Message.VisibleText)),
		Timestamp: entry.Message.CreatedAt.Format(TimeLayout),
	}
	if entry.IsOwn {
		ve.Kind = KindOwn
	} else {
		ve.SenderName = entry.Message.Sender.Name
		// Shown as a tooltip on the sender name.
		ve.SenderAddress = entry.Message.Sender.Address
	}
	if entry.ShowDateSeparator {
		ve.DateSeparator = entry.DisplayDate
	}
	for _, att := range entry.Message.Attachments {
		ve.Attachments = append(ve.Attachments, ViewAttachment{
			Name: att.Name,
			URL:  att.ContentURL,
		})
	}
	return ve
}
