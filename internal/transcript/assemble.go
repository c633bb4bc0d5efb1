package transcript

// Assemble classifies and date-groups an ordered message list into
// transcript entries. Input order is trusted as chronological and is
// preserved; output length equals input length.
//
// Authorship uses exact, case-sensitive equality between the sender
// address and the viewer's mailbox address. ShowDateSeparator is true
// exactly for the first entry of each maximal run of entries sharing the
// same calendar date.
func Assemble(messages []Message, viewerAddress string) []Entry {
	entries := make([]Entry, 0, len(messages))
	lastDate := ""
	for _, msg := range messages {
		date := msg.CreatedAt.Format(DateLayout)
		entries = append(entries, Entry{
			Message:           msg,
			IsOwn:             msg.Sender.Address == viewerAddress,
			DisplayDate:       date,
			ShowDateSeparator: date != lastDate,
		})
		lastDate = date
	}
	return entries
}
