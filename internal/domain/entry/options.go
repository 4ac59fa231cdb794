package entry

import "time"

// ListEntriesOptions filters ledger queries. From and To are inclusive
// attribution days; empty string fields are not filtered on.
type ListEntriesOptions struct {
	From      time.Time
	To        time.Time
	UserID    string
	ProjectID string
	TaskID    string
}
