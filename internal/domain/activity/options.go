package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	UserID       string
	EntryID      *string
	TaskID       *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
