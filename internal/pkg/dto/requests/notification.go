package requests

type FindNotifications struct {
	RecipientID string
	UnreadOnly  bool
	Page        int
	PageSize    int
}
