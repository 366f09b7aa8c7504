package structs

// JobQueueParam is the body of a scheduled job, in-process or over the queue.
type JobQueueParam struct {
	Type     string `json:"type"`
	UserID   int64  `json:"user_id"`
	Date     string `json:"date"`
	Operate  string `json:"operate"`
	QueuedAt string `json:"queued_at"`
}
