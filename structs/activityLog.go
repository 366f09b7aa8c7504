package structs

type ActivityLogJsonModel struct {
	Type    string       `json:"type"`
	UserID  int64        `json:"user_id,omitempty"`
	Date    string       `json:"date,omitempty"`
	Result  bool         `json:"result"`
	Skipped bool         `json:"skipped,omitempty"`
	Message string       `json:"message"`
	Errors  []ErrorModel `json:"errors,omitempty"`
}

type ErrorModel struct {
	UserID       int64  `json:"user_id,omitempty"`
	ErrorMessage string `json:"error_message"`
}
