package structs

import "time"

// IncomingMessage is a chat update reduced to what the dialog needs.
type IncomingMessage struct {
	UserID      int64
	ChatID      int64
	Text        string
	Caption     string
	PhotoFileID string
	Command     string
	CommandArgs string
	ReceivedAt  time.Time
}

func (m IncomingMessage) IsCommand() bool {
	return m.Command != ""
}

func (m IncomingMessage) HasPhoto() bool {
	return m.PhotoFileID != ""
}

type Keyboard struct {
	Rows        [][]string
	OneTime     bool
	Placeholder string
}

type OutgoingMessage struct {
	ChatID         int64
	Text           string
	Markdown       bool
	PhotoURL       string
	Keyboard       *Keyboard
	RemoveKeyboard bool
}
