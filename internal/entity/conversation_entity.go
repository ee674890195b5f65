package entity

import "time"

// Conversation is one immutable question/answer exchange about a document.
type Conversation struct {
	Id         uint
	DocumentId uint
	UserId     uint
	Question   string
	Answer     string
	Provider   string
	Model      string
	CreatedAt  time.Time

	Document *Document
	User     *User
}
