package model

import "time"

type Conversation struct {
	Id         uint      `gorm:"primaryKey"`
	DocumentId uint      `gorm:"not null;index:idx_conversation_document_created"`
	UserId     uint      `gorm:"not null;index"`
	Question   string    `gorm:"type:text;not null"`
	Answer     string    `gorm:"type:text;not null"`
	Provider   string    `gorm:"type:varchar(50)"`
	Model      string    `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_conversation_document_created"`

	Document *Document `gorm:"foreignKey:DocumentId;constraint:OnDelete:CASCADE"`
	User     *User     `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Conversation) TableName() string {
	return "ai_conversations"
}

// All lists every table in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Organization{},
		&Membership{},
		&Document{},
		&Conversation{},
	}
}
