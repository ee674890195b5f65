package specification

import "gorm.io/gorm"

type ByDocumentID struct {
	DocumentID uint
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// Newest orders by creation time, breaking ties on id so rows written in the
// same clock tick still come back newest first.
type Newest struct{}

func (s Newest) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
