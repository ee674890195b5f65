package dto

type CreateDocumentRequest struct {
	Title   string `json:"title" validate:"notblank,max=255" msg:"Document title cannot be empty."`
	Content string `json:"content" validate:"notblank" msg:"Document content cannot be empty."`
}

type AskQuestionRequest struct {
	DocumentId uint   `json:"document_id" validate:"required"`
	Question   string `json:"question" validate:"notblank" msg:"Question cannot be empty."`
}
