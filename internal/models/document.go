package models

// Document types accepted by KYC: id, passport, utility_bill, bank_statement.

// DocumentUpload is the payload for /api/documents/upload. FileData is
// base64 encoded.
type DocumentUpload struct {
	DocumentType string `json:"document_type" validate:"required,oneof=id passport utility_bill bank_statement"`
	FileData     string `json:"file_data" validate:"required"`
	FileName     string `json:"file_name" validate:"required"`
	MimeType     string `json:"mime_type" validate:"required"`
}

// Document is a KYC document record. FileData is only populated when a
// single document is fetched by id.
type Document struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id,omitempty"`
	DocumentType  string     `json:"document_type"`
	FileName      string     `json:"file_name"`
	MimeType      string     `json:"mime_type"`
	FileData      string     `json:"file_data,omitempty"`
	Status        string     `json:"status"`
	UploadedAt    Timestamp  `json:"uploaded_at"`
	ReviewedAt    *Timestamp `json:"reviewed_at,omitempty"`
	ReviewerNotes string     `json:"reviewer_notes,omitempty"`
}

// DocumentReview is the admin payload for /api/documents/{id}/review.
type DocumentReview struct {
	Status string `json:"status" validate:"required,oneof=approved rejected pending"`
	Notes  string `json:"notes,omitempty"`
}

// BankDetails is the user's withdrawal bank account.
type BankDetails struct {
	ID            string    `json:"id,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	BankName      string    `json:"bank_name" validate:"required"`
	AccountName   string    `json:"account_name" validate:"required"`
	AccountNumber string    `json:"account_number" validate:"required"`
	RoutingNumber string    `json:"routing_number,omitempty"`
	SwiftCode     string    `json:"swift_code,omitempty"`
	IBAN          string    `json:"iban,omitempty"`
	BankAddress   string    `json:"bank_address,omitempty"`
	AccountType   string    `json:"account_type,omitempty"`
	Verified      bool      `json:"verified,omitempty"`
	CreatedAt     Timestamp `json:"created_at,omitempty"`
}
