package backoffice

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/models"
)

// maxDocumentSize caps KYC uploads at 10 MiB before base64 expansion.
const maxDocumentSize = 10 << 20

var mimeByExt = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// UploadDocument reads a local file, base64 encodes it and submits it
// for KYC review.
func (s *Service) UploadDocument(ctx context.Context, documentType, path string) (*models.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	if info.Size() > maxDocumentSize {
		return nil, apperrors.Wrapf(apperrors.ErrInputValidation, "file %s exceeds 10MB limit", filepath.Base(path))
	}

	mimeType, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrInputValidation, "unsupported file type %q, use pdf/png/jpg", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	upload := models.DocumentUpload{
		DocumentType: documentType,
		FileData:     base64.StdEncoding.EncodeToString(data),
		FileName:     filepath.Base(path),
		MimeType:     mimeType,
	}
	if err := s.checkPayload(upload); err != nil {
		return nil, err
	}

	var doc models.Document
	if err := s.client.Post(ctx, "/api/documents/upload", upload, &doc); err != nil {
		return nil, fmt.Errorf("uploading document: %w", err)
	}
	s.logger.Info().
		Str("document_id", doc.ID).
		Str("type", documentType).
		Str("file", upload.FileName).
		Msg("Document uploaded")
	return &doc, nil
}

// Documents lists the caller's uploaded KYC documents.
func (s *Service) Documents(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := s.client.Get(ctx, "/api/documents/list", &docs); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}

// Document fetches a single document with its file payload.
func (s *Service) Document(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := s.client.Get(ctx, "/api/documents/"+id, &doc); err != nil {
		return nil, fmt.Errorf("fetching document %s: %w", id, err)
	}
	return &doc, nil
}

// ReviewDocument approves or rejects a document. Admin only, the backend
// enforces the role.
func (s *Service) ReviewDocument(ctx context.Context, id string, review models.DocumentReview) error {
	if err := s.checkPayload(review); err != nil {
		return err
	}
	var ack statusMessage
	if err := s.client.Put(ctx, "/api/documents/"+id+"/review", review, &ack); err != nil {
		return fmt.Errorf("reviewing document %s: %w", id, err)
	}
	s.logger.Info().
		Str("document_id", id).
		Str("status", review.Status).
		Msg("Document reviewed")
	return nil
}

// BankDetails fetches the saved withdrawal bank account, if any.
func (s *Service) BankDetails(ctx context.Context) (*models.BankDetails, error) {
	var details models.BankDetails
	if err := s.client.Get(ctx, "/api/documents/bank-details", &details); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("fetching bank details: %w", err)
	}
	return &details, nil
}

// SaveBankDetails creates or replaces the withdrawal bank account.
func (s *Service) SaveBankDetails(ctx context.Context, details models.BankDetails) (*models.BankDetails, error) {
	if err := s.checkPayload(details); err != nil {
		return nil, err
	}
	var saved models.BankDetails
	if err := s.client.Post(ctx, "/api/documents/bank-details", details, &saved); err != nil {
		return nil, fmt.Errorf("saving bank details: %w", err)
	}
	s.logger.Info().Str("bank", details.BankName).Msg("Bank details saved")
	return &saved, nil
}

// DeleteBankDetails removes the saved withdrawal bank account.
func (s *Service) DeleteBankDetails(ctx context.Context) error {
	if err := s.client.Delete(ctx, "/api/documents/bank-details", nil); err != nil {
		return fmt.Errorf("deleting bank details: %w", err)
	}
	return nil
}
