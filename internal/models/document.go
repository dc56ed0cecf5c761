// Package models defines core data structures for documents, analyses, and history.
package models

import (
	"fmt"
	"time"
)

// DocumentType identifies the kind of real-estate document that was uploaded.
type DocumentType string

const (
	DocTypeRentRoll     DocumentType = "rent-roll"
	DocTypeOfferingMemo DocumentType = "offering-memo"
	DocTypeAssetReport  DocumentType = "asset-report"
	DocTypeUnknown      DocumentType = "unknown"
)

// UploadedDocument describes an uploaded (or sample) document. Only name, size,
// and MIME type are ever known; file content is never read.
type UploadedDocument struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Size         int64        `json:"size"`
	MimeType     string       `json:"mime_type"`
	UploadedAt   time.Time    `json:"uploaded_at"`
	DocumentType DocumentType `json:"document_type"`
}

// MaxUploadSize is the upload size ceiling (10MB).
const MaxUploadSize = 10 * 1024 * 1024

var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":   true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// UploadRequest is the input for registering an upload. Content is never transmitted.
type UploadRequest struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// Validate checks the declared MIME type and size. Violations are reported to the
// caller synchronously; nothing else in the system sees an invalid upload.
func (u *UploadRequest) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("file name is required")
	}
	if !allowedMimeTypes[u.MimeType] {
		return fmt.Errorf("unsupported file type %q: upload a PDF, Excel, or Word document", u.MimeType)
	}
	if u.Size <= 0 {
		return fmt.Errorf("file size must be positive")
	}
	if u.Size > MaxUploadSize {
		return fmt.Errorf("file size must be less than 10MB")
	}
	return nil
}
