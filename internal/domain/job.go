package domain

import (
	"time"

	"github.com/google/uuid"
)

type ExportStatus string

const (
	ExportPending   ExportStatus = "pending"
	ExportCompleted ExportStatus = "completed"
	ExportFailed    ExportStatus = "failed"
)

// ExportJob tracks one render of the portfolio page to HTML and PDF.
type ExportJob struct {
	ID          uuid.UUID              `json:"id"`
	RequestedBy string                 `json:"requested_by"`
	Status      ExportStatus           `json:"status"`
	Metadata    map[string]interface{} `json:"metadata"`
	HTMLPath    string                 `json:"html_path,omitempty"`
	PDFPath     string                 `json:"pdf_path,omitempty"`
	Error       string                 `json:"error,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
