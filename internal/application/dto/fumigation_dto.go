package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FumigationProductRequest agroquímico con dosis.
type FumigationProductRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Dose      decimal.Decimal `json:"dose"`
	DoseUnit  string          `json:"dose_unit"`
}

// CreateFumigationRequest body para POST /api/fumigations.
type CreateFumigationRequest struct {
	Field         string                     `json:"field"`
	CropName      string                     `json:"crop_name"`
	Applicator    string                     `json:"applicator"`
	Products      []FumigationProductRequest `json:"products"`
	ScheduledDate time.Time                  `json:"scheduled_date"`
	Notes         string                     `json:"notes,omitempty"`
}

// FumigationResponse orden de fumigación en respuestas.
type FumigationResponse struct {
	ID            string                     `json:"id"`
	Number        string                     `json:"number"`
	Field         string                     `json:"field"`
	CropName      string                     `json:"crop_name"`
	Applicator    string                     `json:"applicator"`
	Products      []FumigationProductRequest `json:"products"`
	ScheduledDate time.Time                  `json:"scheduled_date"`
	Status        string                     `json:"status"`
	Notes         string                     `json:"notes,omitempty"`
	CreatedBy     string                     `json:"created_by"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// FumigationListResponse listado paginado.
type FumigationListResponse struct {
	Items []FumigationResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// PDFMetadataResponse metadatos del PDF almacenado (sin el binario).
type PDFMetadataResponse struct {
	ID           string    `json:"id"`
	FumigationID string    `json:"fumigation_id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}
