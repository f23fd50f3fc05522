package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de fumigación.
const (
	FumigationStatusScheduled = "scheduled"
	FumigationStatusApplied   = "applied"
	FumigationStatusCancelled = "cancelled"
)

// Fumigation representa una orden de fumigación sobre un lote del campo.
type Fumigation struct {
	ID            string
	Number        string // folio FUM-YYYYMM-NNNN
	Field         string // lote o potrero
	CropName      string
	Applicator    string // responsable de la aplicación
	Products      []FumigationProduct
	ScheduledDate time.Time
	Status        string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FumigationProduct agroquímico a aplicar con su dosis.
type FumigationProduct struct {
	ProductID string
	Name      string
	Dose      decimal.Decimal
	DoseUnit  string // lt/ha, kg/ha
}

// FumigationPDF binario PDF generado para una orden, almacenado en la base
// relacional junto a sus metadatos.
type FumigationPDF struct {
	ID           string
	FumigationID string
	Filename     string
	ContentType  string
	SizeBytes    int64
	Content      []byte // vacío en consultas de solo metadatos
	CreatedAt    time.Time
}
