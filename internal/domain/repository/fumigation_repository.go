package repository

import "github.com/jcastillo/AgroStock-api/internal/domain/entity"

// FumigationRepository define el puerto de persistencia para órdenes de
// fumigación.
type FumigationRepository interface {
	Create(fumigation *entity.Fumigation) error
	GetByID(id string) (*entity.Fumigation, error)
	Update(fumigation *entity.Fumigation) error
	List(status string, limit, offset int) ([]*entity.Fumigation, error)
}

// FumigationPDFRepository almacén relacional de PDFs generados:
// guarda el binario y expone consulta por orden, chequeo de existencia,
// metadatos y borrado.
type FumigationPDFRepository interface {
	// Save persiste el PDF y devuelve el id del registro almacenado.
	Save(pdf *entity.FumigationPDF) (string, error)
	// GetByFumigation devuelve el PDF (con contenido) de una orden.
	GetByFumigation(fumigationID string) (*entity.FumigationPDF, error)
	Exists(fumigationID string) (bool, error)
	// Metadata devuelve el registro sin el binario.
	Metadata(fumigationID string) (*entity.FumigationPDF, error)
	Delete(fumigationID string) error
}
