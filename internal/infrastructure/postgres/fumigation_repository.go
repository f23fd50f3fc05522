package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

var _ repository.FumigationRepository = (*FumigationRepo)(nil)
var _ repository.FumigationPDFRepository = (*FumigationPDFRepo)(nil)

const fumigationColumns = `id, number, field, crop_name, applicator, products, scheduled_date, status, notes, created_by, created_at, updated_at`

// FumigationRepo implementación de FumigationRepository sobre PostgreSQL.
// Los agroquímicos con dosis van en una columna JSONB: se leen y escriben
// siempre como bloque, nunca se consultan por separado.
type FumigationRepo struct {
	q Querier
}

// NewFumigationRepository construye el adaptador de órdenes de fumigación.
// Pasar pool o tx (Querier).
func NewFumigationRepository(q Querier) *FumigationRepo {
	return &FumigationRepo{q: q}
}

// Create persiste una orden de fumigación.
func (r *FumigationRepo) Create(f *entity.Fumigation) error {
	products, err := json.Marshal(f.Products)
	if err != nil {
		return fmt.Errorf("marshal fumigation products: %w", err)
	}
	query := `
		INSERT INTO fumigations (id, number, field, crop_name, applicator, products, scheduled_date, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		f.ID, f.Number, f.Field, f.CropName, f.Applicator, products,
		f.ScheduledDate, f.Status, f.Notes, f.CreatedBy, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fumigation: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *FumigationRepo) GetByID(id string) (*entity.Fumigation, error) {
	query := `SELECT ` + fumigationColumns + ` FROM fumigations WHERE id = $1`
	f, err := scanFumigation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fumigation: %w", err)
	}
	return f, nil
}

// Update actualiza estado, notas y agroquímicos de una orden.
func (r *FumigationRepo) Update(f *entity.Fumigation) error {
	products, err := json.Marshal(f.Products)
	if err != nil {
		return fmt.Errorf("marshal fumigation products: %w", err)
	}
	query := `
		UPDATE fumigations
		SET field = $2, crop_name = $3, applicator = $4, products = $5, scheduled_date = $6, status = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		f.ID, f.Field, f.CropName, f.Applicator, products, f.ScheduledDate,
		f.Status, f.Notes, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fumigation: %w", err)
	}
	return nil
}

// List lista órdenes, opcionalmente por estado, más reciente primero.
func (r *FumigationRepo) List(status string, limit, offset int) ([]*entity.Fumigation, error) {
	query := `
		SELECT ` + fumigationColumns + `
		FROM fumigations
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fumigations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Fumigation
	for rows.Next() {
		f, err := scanFumigation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fumigation: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func scanFumigation(row pgx.Row) (*entity.Fumigation, error) {
	var f entity.Fumigation
	var products []byte
	err := row.Scan(
		&f.ID, &f.Number, &f.Field, &f.CropName, &f.Applicator, &products,
		&f.ScheduledDate, &f.Status, &f.Notes, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		if err := json.Unmarshal(products, &f.Products); err != nil {
			return nil, fmt.Errorf("unmarshal fumigation products: %w", err)
		}
	}
	return &f, nil
}

// FumigationPDFRepo almacén relacional de PDFs: el binario va en una columna
// BYTEA junto a sus metadatos. Una orden tiene a lo sumo un PDF vigente.
type FumigationPDFRepo struct {
	q Querier
}

// NewFumigationPDFRepository construye el almacén de PDFs. Pasar pool o tx
// (Querier).
func NewFumigationPDFRepository(q Querier) *FumigationPDFRepo {
	return &FumigationPDFRepo{q: q}
}

// Save persiste el PDF y devuelve el id del registro.
func (r *FumigationPDFRepo) Save(pdf *entity.FumigationPDF) (string, error) {
	query := `
		INSERT INTO fumigation_pdfs (id, fumigation_id, filename, content_type, size_bytes, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		pdf.ID, pdf.FumigationID, pdf.Filename, pdf.ContentType, pdf.SizeBytes,
		pdf.Content, pdf.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("insert fumigation pdf: %w", err)
	}
	return pdf.ID, nil
}

// GetByFumigation devuelve el PDF (con contenido) de una orden.
func (r *FumigationPDFRepo) GetByFumigation(fumigationID string) (*entity.FumigationPDF, error) {
	query := `
		SELECT id, fumigation_id, filename, content_type, size_bytes, content, created_at
		FROM fumigation_pdfs WHERE fumigation_id = $1`
	var p entity.FumigationPDF
	err := r.q.QueryRow(context.Background(), query, fumigationID).Scan(
		&p.ID, &p.FumigationID, &p.Filename, &p.ContentType, &p.SizeBytes, &p.Content, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fumigation pdf: %w", err)
	}
	return &p, nil
}

// Exists indica si una orden tiene PDF almacenado.
func (r *FumigationPDFRepo) Exists(fumigationID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM fumigation_pdfs WHERE fumigation_id = $1)`,
		fumigationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists fumigation pdf: %w", err)
	}
	return exists, nil
}

// Metadata devuelve el registro sin el binario.
func (r *FumigationPDFRepo) Metadata(fumigationID string) (*entity.FumigationPDF, error) {
	query := `
		SELECT id, fumigation_id, filename, content_type, size_bytes, created_at
		FROM fumigation_pdfs WHERE fumigation_id = $1`
	var p entity.FumigationPDF
	err := r.q.QueryRow(context.Background(), query, fumigationID).Scan(
		&p.ID, &p.FumigationID, &p.Filename, &p.ContentType, &p.SizeBytes, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("metadata fumigation pdf: %w", err)
	}
	return &p, nil
}

// Delete borra el PDF de una orden.
func (r *FumigationPDFRepo) Delete(fumigationID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM fumigation_pdfs WHERE fumigation_id = $1`, fumigationID)
	if err != nil {
		return fmt.Errorf("delete fumigation pdf: %w", err)
	}
	return nil
}
