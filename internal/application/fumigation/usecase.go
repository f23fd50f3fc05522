// Package fumigation implementa las órdenes de fumigación y su PDF.
package fumigation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jcastillo/AgroStock-api/internal/application/audit"
	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/application/stock"
	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

// PDFGenerator genera el PDF de una orden de fumigación.
type PDFGenerator interface {
	Generate(fumigation *entity.Fumigation) ([]byte, error)
}

// UseCase órdenes de fumigación: CRUD, generación del PDF y su almacén
// relacional.
type UseCase struct {
	repo      repository.FumigationRepository
	pdfRepo   repository.FumigationPDFRepository
	folioRepo repository.FolioRepository
	generator PDFGenerator
	recorder  *audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.FumigationRepository, pdfRepo repository.FumigationPDFRepository,
	folioRepo repository.FolioRepository, generator PDFGenerator, recorder *audit.Recorder) *UseCase {
	return &UseCase{repo: repo, pdfRepo: pdfRepo, folioRepo: folioRepo, generator: generator, recorder: recorder}
}

// Create crea una orden de fumigación con folio FUM-YYYYMM-NNNN.
func (uc *UseCase) Create(actor audit.Actor, in dto.CreateFumigationRequest) (*dto.FumigationResponse, error) {
	if in.Field == "" || in.Applicator == "" || len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	products := make([]entity.FumigationProduct, 0, len(in.Products))
	for _, p := range in.Products {
		if p.Name == "" || !p.Dose.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		products = append(products, entity.FumigationProduct{
			ProductID: p.ProductID,
			Name:      p.Name,
			Dose:      p.Dose,
			DoseUnit:  p.DoseUnit,
		})
	}
	now := time.Now()
	number, err := stock.NextFolio(uc.folioRepo, stock.FolioPrefixFumigation, now)
	if err != nil {
		return nil, err
	}
	f := &entity.Fumigation{
		ID:            uuid.New().String(),
		Number:        number,
		Field:         in.Field,
		CropName:      in.CropName,
		Applicator:    in.Applicator,
		Products:      products,
		ScheduledDate: in.ScheduledDate,
		Status:        entity.FumigationStatusScheduled,
		Notes:         in.Notes,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(f); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "fumigation", entity.ActivityActionCreate, f.ID, f.Number,
		fmt.Sprintf("orden de fumigación %s creada para %s", f.Number, f.Field),
		map[string]any{"field": f.Field, "crop": f.CropName})
	return toResponse(f), nil
}

// GetByID obtiene una orden por ID.
func (uc *UseCase) GetByID(id string) (*dto.FumigationResponse, error) {
	f, err := uc.get(id)
	if err != nil {
		return nil, err
	}
	return toResponse(f), nil
}

// MarkApplied marca la orden como aplicada.
func (uc *UseCase) MarkApplied(actor audit.Actor, id string) (*dto.FumigationResponse, error) {
	return uc.transition(actor, id, entity.FumigationStatusApplied, entity.ActivityActionComplete, "aplicada")
}

// Cancel cancela una orden agendada.
func (uc *UseCase) Cancel(actor audit.Actor, id string) (*dto.FumigationResponse, error) {
	return uc.transition(actor, id, entity.FumigationStatusCancelled, entity.ActivityActionCancel, "cancelada")
}

func (uc *UseCase) transition(actor audit.Actor, id, target, action, verbo string) (*dto.FumigationResponse, error) {
	f, err := uc.get(id)
	if err != nil {
		return nil, err
	}
	if f.Status != entity.FumigationStatusScheduled {
		return nil, fmt.Errorf("%w: la orden %s está %s", domain.ErrConflict, f.Number, f.Status)
	}
	f.Status = target
	f.UpdatedAt = time.Now()
	if err := uc.repo.Update(f); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "fumigation", action, f.ID, f.Number,
		fmt.Sprintf("orden de fumigación %s %s", f.Number, verbo), nil)
	return toResponse(f), nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *UseCase) List(status string, limit, offset int) (*dto.FumigationListResponse, error) {
	list, err := uc.repo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FumigationResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toResponse(f))
	}
	return &dto.FumigationListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// GeneratePDF genera el PDF de la orden y lo guarda en la base. Si ya existía
// uno se reemplaza: el PDF refleja siempre el último estado de la orden.
func (uc *UseCase) GeneratePDF(actor audit.Actor, id string) (*dto.PDFMetadataResponse, error) {
	f, err := uc.get(id)
	if err != nil {
		return nil, err
	}
	content, err := uc.generator.Generate(f)
	if err != nil {
		return nil, fmt.Errorf("generar PDF de %s: %w", f.Number, err)
	}
	exists, err := uc.pdfRepo.Exists(f.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := uc.pdfRepo.Delete(f.ID); err != nil {
			return nil, err
		}
	}
	pdf := &entity.FumigationPDF{
		ID:           uuid.New().String(),
		FumigationID: f.ID,
		Filename:     fmt.Sprintf("orden-fumigacion-%s.pdf", f.Number),
		ContentType:  "application/pdf",
		SizeBytes:    int64(len(content)),
		Content:      content,
		CreatedAt:    time.Now(),
	}
	if _, err := uc.pdfRepo.Save(pdf); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "fumigation", entity.ActivityActionUpdate, f.ID, f.Number,
		fmt.Sprintf("PDF generado para la orden %s", f.Number),
		map[string]any{"filename": pdf.Filename, "size_bytes": pdf.SizeBytes})
	return toPDFMetadata(pdf), nil
}

// GetPDF devuelve el PDF almacenado (con contenido) de una orden.
func (uc *UseCase) GetPDF(id string) (*entity.FumigationPDF, error) {
	pdf, err := uc.pdfRepo.GetByFumigation(id)
	if err != nil {
		return nil, err
	}
	if pdf == nil {
		return nil, domain.ErrNotFound
	}
	return pdf, nil
}

// PDFMetadata devuelve los metadatos del PDF sin el binario.
func (uc *UseCase) PDFMetadata(id string) (*dto.PDFMetadataResponse, error) {
	pdf, err := uc.pdfRepo.Metadata(id)
	if err != nil {
		return nil, err
	}
	if pdf == nil {
		return nil, domain.ErrNotFound
	}
	return toPDFMetadata(pdf), nil
}

// DeletePDF borra el PDF almacenado de una orden.
func (uc *UseCase) DeletePDF(actor audit.Actor, id string) error {
	exists, err := uc.pdfRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := uc.pdfRepo.Delete(id); err != nil {
		return err
	}
	f, err := uc.repo.GetByID(id)
	if err == nil && f != nil {
		uc.recorder.Record(actor, "fumigation", entity.ActivityActionDelete, f.ID, f.Number,
			fmt.Sprintf("PDF eliminado de la orden %s", f.Number), nil)
	}
	return nil
}

func (uc *UseCase) get(id string) (*entity.Fumigation, error) {
	f, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func toResponse(f *entity.Fumigation) *dto.FumigationResponse {
	products := make([]dto.FumigationProductRequest, 0, len(f.Products))
	for _, p := range f.Products {
		products = append(products, dto.FumigationProductRequest{
			ProductID: p.ProductID,
			Name:      p.Name,
			Dose:      p.Dose,
			DoseUnit:  p.DoseUnit,
		})
	}
	return &dto.FumigationResponse{
		ID:            f.ID,
		Number:        f.Number,
		Field:         f.Field,
		CropName:      f.CropName,
		Applicator:    f.Applicator,
		Products:      products,
		ScheduledDate: f.ScheduledDate,
		Status:        f.Status,
		Notes:         f.Notes,
		CreatedBy:     f.CreatedBy,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func toPDFMetadata(p *entity.FumigationPDF) *dto.PDFMetadataResponse {
	return &dto.PDFMetadataResponse{
		ID:           p.ID,
		FumigationID: p.FumigationID,
		Filename:     p.Filename,
		ContentType:  p.ContentType,
		SizeBytes:    p.SizeBytes,
		CreatedAt:    p.CreatedAt,
	}
}
