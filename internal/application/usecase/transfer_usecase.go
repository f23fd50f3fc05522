package usecase

import (
	"context"
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

// TransferUseCase ciclo de vida de transferencias: creación, aprobación y
// rechazo. Enviar/recibir (lo que mueve stock) vive en stock.TransferUseCase.
type TransferUseCase struct {
	txRunner      stock.TxRunner
	transferRepo  repository.TransferRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	recorder      *audit.Recorder
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner stock.TxRunner,
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	recorder *audit.Recorder,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		recorder:      recorder,
	}
}

// Create registra una transferencia en estado pending. Valida que ambas
// bodegas existan y sean distintas, y que cada producto exista.
func (uc *TransferUseCase) Create(ctx context.Context, actor audit.Actor, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.SourceWarehouseID == "" || in.TargetWarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceWarehouseID == in.TargetWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	source, err := uc.warehouseRepo.GetByID(in.SourceWarehouseID)
	if err != nil {
		return nil, err
	}
	target, err := uc.warehouseRepo.GetByID(in.TargetWarehouseID)
	if err != nil {
		return nil, err
	}
	if source == nil || target == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	t := &entity.Transfer{
		ID:                uuid.New().String(),
		SourceWarehouseID: in.SourceWarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		Status:            entity.TransferStatusPending,
		RequestedBy:       actor.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		t.Items = append(t.Items, entity.TransferItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		_ repository.PurchaseRepository,
		transferRepo repository.TransferRepository,
		_ repository.ExpenseRepository,
		folioRepo repository.FolioRepository,
	) error {
		number, err := stock.NextFolio(folioRepo, stock.FolioPrefixTransfer, now)
		if err != nil {
			return err
		}
		t.Number = number
		return transferRepo.Create(t)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor, "transfer", entity.ActivityActionCreate, t.ID, t.Number,
		fmt.Sprintf("transferencia %s solicitada", t.Number),
		map[string]any{"source": t.SourceWarehouseID, "target": t.TargetWarehouseID, "items": len(t.Items)})
	return toTransferResponse(t), nil
}

// Approve transiciona pending -> approved y sella approved_by.
func (uc *TransferUseCase) Approve(ctx context.Context, actor audit.Actor, id string) (*dto.TransferResponse, error) {
	t, err := uc.transition(ctx, id, func(t *entity.Transfer) error {
		if t.Status != entity.TransferStatusPending {
			return fmt.Errorf("%w: la transferencia está %s", domain.ErrConflict, t.Status)
		}
		t.Status = entity.TransferStatusApproved
		t.ApprovedBy = actor.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "transfer", entity.ActivityActionApprove, t.ID, t.Number,
		fmt.Sprintf("transferencia %s aprobada", t.Number), nil)
	return toTransferResponse(t), nil
}

// Reject transiciona pending -> rejected con razón.
func (uc *TransferUseCase) Reject(ctx context.Context, actor audit.Actor, id, reason string) (*dto.TransferResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.transition(ctx, id, func(t *entity.Transfer) error {
		if t.Status != entity.TransferStatusPending {
			return fmt.Errorf("%w: la transferencia está %s", domain.ErrConflict, t.Status)
		}
		t.Status = entity.TransferStatusRejected
		t.RejectReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "transfer", entity.ActivityActionReject, t.ID, t.Number,
		fmt.Sprintf("transferencia %s rechazada: %s", t.Number, reason), nil)
	return toTransferResponse(t), nil
}

func (uc *TransferUseCase) transition(ctx context.Context, id string, fn func(*entity.Transfer) error) (*entity.Transfer, error) {
	var transfer *entity.Transfer
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		_ repository.PurchaseRepository,
		transferRepo repository.TransferRepository,
		_ repository.ExpenseRepository,
		_ repository.FolioRepository,
	) error {
		t, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if err := fn(t); err != nil {
			return err
		}
		t.UpdatedAt = time.Now()
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		transfer = t
		return nil
	})
	return transfer, err
}

// GetByID obtiene una transferencia.
func (uc *TransferUseCase) GetByID(id string) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(t), nil
}

// List lista transferencias con paginación, opcionalmente por estado.
func (uc *TransferUseCase) List(status string, limit, offset int) (*dto.TransferListResponse, error) {
	list, err := uc.transferRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	resp := &dto.TransferResponse{
		ID:                t.ID,
		Number:            t.Number,
		SourceWarehouseID: t.SourceWarehouseID,
		TargetWarehouseID: t.TargetWarehouseID,
		Status:            t.Status,
		RequestedBy:       t.RequestedBy,
		ApprovedBy:        t.ApprovedBy,
		RejectReason:      t.RejectReason,
		ShippedAt:         t.ShippedAt,
		CompletedAt:       t.CompletedAt,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	for _, it := range t.Items {
		resp.Items = append(resp.Items, dto.TransferItemResponse{
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			QuantityReceived: it.QuantityReceived,
		})
	}
	return resp
}
