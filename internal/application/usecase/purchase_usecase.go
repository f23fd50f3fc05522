package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastillo/AgroStock-api/internal/application/audit"
	"github.com/jcastillo/AgroStock-api/internal/application/dto"
	"github.com/jcastillo/AgroStock-api/internal/application/stock"
	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

// PurchaseUseCase ciclo de vida de compras: creación, aprobación,
// cancelación y alta de entregas. Completar/cancelar entregas (lo que mueve
// stock) vive en stock.DeliveryUseCase.
type PurchaseUseCase struct {
	txRunner     stock.TxRunner
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	recorder     *audit.Recorder
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner stock.TxRunner,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	recorder *audit.Recorder,
) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, purchaseRepo: purchaseRepo, productRepo: productRepo, recorder: recorder}
}

// Create registra una compra en estado pending. Folio e inserción van en la
// misma transacción para que el consecutivo nunca se repita.
func (uc *PurchaseUseCase) Create(ctx context.Context, actor audit.Actor, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.Supplier == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Purchase{
		ID:        uuid.New().String(),
		Supplier:  in.Supplier,
		Status:    entity.PurchaseStatusPending,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	total := decimal.Zero
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		p.Items = append(p.Items, entity.PurchaseItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
		total = total.Add(it.Quantity)
	}
	p.TotalOrdered = total
	p.TotalPending = total

	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.TransferRepository,
		_ repository.ExpenseRepository,
		folioRepo repository.FolioRepository,
	) error {
		number, err := stock.NextFolio(folioRepo, stock.FolioPrefixPurchase, now)
		if err != nil {
			return err
		}
		p.Number = number
		return purchaseRepo.Create(p)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor, "purchase", entity.ActivityActionCreate, p.ID, p.Number,
		fmt.Sprintf("compra %s creada a %s", p.Number, p.Supplier),
		map[string]any{"number": p.Number, "supplier": p.Supplier, "items": len(p.Items)})
	return toPurchaseResponse(p), nil
}

// Approve transiciona pending -> approved y sella approved_by.
func (uc *PurchaseUseCase) Approve(ctx context.Context, actor audit.Actor, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.transition(ctx, id, func(p *entity.Purchase) error {
		if p.Status != entity.PurchaseStatusPending {
			return fmt.Errorf("%w: la compra está %s", domain.ErrConflict, p.Status)
		}
		p.Status = entity.PurchaseStatusApproved
		p.ApprovedBy = actor.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "purchase", entity.ActivityActionApprove, p.ID, p.Number,
		fmt.Sprintf("compra %s aprobada", p.Number), nil)
	return toPurchaseResponse(p), nil
}

// Cancel cancela una compra no completada, con razón.
func (uc *PurchaseUseCase) Cancel(ctx context.Context, actor audit.Actor, id, reason string) (*dto.PurchaseResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.transition(ctx, id, func(p *entity.Purchase) error {
		if p.Status == entity.PurchaseStatusCompleted || p.Status == entity.PurchaseStatusCancelled {
			return fmt.Errorf("%w: la compra está %s", domain.ErrConflict, p.Status)
		}
		p.Status = entity.PurchaseStatusCancelled
		p.CancelReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, "purchase", entity.ActivityActionCancel, p.ID, p.Number,
		fmt.Sprintf("compra %s cancelada: %s", p.Number, reason), nil)
	return toPurchaseResponse(p), nil
}

// transition carga la compra con lock, aplica fn y persiste, en una tx.
func (uc *PurchaseUseCase) transition(ctx context.Context, id string, fn func(*entity.Purchase) error) (*entity.Purchase, error) {
	var purchase *entity.Purchase
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.TransferRepository,
		_ repository.ExpenseRepository,
		_ repository.FolioRepository,
	) error {
		p, err := purchaseRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := fn(p); err != nil {
			return err
		}
		p.UpdatedAt = time.Now()
		if err := purchaseRepo.Update(p); err != nil {
			return err
		}
		purchase = p
		return nil
	})
	return purchase, err
}

// AddDelivery anuncia una entrega sobre una compra aprobada o parcial.
// Items vacío anuncia todas las líneas pedidas. Cada línea debe referir un
// producto pedido en la compra.
func (uc *PurchaseUseCase) AddDelivery(ctx context.Context, actor audit.Actor, purchaseID string, in dto.AddDeliveryRequest) (*dto.PurchaseResponse, error) {
	if in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	var purchase *entity.Purchase
	var deliveryID string

	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.TransferRepository,
		_ repository.ExpenseRepository,
		_ repository.FolioRepository,
	) error {
		p, err := purchaseRepo.GetForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Status != entity.PurchaseStatusApproved && p.Status != entity.PurchaseStatusPartial {
			return fmt.Errorf("%w: la compra está %s", domain.ErrConflict, p.Status)
		}

		ordered := make(map[string]decimal.Decimal, len(p.Items))
		for _, it := range p.Items {
			ordered[it.ProductID] = it.Quantity
		}

		now := time.Now()
		d := &entity.Delivery{
			ID:          uuid.New().String(),
			PurchaseID:  p.ID,
			WarehouseID: in.WarehouseID,
			Status:      entity.DeliveryStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if len(in.Items) == 0 {
			for _, it := range p.Items {
				d.Items = append(d.Items, entity.DeliveryItem{ProductID: it.ProductID, Quantity: it.Quantity})
			}
		} else {
			for _, it := range in.Items {
				if _, ok := ordered[it.ProductID]; !ok {
					return fmt.Errorf("%w: el producto %s no está pedido en la compra", domain.ErrInvalidInput, it.ProductID)
				}
				if !it.Quantity.IsPositive() {
					return domain.ErrInvalidInput
				}
				d.Items = append(d.Items, entity.DeliveryItem{ProductID: it.ProductID, Quantity: it.Quantity})
			}
		}
		if err := purchaseRepo.CreateDelivery(d); err != nil {
			return err
		}
		deliveryID = d.ID
		purchase, err = purchaseRepo.GetByID(p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor, "purchase", entity.ActivityActionUpdate, purchase.ID, purchase.Number,
		fmt.Sprintf("entrega anunciada en compra %s", purchase.Number),
		map[string]any{"delivery_id": deliveryID})
	return toPurchaseResponse(purchase), nil
}

// MarkDeliveryInTransit transiciona una entrega pending -> in_transit.
func (uc *PurchaseUseCase) MarkDeliveryInTransit(ctx context.Context, actor audit.Actor, deliveryID string) error {
	var purchaseNumber string
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.TransferRepository,
		_ repository.ExpenseRepository,
		_ repository.FolioRepository,
	) error {
		d, err := purchaseRepo.GetDeliveryByID(deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status != entity.DeliveryStatusPending {
			return fmt.Errorf("%w: la entrega está %s", domain.ErrConflict, d.Status)
		}
		d.Status = entity.DeliveryStatusInTransit
		d.UpdatedAt = time.Now()
		if err := purchaseRepo.UpdateDelivery(d); err != nil {
			return err
		}
		p, err := purchaseRepo.GetByID(d.PurchaseID)
		if err == nil && p != nil {
			purchaseNumber = p.Number
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.recorder.Record(actor, "purchase", entity.ActivityActionUpdate, deliveryID, purchaseNumber,
		"entrega marcada en tránsito", nil)
	return nil
}

// GetByID obtiene una compra con entregas.
func (uc *PurchaseUseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseResponse(p), nil
}

// List lista compras con paginación, opcionalmente por estado.
func (uc *PurchaseUseCase) List(status string, limit, offset int) (*dto.PurchaseListResponse, error) {
	list, err := uc.purchaseRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	resp := &dto.PurchaseResponse{
		ID:             p.ID,
		Number:         p.Number,
		Supplier:       p.Supplier,
		TotalOrdered:   p.TotalOrdered,
		TotalDelivered: p.TotalDelivered,
		TotalPending:   p.TotalPending,
		Status:         p.Status,
		CreatedBy:      p.CreatedBy,
		ApprovedBy:     p.ApprovedBy,
		CancelReason:   p.CancelReason,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	for _, d := range p.Deliveries {
		dr := dto.DeliveryResponse{
			ID:           d.ID,
			WarehouseID:  d.WarehouseID,
			Status:       d.Status,
			CancelReason: d.CancelReason,
			CompletedAt:  d.CompletedAt,
			CreatedAt:    d.CreatedAt,
		}
		for _, it := range d.Items {
			dr.Items = append(dr.Items, dto.DeliveryItemResponse{ProductID: it.ProductID, Quantity: it.Quantity, QuantityReceived: it.QuantityReceived})
		}
		resp.Deliveries = append(resp.Deliveries, dr)
	}
	return resp
}
