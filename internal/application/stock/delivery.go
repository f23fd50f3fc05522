package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastillo/AgroStock-api/internal/application/audit"
	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
	"github.com/jcastillo/AgroStock-api/internal/domain/repository"
)

// DeliveryUseCase completa y cancela entregas de compras. Completar una
// entrega suma stock por cada línea recibida, reasigna la bodega del producto
// al destino de la entrega y recalcula los agregados de la compra padre, todo
// en una sola transacción.
type DeliveryUseCase struct {
	txRunner TxRunner
	recorder *audit.Recorder
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(txRunner TxRunner, recorder *audit.Recorder) *DeliveryUseCase {
	return &DeliveryUseCase{txRunner: txRunner, recorder: recorder}
}

// Complete marca la entrega como completada. received trae cantidades
// efectivamente recibidas por producto; un producto ausente recibe la
// cantidad anunciada. Completar una entrega ya completada (o cancelada)
// devuelve domain.ErrConflict: el stock jamás se suma dos veces.
func (uc *DeliveryUseCase) Complete(ctx context.Context, actor audit.Actor, deliveryID string, received map[string]decimal.Decimal) (*entity.Purchase, error) {
	var purchase *entity.Purchase
	var delivery *entity.Delivery

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
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
		// Bloquea la compra padre: dos completados concurrentes sobre la
		// misma compra serializan aquí y el recálculo de agregados ve
		// siempre el estado ya commiteado del otro.
		p, err := purchaseRepo.GetForUpdate(d.PurchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		// La lectura inicial de la entrega corre antes de adquirir el
		// candado y puede quedar obsoleta si otra transacción commiteó
		// mientras esperábamos. El estado válido es el que cuelga de la
		// compra recién bloqueada.
		d = deliveryOf(p, deliveryID)
		if d == nil {
			return domain.ErrNotFound
		}
		if p.Status == entity.PurchaseStatusCancelled {
			return fmt.Errorf("%w: la compra %s está cancelada", domain.ErrConflict, p.Number)
		}
		if d.Status != entity.DeliveryStatusPending && d.Status != entity.DeliveryStatusInTransit {
			return fmt.Errorf("%w: la entrega está %s", domain.ErrConflict, d.Status)
		}

		now := time.Now()
		for i := range d.Items {
			qty := d.Items[i].Quantity
			if override, ok := received[d.Items[i].ProductID]; ok {
				if override.IsNegative() {
					return domain.ErrInvalidInput
				}
				qty = override
			}
			d.Items[i].QuantityReceived = qty
			if !qty.IsPositive() {
				continue
			}
			product, err := productRepo.GetForUpdate(d.Items[i].ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			// Suma stock y reasigna el producto a la bodega destino.
			if err := productRepo.UpdateStockAndWarehouse(product.ID, product.Stock.Add(qty), d.WarehouseID); err != nil {
				return err
			}
		}

		d.Status = entity.DeliveryStatusCompleted
		d.CompletedAt = &now
		d.UpdatedAt = now
		if err := purchaseRepo.UpdateDelivery(d); err != nil {
			return err
		}

		applyAggregates(p, d)
		p.UpdatedAt = now
		if err := purchaseRepo.Update(p); err != nil {
			return err
		}
		purchase, delivery = p, d
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor, "purchase", entity.ActivityActionComplete, purchase.ID, purchase.Number,
		fmt.Sprintf("entrega completada en compra %s", purchase.Number),
		map[string]any{"delivery_id": delivery.ID, "status": purchase.Status, "total_delivered": purchase.TotalDelivered})
	return purchase, nil
}

// Cancel marca la entrega como cancelada con una razón. No toca stock (una
// entrega no completada nunca sumó) y recalcula los agregados del padre.
func (uc *DeliveryUseCase) Cancel(ctx context.Context, actor audit.Actor, deliveryID, reason string) (*entity.Purchase, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var purchase *entity.Purchase

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
		p, err := purchaseRepo.GetForUpdate(d.PurchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		// Mismo cuidado que en Complete: revalida contra la copia fresca
		// cargada bajo el candado, no contra la lectura previa.
		d = deliveryOf(p, deliveryID)
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status != entity.DeliveryStatusPending && d.Status != entity.DeliveryStatusInTransit {
			return fmt.Errorf("%w: la entrega está %s", domain.ErrConflict, d.Status)
		}

		now := time.Now()
		d.Status = entity.DeliveryStatusCancelled
		d.CancelReason = reason
		d.UpdatedAt = now
		if err := purchaseRepo.UpdateDelivery(d); err != nil {
			return err
		}

		applyAggregates(p, d)
		p.UpdatedAt = now
		if err := purchaseRepo.Update(p); err != nil {
			return err
		}
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor, "purchase", entity.ActivityActionCancel, purchase.ID, purchase.Number,
		fmt.Sprintf("entrega cancelada en compra %s: %s", purchase.Number, reason),
		map[string]any{"delivery_id": deliveryID, "reason": reason})
	return purchase, nil
}

// deliveryOf busca la entrega dentro de la compra cargada bajo candado.
func deliveryOf(p *entity.Purchase, deliveryID string) *entity.Delivery {
	for i := range p.Deliveries {
		if p.Deliveries[i].ID == deliveryID {
			return &p.Deliveries[i]
		}
	}
	return nil
}

// applyAggregates reemplaza la entrega mutada dentro del padre y aplica el
// recálculo puro sobre el conjunto resultante.
func applyAggregates(p *entity.Purchase, changed *entity.Delivery) {
	deliveries := make([]*entity.Delivery, 0, len(p.Deliveries))
	replaced := false
	for i := range p.Deliveries {
		if p.Deliveries[i].ID == changed.ID {
			deliveries = append(deliveries, changed)
			replaced = true
			continue
		}
		deliveries = append(deliveries, &p.Deliveries[i])
	}
	if !replaced {
		deliveries = append(deliveries, changed)
	}
	agg := RecomputePurchaseAggregates(p, deliveries)
	p.TotalOrdered = agg.TotalOrdered
	p.TotalDelivered = agg.TotalDelivered
	p.TotalPending = agg.TotalPending
	p.Status = agg.Status
}
