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

// TransferUseCase ejecuta el envío y la recepción de transferencias entre
// bodegas. El ciclo es lineal y sin marcha atrás: una vez enviada (stock de
// origen descontado) la única transición posible es completed.
type TransferUseCase struct {
	txRunner TxRunner
	recorder *audit.Recorder
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, recorder *audit.Recorder) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, recorder: recorder}
}

// Ship descuenta el stock de origen de todas las líneas y marca la
// transferencia como shipped, atómicamente. Precondición: status approved.
// Si alguna línea no tiene stock suficiente se aborta el envío completo con
// domain.ErrInsufficientStock nombrando el producto ofensor; ninguna línea
// queda descontada.
func (uc *TransferUseCase) Ship(ctx context.Context, actor audit.Actor, transferID string) (*entity.Transfer, error) {
	var transfer *entity.Transfer

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		transferRepo repository.TransferRepository,
		_ repository.ExpenseRepository,
		_ repository.FolioRepository,
	) error {
		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status != entity.TransferStatusApproved {
			return fmt.Errorf("%w: la transferencia está %s, debe estar approved", domain.ErrConflict, t.Status)
		}

		// Primera pasada: bloquear y validar todas las líneas antes de
		// escribir. Un faltante en cualquiera aborta el envío entero.
		products := make([]*entity.Product, len(t.Items))
		for i, it := range t.Items {
			product, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.WarehouseID != t.SourceWarehouseID {
				return fmt.Errorf("%w: %s no pertenece a la bodega origen", domain.ErrConflict, product.Name)
			}
			if product.Stock.LessThan(it.Quantity) {
				return fmt.Errorf("%w: %s (disponible %s, a enviar %s)",
					domain.ErrInsufficientStock, product.Name, product.Stock, it.Quantity)
			}
			products[i] = product
		}

		for i, it := range t.Items {
			if err := productRepo.UpdateStock(products[i].ID, products[i].Stock.Sub(it.Quantity)); err != nil {
				return err
			}
		}

		now := time.Now()
		t.Status = entity.TransferStatusShipped
		t.ShippedAt = &now
		t.UpdatedAt = now
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor, "transfer", entity.ActivityActionShip, transfer.ID, transfer.Number,
		fmt.Sprintf("transferencia %s enviada", transfer.Number),
		map[string]any{"source": transfer.SourceWarehouseID, "target": transfer.TargetWarehouseID, "items": len(transfer.Items)})
	return transfer, nil
}

// Receive suma el stock recibido en destino y reasigna cada producto a la
// bodega destino; marca la transferencia como completed. Precondición:
// status shipped (recibir antes de enviar se rechaza). received trae
// cantidades efectivamente recibidas por producto; un producto ausente
// recibe la cantidad enviada. No hay chequeo de suficiencia: es una suma.
func (uc *TransferUseCase) Receive(ctx context.Context, actor audit.Actor, transferID string, received map[string]decimal.Decimal) (*entity.Transfer, error) {
	var transfer *entity.Transfer

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		transferRepo repository.TransferRepository,
		_ repository.ExpenseRepository,
		_ repository.FolioRepository,
	) error {
		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status != entity.TransferStatusShipped {
			return fmt.Errorf("%w: la transferencia está %s, debe estar shipped", domain.ErrConflict, t.Status)
		}

		for i := range t.Items {
			qty := t.Items[i].Quantity
			if override, ok := received[t.Items[i].ProductID]; ok {
				if override.IsNegative() {
					return domain.ErrInvalidInput
				}
				qty = override
			}
			recv := qty
			t.Items[i].QuantityReceived = &recv

			product, err := productRepo.GetForUpdate(t.Items[i].ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := productRepo.UpdateStockAndWarehouse(product.ID, product.Stock.Add(qty), t.TargetWarehouseID); err != nil {
				return err
			}
		}

		now := time.Now()
		t.Status = entity.TransferStatusCompleted
		t.CompletedAt = &now
		t.UpdatedAt = now
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor, "transfer", entity.ActivityActionReceive, transfer.ID, transfer.Number,
		fmt.Sprintf("transferencia %s recibida", transfer.Number),
		map[string]any{"target": transfer.TargetWarehouseID, "items": len(transfer.Items)})
	return transfer, nil
}
