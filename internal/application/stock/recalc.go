package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
)

// PurchaseAggregates campos derivados de una compra a partir de sus entregas.
type PurchaseAggregates struct {
	TotalOrdered   decimal.Decimal
	TotalDelivered decimal.Decimal
	TotalPending   decimal.Decimal
	Status         string
}

// RecomputePurchaseAggregates deriva los agregados de una compra desde sus
// entregas. Función pura, sin I/O: suma las cantidades recibidas de las
// entregas completadas (las pendientes, en tránsito o canceladas no aportan)
// y deriva el estado. Invariante: TotalDelivered + TotalPending ==
// TotalOrdered siempre; una sobre-entrega no deja pendiente negativo.
// Una compra cancelada conserva su estado aunque se recalcule.
func RecomputePurchaseAggregates(p *entity.Purchase, deliveries []*entity.Delivery) PurchaseAggregates {
	ordered := decimal.Zero
	for _, it := range p.Items {
		ordered = ordered.Add(it.Quantity)
	}

	delivered := decimal.Zero
	for _, d := range deliveries {
		if d.Status != entity.DeliveryStatusCompleted {
			continue
		}
		for _, it := range d.Items {
			delivered = delivered.Add(it.QuantityReceived)
		}
	}

	pending := ordered.Sub(delivered)
	if pending.IsNegative() {
		pending = decimal.Zero
	}

	agg := PurchaseAggregates{
		TotalOrdered:   ordered,
		TotalDelivered: delivered,
		TotalPending:   pending,
	}

	switch {
	case p.Status == entity.PurchaseStatusCancelled:
		agg.Status = entity.PurchaseStatusCancelled
	case ordered.IsPositive() && delivered.GreaterThanOrEqual(ordered):
		agg.Status = entity.PurchaseStatusCompleted
	case delivered.IsPositive():
		agg.Status = entity.PurchaseStatusPartial
	default:
		agg.Status = entity.PurchaseStatusApproved
	}
	return agg
}
