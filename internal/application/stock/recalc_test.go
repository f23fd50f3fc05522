package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jcastillo/AgroStock-api/internal/application/stock"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func purchaseWithItems(qtys ...int64) *entity.Purchase {
	p := &entity.Purchase{Status: entity.PurchaseStatusApproved}
	for i, q := range qtys {
		p.Items = append(p.Items, entity.PurchaseItem{ProductID: string(rune('a' + i)), Quantity: d(q)})
	}
	return p
}

func completedDelivery(received ...int64) *entity.Delivery {
	dl := &entity.Delivery{Status: entity.DeliveryStatusCompleted}
	for i, q := range received {
		dl.Items = append(dl.Items, entity.DeliveryItem{ProductID: string(rune('a' + i)), QuantityReceived: d(q)})
	}
	return dl
}

func TestRecompute_SinEntregas_QuedaApproved(t *testing.T) {
	p := purchaseWithItems(100)
	agg := stock.RecomputePurchaseAggregates(p, nil)

	assert.True(t, agg.TotalOrdered.Equal(d(100)))
	assert.True(t, agg.TotalDelivered.IsZero())
	assert.True(t, agg.TotalPending.Equal(d(100)))
	assert.Equal(t, entity.PurchaseStatusApproved, agg.Status)
}

func TestRecompute_EntregaParcial(t *testing.T) {
	p := purchaseWithItems(100)
	agg := stock.RecomputePurchaseAggregates(p, []*entity.Delivery{completedDelivery(40)})

	assert.True(t, agg.TotalDelivered.Equal(d(40)))
	assert.True(t, agg.TotalPending.Equal(d(60)))
	assert.Equal(t, entity.PurchaseStatusPartial, agg.Status)
}

func TestRecompute_EntregaTotal_Completa(t *testing.T) {
	// Escenario: compra de 100, una entrega recibida por 100.
	p := purchaseWithItems(100)
	agg := stock.RecomputePurchaseAggregates(p, []*entity.Delivery{completedDelivery(100)})

	assert.Equal(t, entity.PurchaseStatusCompleted, agg.Status)
	assert.True(t, agg.TotalDelivered.Equal(d(100)))
	assert.True(t, agg.TotalPending.IsZero())
}

func TestRecompute_EntregasNoCompletadasNoAportan(t *testing.T) {
	p := purchaseWithItems(100)
	pending := &entity.Delivery{Status: entity.DeliveryStatusPending,
		Items: []entity.DeliveryItem{{ProductID: "a", Quantity: d(30)}}}
	transit := &entity.Delivery{Status: entity.DeliveryStatusInTransit,
		Items: []entity.DeliveryItem{{ProductID: "a", Quantity: d(30)}}}
	cancelled := &entity.Delivery{Status: entity.DeliveryStatusCancelled,
		Items: []entity.DeliveryItem{{ProductID: "a", Quantity: d(30), QuantityReceived: d(30)}}}

	agg := stock.RecomputePurchaseAggregates(p, []*entity.Delivery{pending, transit, cancelled})

	assert.True(t, agg.TotalDelivered.IsZero())
	assert.Equal(t, entity.PurchaseStatusApproved, agg.Status)
}

func TestRecompute_InvarianteDeliveredMasPendingIgualOrdered(t *testing.T) {
	// Secuencias arbitrarias de entregas completadas/canceladas conservan
	// TotalDelivered + TotalPending == TotalOrdered.
	p := purchaseWithItems(50, 70) // 120 pedidas
	seqs := [][]*entity.Delivery{
		{completedDelivery(10)},
		{completedDelivery(10), completedDelivery(0, 70)},
		{completedDelivery(50, 70)},
		{{Status: entity.DeliveryStatusCancelled}, completedDelivery(25, 35)},
	}
	for _, deliveries := range seqs {
		agg := stock.RecomputePurchaseAggregates(p, deliveries)
		assert.True(t, agg.TotalDelivered.Add(agg.TotalPending).Equal(agg.TotalOrdered),
			"delivered %s + pending %s debe igualar ordered %s",
			agg.TotalDelivered, agg.TotalPending, agg.TotalOrdered)
	}
}

func TestRecompute_SobreEntrega_NoDejaPendienteNegativo(t *testing.T) {
	p := purchaseWithItems(100)
	agg := stock.RecomputePurchaseAggregates(p, []*entity.Delivery{completedDelivery(120)})

	assert.True(t, agg.TotalPending.IsZero())
	assert.Equal(t, entity.PurchaseStatusCompleted, agg.Status)
}

func TestRecompute_CompraCancelada_ConservaEstado(t *testing.T) {
	p := purchaseWithItems(100)
	p.Status = entity.PurchaseStatusCancelled
	agg := stock.RecomputePurchaseAggregates(p, []*entity.Delivery{completedDelivery(40)})

	assert.Equal(t, entity.PurchaseStatusCancelled, agg.Status)
}
