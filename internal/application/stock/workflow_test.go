package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastillo/AgroStock-api/internal/application/stock"
	"github.com/jcastillo/AgroStock-api/internal/domain"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
)

func product(id, name, warehouseID string, stockQty int64) *entity.Product {
	return &entity.Product{ID: id, SKU: "SKU-" + id, Name: name, WarehouseID: warehouseID, Stock: decimal.NewFromInt(stockQty), Unit: "kg"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Egresos con descuento de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestExpense_DescuentaStockYCreaEgreso(t *testing.T) {
	env := newTestEnv(product("p1", "Urea", "W1", 10))

	exp, err := env.expenseUC.Create(context.Background(), testActor, expenseInput("p1", 4, 150))
	require.NoError(t, err)

	assert.True(t, env.products.products["p1"].Stock.Equal(d(6)), "el stock debe bajar de 10 a 6")
	assert.True(t, exp.Amount.Equal(d(600)), "monto = cantidad * precio unitario")
	assert.Regexp(t, `^GTO-\d{6}-\d{4}$`, exp.Number)
	require.Len(t, env.expenses.expenses, 1)
	require.Len(t, env.activities.activities, 1, "todo workflow exitoso deja una actividad")
	assert.Equal(t, "u1", env.activities.activities[0].UserID)
}

func TestExpense_StockInsuficiente_NoCreaNada(t *testing.T) {
	// Escenario: vender 5 con stock 3 falla y no persiste nada.
	env := newTestEnv(product("p1", "Glifosato", "W1", 3))

	_, err := env.expenseUC.Create(context.Background(), testActor, expenseInput("p1", 5, 100))

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Glifosato", "el error debe nombrar el producto ofensor")
	assert.True(t, env.products.products["p1"].Stock.Equal(d(3)), "el stock no debe cambiar")
	assert.Empty(t, env.expenses.expenses, "no debe crearse el egreso")
	assert.Empty(t, env.activities.activities)
}

func TestExpense_ProductoInexistente(t *testing.T) {
	env := newTestEnv()
	_, err := env.expenseUC.Create(context.Background(), testActor, expenseInput("nope", 1, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpense_Misc_NoTocaStock(t *testing.T) {
	env := newTestEnv(product("p1", "Urea", "W1", 10))

	exp, err := env.expenseUC.Create(context.Background(), testActor, miscInput("combustible tractor", 5000))
	require.NoError(t, err)

	assert.True(t, env.products.products["p1"].Stock.Equal(d(10)))
	assert.True(t, exp.Amount.Equal(d(5000)))
}

func TestExpense_EntradaInvalida(t *testing.T) {
	env := newTestEnv()
	cases := []struct {
		name string
		in   func() (string, int64, int64)
	}{
		{"cantidad cero", func() (string, int64, int64) { return "p1", 0, 10 }},
		{"sin producto", func() (string, int64, int64) { return "", 5, 10 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pid, q, pu := tc.in()
			_, err := env.expenseUC.Create(context.Background(), testActor, expenseInput(pid, q, pu))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entregas de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestDeliveryComplete_SumaStockYCompletaCompra(t *testing.T) {
	// Escenario: compra de 100 de p1, entrega recibida por 100 →
	// compra completed, delivered=100, pending=0, stock de p1 +100.
	env := newTestEnv(product("p1", "Semilla maíz", "W0", 0))
	seedPurchase(env, "c1", "d1", "W1", line("p1", 100))

	p, err := env.deliveryUC.Complete(context.Background(), testActor, "d1", nil)
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusCompleted, p.Status)
	assert.True(t, p.TotalDelivered.Equal(d(100)))
	assert.True(t, p.TotalPending.IsZero())
	prod := env.products.products["p1"]
	assert.True(t, prod.Stock.Equal(d(100)), "el stock debe subir en lo recibido")
	assert.Equal(t, "W1", prod.WarehouseID, "el producto queda en la bodega destino de la entrega")
}

func TestDeliveryComplete_CantidadRecibidaDistinta(t *testing.T) {
	env := newTestEnv(product("p1", "Semilla maíz", "W1", 0))
	seedPurchase(env, "c1", "d1", "W1", line("p1", 100))

	p, err := env.deliveryUC.Complete(context.Background(), testActor, "d1",
		map[string]decimal.Decimal{"p1": d(60)})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusPartial, p.Status)
	assert.True(t, p.TotalDelivered.Equal(d(60)))
	assert.True(t, p.TotalPending.Equal(d(40)))
	assert.True(t, env.products.products["p1"].Stock.Equal(d(60)))
}

func TestDeliveryComplete_Idempotencia_SegundaVezFalla(t *testing.T) {
	env := newTestEnv(product("p1", "Semilla maíz", "W1", 0))
	seedPurchase(env, "c1", "d1", "W1", line("p1", 100))

	_, err := env.deliveryUC.Complete(context.Background(), testActor, "d1", nil)
	require.NoError(t, err)

	_, err = env.deliveryUC.Complete(context.Background(), testActor, "d1", nil)
	require.ErrorIs(t, err, domain.ErrConflict, "completar dos veces debe fallar la precondición")
	assert.True(t, env.products.products["p1"].Stock.Equal(d(100)),
		"el stock no debe sumarse dos veces")
}

func TestDeliveryComplete_LecturaObsoleta_NoDuplicaStock(t *testing.T) {
	// Dos completados concurrentes sobre la misma entrega: el segundo leyó
	// la entrega como pending antes de que el primero commiteara y recién
	// después obtiene el candado de la compra. Debe revalidar el estado
	// bajo el candado y fallar, no sumar stock otra vez.
	env := newTestEnv(product("p1", "Semilla maíz", "W1", 0))
	seedPurchase(env, "c1", "d1", "W1", line("p1", 100))
	stale := *env.purchases.deliveries["d1"] // instantánea aún pending

	_, err := env.deliveryUC.Complete(context.Background(), testActor, "d1", nil)
	require.NoError(t, err)
	require.True(t, env.products.products["p1"].Stock.Equal(d(100)))

	uc := env.deliveryUCWithStaleRead(&stale)
	_, err = uc.Complete(context.Background(), testActor, "d1", nil)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, env.products.products["p1"].Stock.Equal(d(100)),
		"el stock no debe duplicarse; la lectura obsoleta no manda")
}

func TestDeliveryCancel_LecturaObsoleta_NoCancelaCompletada(t *testing.T) {
	// Misma carrera con un Cancel rezagado: la entrega ya se completó y el
	// Cancel que la leyó como pending no debe descompletarla ni
	// desincronizar los agregados del stock ya sumado.
	env := newTestEnv(product("p1", "Semilla maíz", "W1", 0))
	seedPurchase(env, "c1", "d1", "W1", line("p1", 100))
	stale := *env.purchases.deliveries["d1"]

	_, err := env.deliveryUC.Complete(context.Background(), testActor, "d1", nil)
	require.NoError(t, err)

	uc := env.deliveryUCWithStaleRead(&stale)
	_, err = uc.Cancel(context.Background(), testActor, "d1", "llegó dañada")
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.DeliveryStatusCompleted, env.purchases.deliveries["d1"].Status)
	assert.True(t, env.purchases.purchases["c1"].TotalDelivered.Equal(d(100)),
		"los agregados deben seguir reflejando el stock ya sumado")
}

func TestDeliveryComplete_CompraCancelada_Rechazada(t *testing.T) {
	env := newTestEnv(product("p1", "Semilla maíz", "W1", 0))
	seedPurchase(env, "c1", "d1", "W1", line("p1", 100))
	env.purchases.purchases["c1"].Status = entity.PurchaseStatusCancelled
	env.purchases.purchases["c1"].CancelReason = "proveedor quebrado"

	_, err := env.deliveryUC.Complete(context.Background(), testActor, "d1", nil)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, env.products.products["p1"].Stock.IsZero(),
		"una compra cancelada no debe recibir stock")
	assert.Equal(t, entity.DeliveryStatusPending, env.purchases.deliveries["d1"].Status)
}

func TestDeliveryComplete_EntregaInexistente(t *testing.T) {
	env := newTestEnv()
	_, err := env.deliveryUC.Complete(context.Background(), testActor, "nope", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeliveryCancel_NoTocaStockYRecalcula(t *testing.T) {
	env := newTestEnv(product("p1", "Semilla maíz", "W1", 0))
	seedPurchase(env, "c1", "d1", "W1", line("p1", 100))

	p, err := env.deliveryUC.Cancel(context.Background(), testActor, "d1", "proveedor sin stock")
	require.NoError(t, err)

	assert.True(t, env.products.products["p1"].Stock.IsZero(), "cancelar no toca stock")
	assert.True(t, p.TotalDelivered.IsZero())
	assert.True(t, p.TotalPending.Equal(d(100)))
	assert.Equal(t, entity.DeliveryStatusCancelled, env.purchases.deliveries["d1"].Status)
	assert.Equal(t, "proveedor sin stock", env.purchases.deliveries["d1"].CancelReason)
}

func TestDeliveryCancel_SinRazon_Rechazada(t *testing.T) {
	env := newTestEnv()
	_, err := env.deliveryUC.Cancel(context.Background(), testActor, "d1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelivery_SecuenciaParcialesConservaInvariante(t *testing.T) {
	env := newTestEnv(product("p1", "Semilla maíz", "W1", 0))
	seedPurchase(env, "c1", "d1", "W1", line("p1", 100))
	seedDelivery(env, "c1", "d2", "W1", line("p1", 100))
	seedDelivery(env, "c1", "d3", "W1", line("p1", 100))

	p, err := env.deliveryUC.Complete(context.Background(), testActor, "d1",
		map[string]decimal.Decimal{"p1": d(30)})
	require.NoError(t, err)
	assert.True(t, p.TotalDelivered.Add(p.TotalPending).Equal(p.TotalOrdered))

	p, err = env.deliveryUC.Cancel(context.Background(), testActor, "d2", "duplicada")
	require.NoError(t, err)
	assert.True(t, p.TotalDelivered.Add(p.TotalPending).Equal(p.TotalOrdered))

	p, err = env.deliveryUC.Complete(context.Background(), testActor, "d3",
		map[string]decimal.Decimal{"p1": d(70)})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCompleted, p.Status)
	assert.True(t, p.TotalDelivered.Equal(d(100)))
	assert.True(t, p.TotalPending.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Transferencias: envío y recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_ShipYReceive(t *testing.T) {
	// Escenario: p1 con stock 20 en W1, transferencia de 20 a W2 →
	// ship deja stock 0; receive deja stock 20 y bodega W2.
	env := newTestEnv(product("p1", "Gasoil", "W1", 20))
	seedTransfer(env, "t1", "W1", "W2", entity.TransferStatusApproved, tline("p1", 20))

	tr, err := env.transferUC.Ship(context.Background(), testActor, "t1")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusShipped, tr.Status)
	require.NotNil(t, tr.ShippedAt)
	assert.True(t, env.products.products["p1"].Stock.IsZero(), "ship descuenta el stock de origen")

	tr, err = env.transferUC.Receive(context.Background(), testActor, "t1", nil)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, tr.Status)
	prod := env.products.products["p1"]
	assert.True(t, prod.Stock.Equal(d(20)), "receive suma lo enviado en destino")
	assert.Equal(t, "W2", prod.WarehouseID, "el producto queda en la bodega destino")
}

func TestTransfer_Receive_ConCantidadRecibidaOverride(t *testing.T) {
	env := newTestEnv(product("p1", "Gasoil", "W1", 20))
	seedTransfer(env, "t1", "W1", "W2", entity.TransferStatusApproved, tline("p1", 20))

	_, err := env.transferUC.Ship(context.Background(), testActor, "t1")
	require.NoError(t, err)

	tr, err := env.transferUC.Receive(context.Background(), testActor, "t1",
		map[string]decimal.Decimal{"p1": d(18)}) // merma en el camino
	require.NoError(t, err)

	assert.True(t, env.products.products["p1"].Stock.Equal(d(18)))
	require.NotNil(t, tr.Items[0].QuantityReceived)
	assert.True(t, tr.Items[0].QuantityReceived.Equal(d(18)))
}

func TestTransfer_Ship_StockInsuficiente_AbortaTodo(t *testing.T) {
	// Dos líneas: la segunda sin stock. No debe descontarse ninguna.
	env := newTestEnv(
		product("p1", "Gasoil", "W1", 50),
		product("p2", "Aceite", "W1", 2),
	)
	seedTransfer(env, "t1", "W1", "W2", entity.TransferStatusApproved,
		tline("p1", 10), tline("p2", 5))

	_, err := env.transferUC.Ship(context.Background(), testActor, "t1")

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Aceite", "debe nombrar el producto ofensor")
	assert.True(t, env.products.products["p1"].Stock.Equal(d(50)), "ninguna línea debe descontarse")
	assert.True(t, env.products.products["p2"].Stock.Equal(d(2)))
	assert.Equal(t, entity.TransferStatusApproved, env.transfers.transfers["t1"].Status)
}

func TestTransfer_ReceiveAntesDeShip_Rechazada(t *testing.T) {
	env := newTestEnv(product("p1", "Gasoil", "W1", 20))
	seedTransfer(env, "t1", "W1", "W2", entity.TransferStatusApproved, tline("p1", 20))

	_, err := env.transferUC.Receive(context.Background(), testActor, "t1", nil)

	require.ErrorIs(t, err, domain.ErrConflict, "recibir antes de enviar falla la precondición")
	assert.True(t, env.products.products["p1"].Stock.Equal(d(20)))
}

func TestTransfer_Ship_SinAprobar_Rechazada(t *testing.T) {
	env := newTestEnv(product("p1", "Gasoil", "W1", 20))
	seedTransfer(env, "t1", "W1", "W2", entity.TransferStatusPending, tline("p1", 20))

	_, err := env.transferUC.Ship(context.Background(), testActor, "t1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransfer_Ship_ProductoEnOtraBodega_Rechazado(t *testing.T) {
	env := newTestEnv(product("p1", "Gasoil", "W9", 20))
	seedTransfer(env, "t1", "W1", "W2", entity.TransferStatusApproved, tline("p1", 20))

	_, err := env.transferUC.Ship(context.Background(), testActor, "t1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func expenseInput(productID string, qty, unitPrice int64) stock.ExpenseInput {
	return stock.ExpenseInput{
		Type:      entity.ExpenseTypeProduct,
		ProductID: productID,
		Quantity:  d(qty),
		UnitPrice: d(unitPrice),
	}
}

func miscInput(description string, amount int64) stock.ExpenseInput {
	return stock.ExpenseInput{
		Type:        entity.ExpenseTypeMisc,
		Description: description,
		Amount:      d(amount),
	}
}

func line(productID string, qty int64) entity.PurchaseItem {
	return entity.PurchaseItem{ProductID: productID, Quantity: d(qty), UnitPrice: d(1)}
}

func tline(productID string, qty int64) entity.TransferItem {
	return entity.TransferItem{ProductID: productID, Quantity: d(qty)}
}

// seedPurchase crea una compra aprobada con una entrega pendiente que anuncia
// las mismas líneas pedidas.
func seedPurchase(env *testEnv, purchaseID, deliveryID, warehouseID string, items ...entity.PurchaseItem) {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Quantity)
	}
	env.purchases.purchases[purchaseID] = &entity.Purchase{
		ID:           purchaseID,
		Number:       "COM-202608-0001",
		Supplier:     "Agroinsumos SA",
		Items:        items,
		TotalOrdered: total,
		TotalPending: total,
		Status:       entity.PurchaseStatusApproved,
	}
	seedDelivery(env, purchaseID, deliveryID, warehouseID, items...)
}

func seedDelivery(env *testEnv, purchaseID, deliveryID, warehouseID string, items ...entity.PurchaseItem) {
	d := &entity.Delivery{
		ID:          deliveryID,
		PurchaseID:  purchaseID,
		WarehouseID: warehouseID,
		Status:      entity.DeliveryStatusPending,
	}
	for _, it := range items {
		d.Items = append(d.Items, entity.DeliveryItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	env.purchases.deliveries[deliveryID] = d
}

func seedTransfer(env *testEnv, id, source, target, status string, items ...entity.TransferItem) {
	env.transfers.transfers[id] = &entity.Transfer{
		ID:                id,
		Number:            "TRF-202608-0001",
		SourceWarehouseID: source,
		TargetWarehouseID: target,
		Items:             items,
		Status:            status,
	}
}
