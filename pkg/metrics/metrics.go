package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Métricas del ledger de ventas.
var (
	salesCommitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "farmacia_sales_committed_total",
		Help: "Ventas confirmadas (descuento de stock + registro de venta).",
	})

	salesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmacia_sales_rejected_total",
			Help: "Commits de venta rechazados, por razón.",
		},
		[]string{"reason"},
	)

	ledgerInconsistencies = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "farmacia_ledger_inconsistencies_total",
		Help: "Fallos del append de venta tras descontar stock (revertidos).",
	})
)

// Init registra las métricas en el registro por defecto.
func Init() {
	prometheus.MustRegister(salesCommitted, salesRejected, ledgerInconsistencies)
}

// Handler expone el endpoint Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SaleCommitted cuenta una venta confirmada.
func SaleCommitted() { salesCommitted.Inc() }

// SaleRejected cuenta un rechazo con su razón (invalid_quantity,
// product_not_found, insufficient_stock, ledger_inconsistent).
func SaleRejected(reason string) { salesRejected.WithLabelValues(reason).Inc() }

// LedgerInconsistency cuenta un fallo de append revertido.
func LedgerInconsistency() { ledgerInconsistencies.Inc() }
