// Package metrics expone los contadores Prometheus de la aplicación.
// Se registran vía promauto en el registro global; el endpoint /metrics
// lo sirve el servidor de monitoreo aparte del API principal.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsTotal asientos del libro aplicados, por tipo de evento.
	MovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bodega",
		Name:      "ledger_movements_total",
		Help:      "Asientos del libro de inventario aplicados, por tipo de evento.",
	}, []string{"event_type"})

	// ReservationsTotal reservas de salida completadas con éxito.
	ReservationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bodega",
		Name:      "reservations_total",
		Help:      "Reservas de orden de salida completadas.",
	})

	// BillingEventsTotal eventos facturables insertados (sin duplicados).
	BillingEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bodega",
		Name:      "billing_events_total",
		Help:      "Eventos facturables nuevos registrados, por tipo.",
	}, []string{"event_type"})
)
