package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "shoptodo"

// ShopMetrics counts domain events emitted by the shop state machine.
type ShopMetrics struct {
	cartMutations *prometheus.CounterVec
	ordersPlaced  prometheus.Counter
	orderRevenue  prometheus.Counter
	checkoutSteps *prometheus.CounterVec
	degraded      prometheus.Gauge
}

// NewShopMetrics registers the shop metrics on the provided registerer.
func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	if reg == nil {
		return &ShopMetrics{}
	}
	m := &ShopMetrics{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"op"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders created by checkout.",
		}),
		orderRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_revenue_yen_total",
			Help:      "Sum of order totals in yen.",
		}),
		checkoutSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_transitions_total",
			Help:      "Checkout workflow transitions by target step.",
		}, []string{"step"}),
		degraded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "persistence_degraded",
			Help:      "Number of persistence adapters currently writing to the in-memory fallback.",
		}),
	}
	reg.MustRegister(m.cartMutations, m.ordersPlaced, m.orderRevenue, m.checkoutSteps, m.degraded)
	return m
}

func (m *ShopMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObserveOrder counts a placed order and its total.
func (m *ShopMetrics) ObserveOrder(total int64) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
	if total > 0 {
		m.orderRevenue.Add(float64(total))
	}
}

func (m *ShopMetrics) IncCheckoutTransition(step string) {
	if m == nil || m.checkoutSteps == nil {
		return
	}
	m.checkoutSteps.WithLabelValues(normalizeLabel(step)).Inc()
}

func (m *ShopMetrics) MarkDegraded() {
	if m == nil || m.degraded == nil {
		return
	}
	m.degraded.Inc()
}

func (m *ShopMetrics) MarkRecovered() {
	if m == nil || m.degraded == nil {
		return
	}
	m.degraded.Dec()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
