// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbuf

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "bbuf"

// metrics holds the optional Prometheus view of a buffer.
// A nil *metrics records nothing.
type metrics struct {
	produced   prometheus.Counter
	consumed   prometheus.Counter
	terminated prometheus.Counter
	occupancy  prometheus.Gauge
}

// newMetrics creates and registers buffer metrics with reg.
func newMetrics(reg prometheus.Registerer, strategy LockStrategy) (*metrics, error) {
	labels := prometheus.Labels{"lock": strategy.String()}
	m := &metrics{
		produced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "items_produced_total",
			ConstLabels: labels,
			Help:        "Total number of items written by producers",
		}),
		consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "items_consumed_total",
			ConstLabels: labels,
			Help:        "Total number of items removed by consumers",
		}),
		terminated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "terminations_total",
			ConstLabels: labels,
			Help:        "Total number of consumers that observed a termination sentinel",
		}),
		occupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "occupancy",
			ConstLabels: labels,
			Help:        "Current number of items in the ring",
		}),
	}

	for _, c := range []prometheus.Collector{m.produced, m.consumed, m.terminated, m.occupancy} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// recordProduce must be called with the guard held.
func (m *metrics) recordProduce(size int) {
	if m == nil {
		return
	}
	m.produced.Inc()
	m.occupancy.Set(float64(size))
}

// recordConsume must be called with the guard held.
func (m *metrics) recordConsume(size int) {
	if m == nil {
		return
	}
	m.consumed.Inc()
	m.occupancy.Set(float64(size))
}

func (m *metrics) recordTerminate() {
	if m == nil {
		return
	}
	m.terminated.Inc()
}
