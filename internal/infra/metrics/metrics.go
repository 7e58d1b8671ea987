package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "depthbot_venue_fetch_total",
		Help: "Запросы ликвидности по площадкам",
	}, []string{"venue"})
	FetchEmptyTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "depthbot_venue_fetch_empty_total",
		Help: "Запросы, не давшие ни одной кривой",
	}, []string{"venue"})
	FetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "depthbot_venue_fetch_seconds",
		Help:    "Длительность опроса площадки",
		Buckets: prometheus.DefBuckets,
	})
	ChainBatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "depthbot_chain_batch_size",
		Help:    "Число вызовов в одном пакетном eth_call",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
)

func Init() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		FetchTotal, FetchEmptyTotal, FetchDuration, ChainBatchSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		_ = reg.Register(c)
	}
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
