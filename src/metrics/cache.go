package metrics

import (
	"sort"

	"github.com/enzococca/pyarchinit-webapp/src/cache"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheEntriesDesc = prometheus.NewDesc(
		"pyarchinit_media_cache_entries",
		"Live entries per media cache",
		[]string{"cache"}, nil,
	)
	cacheCapacityDesc = prometheus.NewDesc(
		"pyarchinit_media_cache_capacity",
		"Maximum entries per media cache",
		[]string{"cache"}, nil,
	)
	cacheEvictionsDesc = prometheus.NewDesc(
		"pyarchinit_media_cache_evictions_total",
		"Entries dropped from a media cache",
		[]string{"cache"}, nil,
	)
)

// CacheCollector reads cache statistics when /metrics is scraped, so entries
// that expire between requests are not reported.
type CacheCollector struct {
	stats func() map[string]cache.Stats
}

// NewCacheCollector returns a collector over the named caches reported by stats.
func NewCacheCollector(stats func() map[string]cache.Stats) *CacheCollector {
	return &CacheCollector{stats: stats}
}

func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cacheEntriesDesc
	ch <- cacheCapacityDesc
	ch <- cacheEvictionsDesc
}

func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	all := c.stats()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := all[name]
		ch <- prometheus.MustNewConstMetric(cacheEntriesDesc, prometheus.GaugeValue, float64(st.Size), name)
		ch <- prometheus.MustNewConstMetric(cacheCapacityDesc, prometheus.GaugeValue, float64(st.MaxSize), name)
		ch <- prometheus.MustNewConstMetric(cacheEvictionsDesc, prometheus.CounterValue, float64(st.Evictions), name)
	}
}
