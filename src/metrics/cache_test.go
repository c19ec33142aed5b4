package metrics

import (
	"strings"
	"testing"

	"github.com/enzococca/pyarchinit-webapp/src/cache"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCacheCollectorReadsStatsAtScrape(t *testing.T) {
	size := 3
	c := NewCacheCollector(func() map[string]cache.Stats {
		return map[string]cache.Stats{
			"thumbnail": {Size: size, MaxSize: 10, Evictions: 4},
			"full":      {MaxSize: 5},
		}
	})

	if n := testutil.CollectAndCount(c); n != 6 {
		t.Fatalf("collected %d series, want 6", n)
	}

	size = 1
	want := `
# HELP pyarchinit_media_cache_entries Live entries per media cache
# TYPE pyarchinit_media_cache_entries gauge
pyarchinit_media_cache_entries{cache="full"} 0
pyarchinit_media_cache_entries{cache="thumbnail"} 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(want), "pyarchinit_media_cache_entries"); err != nil {
		t.Error(err)
	}
}
