// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopByDefault(t *testing.T) {
	// before initialization every meter is a harmless no-op
	c := Counter("test_noop_count")
	assert.NotNil(t, c)
	c.Add(1)

	g := Gauge("test_noop_gauge")
	g.Set(42)

	assert.Nil(t, HTTPHandler())
}

func TestLazyLoad(t *testing.T) {
	calls := 0
	load := LazyLoad(func() int {
		calls++
		return 7
	})

	assert.Equal(t, 0, calls)
	assert.Equal(t, 7, load())
	assert.Equal(t, 7, load())
	assert.Equal(t, 1, calls)
}

func TestPrometheusMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	// installing twice must not reset the service
	InitializePrometheusMetrics()

	Counter("test_prom_count").Add(3)
	Gauge("test_prom_gauge").Set(9)
	CounterVec("test_prom_count_vec", []string{"reason"}).
		AddWithLabel(1, map[string]string{"reason": "x"})
	GaugeVec("test_prom_gauge_vec", []string{"kind"}).
		SetWithLabel(5, map[string]string{"kind": "y"})

	// the same name resolves to the same meter
	assert.Equal(t, Counter("test_prom_count"), Counter("test_prom_count"))

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	assert.Nil(t, err)
	assert.True(t, strings.Contains(string(body), "act_metrics_test_prom_count 3"))
	assert.True(t, strings.Contains(string(body), "act_metrics_test_prom_gauge 9"))
}
