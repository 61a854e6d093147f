// Package metrics 定义推荐引擎的 Prometheus 指标。
//
// 指标：
//   - artrec_queries_total{strategy}: 查询次数
//   - artrec_query_errors_total{strategy,code}: 查询错误（按 DomainError 代码）
//   - artrec_query_duration_seconds{strategy}: 查询耗时
//   - artrec_build_duration_seconds{stage}: 引擎构建各阶段耗时
//   - artrec_catalog_articles / artrec_matrix_users: 构建后的规模
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 策略名，与召回源 Label 保持一致
const (
	StrategyTop      = "top"
	StrategyUserUser = "user_user"
	StrategySimilar  = "similar"
	StrategyContent  = "content"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artrec_queries_total",
			Help: "Total number of recommendation queries by strategy",
		},
		[]string{"strategy"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artrec_query_errors_total",
			Help: "Total number of failed recommendation queries",
		},
		[]string{"strategy", "code"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artrec_query_duration_seconds",
			Help:    "Recommendation query latency in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"strategy"},
	)

	BuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artrec_build_duration_seconds",
			Help:    "Engine build duration by stage",
			Buckets: []float64{.001, .01, .1, .5, 1, 5, 10, 30, 60},
		},
		[]string{"stage"},
	)

	CatalogArticles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "artrec_catalog_articles",
		Help: "Number of distinct articles in the similarity index",
	})

	MatrixUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "artrec_matrix_users",
		Help: "Number of users in the user-item matrix",
	})
)

// ObserveQuery 记录一次查询；code 为空表示成功。
func ObserveQuery(strategy string, start time.Time, code string) {
	QueriesTotal.WithLabelValues(strategy).Inc()
	QueryDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	if code != "" {
		QueryErrors.WithLabelValues(strategy, code).Inc()
	}
}

// ObserveBuild 记录构建阶段耗时。
func ObserveBuild(stage string, start time.Time) {
	BuildDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
