package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmitDuration 贡献提交耗时
	SubmitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "ledger_submit_duration_seconds",
			Help: "Duration of contribution submit requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
			},
		},
		[]string{"status"}, // success or failure
	)

	// SubmitRejections 被拒绝的贡献提交，按原因分类
	SubmitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_submit_rejections_total",
			Help: "Total number of rejected contribution submissions by reason",
		},
		[]string{"reason"},
	)

	// TallyMismatch 计票与账本不一致的活动数（审计任务维护）
	TallyMismatch = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_tally_mismatch_campaigns",
			Help: "Number of campaigns whose option tallies disagree with the contribution log",
		},
	)
)

// RecordSubmitDuration 记录贡献提交耗时
func RecordSubmitDuration(status string, duration float64) {
	SubmitDuration.WithLabelValues(status).Observe(duration)
}

// RecordSubmitRejection 记录被拒绝的贡献提交
func RecordSubmitRejection(reason string) {
	SubmitRejections.WithLabelValues(reason).Inc()
}
