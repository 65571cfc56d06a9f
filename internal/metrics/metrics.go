// Package metrics は完了処理・レベル遷移・ポイント履歴の Prometheus カウンタ。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "learning_tracker"

var (
	// completions は完了・取り消しの結果
	// Labels: action (complete, uncomplete), result (applied, noop, error)
	completions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completions_total",
		Help:      "Course completion transactions by action and result",
	}, []string{"action", "result"})

	// levelTransitions はレベルが変わった回数
	// Labels: direction (up, down)
	levelTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "level_transitions_total",
		Help:      "Level changes caused by point changes or threshold updates",
	}, []string{"direction"})

	ledgerEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_entries_total",
		Help:      "Points log entries appended by reason",
	}, []string{"reason"})

	invariantViolations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invariant_violations_total",
		Help:      "Rejected operations that would have broken the points ledger",
	})

	thresholdCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "threshold_cache_lookups_total",
		Help:      "Level threshold cache lookups by outcome",
	}, []string{"outcome"})
)

const (
	ActionComplete   = "complete"
	ActionUncomplete = "uncomplete"

	ResultApplied = "applied"
	ResultNoop    = "noop"
	ResultError   = "error"
)

func RecordCompletion(action, result string) {
	completions.WithLabelValues(action, result).Inc()
}

func RecordLevelTransition(direction string) {
	levelTransitions.WithLabelValues(direction).Inc()
}

func RecordLedgerEntry(reason string) {
	ledgerEntries.WithLabelValues(reason).Inc()
}

func RecordInvariantViolation() {
	invariantViolations.Inc()
}

// RecordThresholdCache の outcome は hit, miss, error
func RecordThresholdCache(outcome string) {
	thresholdCacheLookups.WithLabelValues(outcome).Inc()
}
