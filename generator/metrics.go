package generator

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zkrollup/fixturegen/metrics"
)

const subsystem = "generator"

var (
	blocksBuilt = metrics.NewCounter(
		"blocks",
		subsystem,
		"blocks built by type and validity",
		[]string{"type", "valid"},
	)
	withdrawalsSampled = metrics.NewCounter(
		"withdrawals",
		subsystem,
		"withdrawals sampled",
		[]string{},
	).WithLabelValues()
	lastBlockNumber = metrics.NewGauge(
		"last_block_number",
		subsystem,
		"number of the last block built",
		[]string{},
	).WithLabelValues()
	runDuration = metrics.NewHistogramWithBuckets(
		"run_duration_seconds",
		subsystem,
		"duration of a generation run",
		[]string{"run"},
		prometheus.ExponentialBuckets(0.01, 2, 12),
	)
)

func blockType(isRegistrationBlock bool) string {
	if isRegistrationBlock {
		return "registration"
	}
	return "transfer"
}
