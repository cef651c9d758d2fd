package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// WriteToTextfile writes the registry in the text exposition format, for the
// node exporter textfile collector.
func WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

// Push sends the registry to a pushgateway under job "fixturegen".
func Push(ctx context.Context, url string, grouping map[string]string) error {
	pusher := push.New(url, Namespace).Gatherer(Registry)
	for k, v := range grouping {
		pusher = pusher.Grouping(k, v)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
