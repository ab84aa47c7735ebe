package metrics

import (
	"time"

	"github.com/terraincognita07/healthbook/internal/storage"
)

type instrumentedKV struct {
	next    storage.KV
	metrics *Metrics
}

// InstrumentKV records count and latency for every call that reaches next.
func InstrumentKV(next storage.KV, metrics *Metrics) storage.KV {
	if metrics == nil {
		return next
	}
	return &instrumentedKV{next: next, metrics: metrics}
}

func (kv *instrumentedKV) Get(key string) ([]byte, bool, error) {
	started := time.Now()
	value, found, err := kv.next.Get(key)
	kv.observe("get", started, err)
	return value, found, err
}

func (kv *instrumentedKV) Set(key string, value []byte) error {
	started := time.Now()
	err := kv.next.Set(key, value)
	kv.observe("set", started, err)
	return err
}

func (kv *instrumentedKV) Delete(key string) error {
	started := time.Now()
	err := kv.next.Delete(key)
	kv.observe("delete", started, err)
	return err
}

func (kv *instrumentedKV) observe(operation string, started time.Time, err error) {
	kv.metrics.StorageOperations.WithLabelValues(operation, StatusFor(err)).Inc()
	kv.metrics.StorageLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
