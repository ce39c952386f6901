package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	requestTime  map[string]time.Duration
	errorCount   map[string]int64
	storeOpCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		requestTime:  make(map[string]time.Duration),
		errorCount:   make(map[string]int64),
		storeOpCount: make(map[string]int64),
	}
}

// RecordRequest increments the request counter and accumulates latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestTime[key] += duration
}

// RequestStats returns the call count and cumulative latency recorded
// for one path/method/status combination.
func (m *Metrics) RequestStats(path, method string, status int) (int64, time.Duration) {
	if m == nil {
		return 0, 0
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount[key], m.requestTime[key]
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordStoreOp counts a store-level operation such as student_added or
// presence_toggled. Fed by the audit worker.
func (m *Metrics) RecordStoreOp(op string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeOpCount[op]++
}

// StoreOpCount returns the counter for one store operation.
func (m *Metrics) StoreOpCount(op string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeOpCount[op]
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
