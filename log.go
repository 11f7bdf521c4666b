// log.go - structured logging. Any thread may enqueue a log line; only
// the supervisor drains the queue and writes it out, so the hot path
// never blocks on an I/O-bound logger.

package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var defaultLogger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "windsp",
})

type logRecord struct {
	level log.Level
	msg   string
}

// LogQueue is a bounded, lock-guarded FIFO of pending log records. Any
// goroutine may enqueue; Drain is only ever called from the supervisor.
type LogQueue struct {
	mu      sync.Mutex
	records []logRecord
}

// logQueueCapacity bounds LogQueue; records enqueued while it is full
// are dropped.
const logQueueCapacity = 1024

var globalLogQueue = &LogQueue{}

func (q *LogQueue) enqueue(level log.Level, format string, args ...any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.records) >= logQueueCapacity {
		return
	}
	q.records = append(q.records, logRecord{level: level, msg: fmt.Sprintf(format, args...)})
}

// Drain flushes every pending record to the logger, in order.
func (q *LogQueue) Drain() {
	q.mu.Lock()
	pending := q.records
	q.records = nil
	q.mu.Unlock()

	for _, r := range pending {
		switch r.level {
		case log.WarnLevel:
			defaultLogger.Warn(r.msg)
		case log.ErrorLevel:
			defaultLogger.Error(r.msg)
		case log.DebugLevel:
			defaultLogger.Debug(r.msg)
		default:
			defaultLogger.Info(r.msg)
		}
	}
}

func logInfo(format string, args ...any)  { globalLogQueue.enqueue(log.InfoLevel, format, args...) }
func logWarn(format string, args ...any)  { globalLogQueue.enqueue(log.WarnLevel, format, args...) }
func logError(format string, args ...any) { globalLogQueue.enqueue(log.ErrorLevel, format, args...) }
func logDebug(format string, args ...any) { globalLogQueue.enqueue(log.DebugLevel, format, args...) }
