package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Size cap in megabytes; the cron boundary is what normally rotates the file.
const defaultMaxSizeMB = 100

// RotatingWriter appends to a log file and rotates it when a cron boundary
// (e.g. "@weekly") has passed. The process lives for a single run, so the
// boundary is measured from the last write to the existing file rather than
// from process start. Old files beyond MaxBackups are pruned by lumberjack.
type RotatingWriter struct {
	mu       sync.Mutex
	file     *lumberjack.Logger
	schedule cron.Schedule
	next     time.Time
	now      func() time.Time
}

// NewRotatingWriter parses spec with the standard cron parser and prepares
// path for appending.
func NewRotatingWriter(path, spec string, maxBackups int) (*RotatingWriter, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("logger: parse rotation schedule %q: %w", spec, err)
	}
	w := &RotatingWriter{
		file: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: maxBackups,
			LocalTime:  true,
		},
		schedule: schedule,
		now:      time.Now,
	}
	w.next = w.firstBoundary(path)
	return w, nil
}

func (w *RotatingWriter) firstBoundary(path string) time.Time {
	if info, err := os.Stat(path); err == nil {
		return w.schedule.Next(info.ModTime())
	}
	return w.schedule.Next(w.now())
}

// Write implements io.Writer.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if !now.Before(w.next) {
		if err := w.file.Rotate(); err != nil {
			return 0, fmt.Errorf("logger: rotate %s: %w", w.file.Filename, err)
		}
		w.next = w.schedule.Next(now)
	}
	return w.file.Write(p)
}

// Close releases the file handle.
func (w *RotatingWriter) Close() error {
	return w.file.Close()
}
