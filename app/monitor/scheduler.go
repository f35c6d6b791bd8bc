package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var _ SchedulerInterface = (*Scheduler)(nil)

// Scheduler drives periodic scan cycles. It owns the ticker and an explicit
// in-flight flag: a tick that fires while a scan is still running is
// skipped, never queued.
type Scheduler struct {
	scanner  ScanRunner
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu       sync.Mutex
	scanning bool
	stats    Stats
}

// Stats holds scan statistics for the stats endpoint
type Stats struct {
	TotalScans     int64
	TotalErrors    int64
	SkippedTicks   int64
	ReviewsCreated int64
	LastScanAt     *time.Time
	LastScanTime   time.Duration
}

func NewScheduler(scanner ScanRunner, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		scanner:  scanner,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs one scan immediately, then one per interval until Stop
func (s *Scheduler) Start() {
	slog.Info("Starting content monitor", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runScan()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runScan()
			}
		}
	}()
}

// Stop prevents further scans from being scheduled. An in-flight scan runs
// to completion; Stop waits for it.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Content monitor stopped")
}

// TriggerScan starts an immediate scan in the background. It is refused
// while another scan is in flight.
func (s *Scheduler) TriggerScan() error {
	select {
	case <-s.ctx.Done():
		return fmt.Errorf("monitor is stopped")
	default:
	}

	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	s.scanning = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.executeScan()
	}()

	return nil
}

// GetStats returns a copy of the current scan statistics
func (s *Scheduler) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// runScan executes a scan from the ticker loop unless one is in flight
func (s *Scheduler) runScan() {
	s.mu.Lock()
	if s.scanning {
		s.stats.SkippedTicks++
		s.mu.Unlock()
		slog.Warn("Previous scan still running, skipping tick")
		return
	}
	s.scanning = true
	s.mu.Unlock()

	s.executeScan()
}

// executeScan runs one scan cycle and records its outcome. Callers must have
// set the in-flight flag. The scan deliberately does not inherit the
// scheduler context: Stop lets an in-flight scan finish.
func (s *Scheduler) executeScan() {
	start := time.Now()

	scanCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.scanner.Run(scanCtx)
	duration := time.Since(start)

	s.mu.Lock()
	s.scanning = false
	s.stats.TotalScans++
	now := time.Now()
	s.stats.LastScanAt = &now
	s.stats.LastScanTime = duration
	s.stats.ReviewsCreated += int64(result.ReviewsCreated)
	if err != nil {
		s.stats.TotalErrors++
	}
	s.mu.Unlock()

	if err != nil {
		slog.Error("Scan cycle failed", "duration", duration, "error", err)
		return
	}

	slog.Info("Scan cycle completed",
		"duration", duration,
		"campaigns", result.Campaigns,
		"profiles", result.Profiles,
		"units", result.Units,
		"posts", result.Posts,
		"matches", result.Matches,
		"new_reviews", result.ReviewsCreated,
		"fetch_errors", result.FetchErrors)
}
