package monitor

import (
	"context"
)

// ScanRunner executes one scan cycle
type ScanRunner interface {
	Run(ctx context.Context) (ScanResult, error)
}

// SchedulerInterface is the surface the HTTP API uses to control the
// background monitor
type SchedulerInterface interface {
	Start()
	Stop()
	TriggerScan() error
	GetStats() Stats
}
