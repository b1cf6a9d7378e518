package health

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"repair-backend/internal/store"
)

// PingFunc checks the durable backend. Nil means memory-only mode, which is
// always considered healthy (the store works without a durable layer).
type PingFunc func(ctx context.Context) error

type HealthChecker struct {
	store   *store.RecordStore
	backend string
	ping    PingFunc
}

type HealthStatus struct {
	Status  string        `json:"status"`
	Durable DurableHealth `json:"durable"`
	Records RecordCounts  `json:"records"`
}

type DurableHealth struct {
	Backend      string `json:"backend"`
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type RecordCounts struct {
	Services int `json:"services"`
	Laptops  int `json:"laptops"`
	Vendors  int `json:"vendors"`
}

type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
}

type DetailedStatus struct {
	HealthStatus
	System SystemStats `json:"system"`
}

func NewHealthChecker(st *store.RecordStore, backend string, ping PingFunc) *HealthChecker {
	return &HealthChecker{store: st, ping: ping, backend: backend}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	durable := h.checkDurable()

	status := "healthy"
	if durable.Status == "unhealthy" {
		status = "degraded" // in-memory working set still serves requests
	}

	snap := h.store.LoadAll()
	return HealthStatus{
		Status:  status,
		Durable: durable,
		Records: RecordCounts{
			Services: len(snap.Services),
			Laptops:  len(snap.Laptops),
			Vendors:  len(snap.Vendors),
		},
	}
}

func (h *HealthChecker) CheckDetailed() DetailedStatus {
	return DetailedStatus{
		HealthStatus: h.CheckBasic(),
		System:       systemStats(),
	}
}

func (h *HealthChecker) checkDurable() DurableHealth {
	if h.ping == nil {
		return DurableHealth{Backend: h.backend, Status: "memory-only"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DurableHealth{Backend: h.backend, Status: "unhealthy", ResponseTime: responseTime}
	}
	return DurableHealth{Backend: h.backend, Status: "healthy", ResponseTime: responseTime}
}

func systemStats() SystemStats {
	stats := SystemStats{}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	}

	return stats
}
