package services

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/chenglu1/admin-console/internal/dto"
)

// SystemService produces point-in-time host and process snapshots for the
// dashboard.
type SystemService struct{}

func NewSystemService() *SystemService {
	return &SystemService{}
}

// Metrics gathers what it can; a failing probe leaves its fields zeroed
// rather than failing the whole snapshot.
func (s *SystemService) Metrics() *dto.SystemMetrics {
	m := &dto.SystemMetrics{
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		CPUCores:   runtime.NumCPU(),
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.HeapAllocMB = float64(ms.HeapAlloc) / 1024 / 1024

	if info, err := host.Info(); err == nil {
		m.Hostname = info.Hostname
		m.OS = info.OS
		m.Platform = info.Platform
		m.UptimeSeconds = info.Uptime
	}

	if percents, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(percents) > 0 {
		m.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		m.MemTotal = vm.Total
		m.MemUsed = vm.Used
		m.MemPercent = vm.UsedPercent
	}

	if du, err := disk.Usage("/"); err == nil {
		m.DiskTotal = du.Total
		m.DiskUsed = du.Used
		m.DiskPercent = du.UsedPercent
	}

	return m
}
