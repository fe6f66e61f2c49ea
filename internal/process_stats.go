package internal

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/process"
)

// ProcessStats reports memory, CPU and OS status of the current process for
// the inspector page. Fields that cannot be read are left out.
func ProcessStats() map[string]any {
	stats := map[string]any{"PID": os.Getpid()}
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats
	}
	if mem, err := p.MemoryInfo(); err == nil {
		stats["RSS"] = humanize.Bytes(mem.RSS)
	}
	if cpu, err := p.CPUPercent(); err == nil {
		stats["CPU"] = fmt.Sprintf("%.1f%%", cpu)
	}
	if status, err := p.Status(); err == nil {
		stats["Process"] = fmt.Sprint(status)
	}
	return stats
}

// MergeStats combines stat providers, later ones winning on duplicate keys.
func MergeStats(providers ...StatsProvider) StatsProvider {
	return func() map[string]any {
		out := make(map[string]any)
		for _, provider := range providers {
			for k, v := range provider() {
				out[k] = v
			}
		}
		return out
	}
}
