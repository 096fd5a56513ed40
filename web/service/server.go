package service

import (
	"time"

	"cms-ui/config"
	"cms-ui/database"
	"cms-ui/logger"
	"cms-ui/web/entity"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// ServerService reports host metrics for the panel status page.
type ServerService struct{}

func (s *ServerService) GetStatus() *entity.SystemStatus {
	status := &entity.SystemStatus{
		Version:  config.GetVersion(),
		Degraded: !database.IsReachable(),
	}

	percents, err := cpu.Percent(time.Second, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	return status
}
