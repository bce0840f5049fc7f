// Package system exposes host runtime stats for the ops dashboard.
package system

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

var dbpool *pgxpool.Pool

func InitSystem(pool *pgxpool.Pool) {
	dbpool = pool
}

// GetSystemStatsHandler handles GET /system/stats
func GetSystemStatsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	start := time.Now()
	dbErr := dbpool.Ping(ctx)
	latency := time.Since(start)

	v, _ := mem.VirtualMemory()
	cpuPercent, _ := cpu.Percent(0, false)
	d, _ := disk.Usage("/")
	uptime, _ := host.Uptime()

	cpuLoad := "n/a"
	if len(cpuPercent) > 0 {
		cpuLoad = fmt.Sprintf("%.1f%%", cpuPercent[0])
	}
	diskUsage := "n/a"
	if d != nil {
		diskUsage = fmt.Sprintf("%.1f%%", d.UsedPercent)
	}
	ramUsage := "n/a"
	if v != nil {
		ramUsage = fmt.Sprintf("%.1f%%", v.UsedPercent)
	}

	poolStats := dbpool.Stat()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"server_health": map[string]interface{}{
			"cpu_load":   cpuLoad,
			"ram_usage":  ramUsage,
			"disk_usage": diskUsage,
			"uptime_sec": uptime,
			"db_healthy": dbErr == nil,
			"db_latency": fmt.Sprintf("%dms", latency.Milliseconds()),
		},
		"database": map[string]interface{}{
			"total_conns":    poolStats.TotalConns(),
			"idle_conns":     poolStats.IdleConns(),
			"acquired_conns": poolStats.AcquiredConns(),
			"max_conns":      poolStats.MaxConns(),
		},
	})
}
