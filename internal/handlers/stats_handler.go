package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/ocr"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/timeutil"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/ws"
)

// StatsHandler serves the admin operations dashboard: process and host
// metrics, database pool state, live socket count and OCR throughput.
type StatsHandler struct {
	DB        *pgxpool.Pool
	Hub       *ws.Hub
	OCRWorker *ocr.ReceiptWorker
}

func NewStatsHandler(db *pgxpool.Pool, hub *ws.Hub, ocrWorker *ocr.ReceiptWorker) *StatsHandler {
	return &StatsHandler{DB: db, Hub: hub, OCRWorker: ocrWorker}
}

type systemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      string  `json:"disk_used"`
	DiskTotal     string  `json:"disk_total"`
}

type databaseStats struct {
	Status            string `json:"status"`
	ResponseTimeMs    int64  `json:"response_time_ms"`
	ActiveConnections int    `json:"active_connections"`
	PoolAcquired      int32  `json:"pool_acquired"`
	PoolIdle          int32  `json:"pool_idle"`
	PoolTotal         int32  `json:"pool_total"`
	Size              string `json:"size"`
}

type ocrStats struct {
	Engine    string `json:"engine"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}

// GetStats handles GET /admin/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats := map[string]interface{}{
		"system":       h.collectSystem(),
		"database":     h.collectDatabase(ctx),
		"websocket":    map[string]int{"connected_clients": h.Hub.ClientCount()},
		"generated_at": timeutil.Now().Format("2006-01-02 15:04:05"),
	}
	if h.OCRWorker != nil {
		processed, failed := h.OCRWorker.Stats()
		stats["ocr"] = ocrStats{Engine: h.OCRWorker.EngineName(), Processed: processed, Failed: failed}
	}

	respondJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) collectSystem() systemStats {
	var stats systemStats

	// Instantaneous sample; a 0s interval reads since-boot counters
	// instead of blocking the request for a second.
	if cpuPercents, err := cpu.Percent(0, false); err == nil && len(cpuPercents) > 0 {
		stats.CPUPercent = cpuPercents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = memStats.UsedPercent
		stats.MemoryUsed = formatBytes(memStats.Used)
		stats.MemoryTotal = formatBytes(memStats.Total)
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = diskStats.UsedPercent
		stats.DiskUsed = formatBytes(diskStats.Used)
		stats.DiskTotal = formatBytes(diskStats.Total)
	}
	return stats
}

func (h *StatsHandler) collectDatabase(ctx context.Context) databaseStats {
	stats := databaseStats{Status: "healthy"}

	start := time.Now()
	if err := h.DB.Ping(ctx); err != nil {
		stats.Status = "unhealthy"
	}
	stats.ResponseTimeMs = time.Since(start).Milliseconds()

	h.DB.QueryRow(ctx, "SELECT count(*) FROM pg_stat_activity").Scan(&stats.ActiveConnections)

	var sizeBytes int64
	h.DB.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&sizeBytes)
	stats.Size = formatBytes(uint64(sizeBytes))

	pool := h.DB.Stat()
	stats.PoolAcquired = pool.AcquiredConns()
	stats.PoolIdle = pool.IdleConns()
	stats.PoolTotal = pool.TotalConns()

	return stats
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}
