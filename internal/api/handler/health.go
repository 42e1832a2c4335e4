package handler

import (
	"fmt"
	"net/http"
	"runtime"
	"time"
)

var startTime = time.Now()

// KeyChecker reports which provider keys currently resolve.
type KeyChecker interface {
	TextKey(override string) string
	ImageKey(override string) string
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	keys KeyChecker
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(keys KeyChecker) *HealthHandler {
	return &HealthHandler{
		keys: keys,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp string      `json:"timestamp"`
	Keys      *KeysStatus `json:"keys,omitempty"`
}

// KeysStatus tells whether each provider key resolves without a request override.
type KeysStatus struct {
	DeepSeek bool `json:"deepseek"`
	DeepAI   bool `json:"deepai"`
}

// Live handles GET /health - liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready. The service is ready once a DeepSeek key resolves
// from the environment or saved settings.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	keys := &KeysStatus{
		DeepSeek: h.keys.TextKey("") != "",
		DeepAI:   h.keys.ImageKey("") != "",
	}

	status, code := "ok", http.StatusOK
	if !keys.DeepSeek {
		status, code = "unconfigured", http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Keys:      keys,
	})
}

// SystemStats contains process resource statistics.
type SystemStats struct {
	Uptime        int64  `json:"uptime_seconds"`
	UptimeHuman   string `json:"uptime_human"`
	MemAllocMB    int64  `json:"mem_alloc_mb"`
	MemSysMB      int64  `json:"mem_sys_mb"`
	MemHeapMB     int64  `json:"mem_heap_mb"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
}

// Stats handles GET /api/stats - process statistics.
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(startTime)

	writeJSON(w, http.StatusOK, SystemStats{
		Uptime:        int64(uptime.Seconds()),
		UptimeHuman:   formatUptime(uptime),
		MemAllocMB:    int64(m.Alloc / 1024 / 1024),
		MemSysMB:      int64(m.Sys / 1024 / 1024),
		MemHeapMB:     int64(m.HeapAlloc / 1024 / 1024),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
	})
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
