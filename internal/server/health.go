package server

import (
	"context"
	"net/http"
	"time"

	"github.com/uptrace/bun"

	"fullstack-starter/internal/utils"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	DB *bun.DB
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health answers 200 when the process and its database connection are
// reachable. The container probe and external orchestration key off the
// status code; the body is for humans.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, healthStatus{
			Status:   "unhealthy",
			Database: "down",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, healthStatus{
		Status:   "ok",
		Database: "up",
	})
}
