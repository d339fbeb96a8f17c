package handlers

import (
	"net/http"

	"dynastytrade/internal/utils"

	"gorm.io/gorm"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"` // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "dynastytrade",
		"version": "1.0.0",
	})
}

func (h *HealthHandler) ReadyzHandler(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	if h.db == nil {
		checks["database"] = ReadinessCheck{Status: "failed", Message: "Database not initialized"}
		allChecksPass = false
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		checks["database"] = ReadinessCheck{Status: "failed", Message: "Database unreachable"}
		allChecksPass = false
	} else {
		checks["database"] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{Service: "dynastytrade", Checks: checks}
	if allChecksPass {
		response.Status = "ready"
		utils.JSON(w, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(w, http.StatusServiceUnavailable, response)
	}
}
