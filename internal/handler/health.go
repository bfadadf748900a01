package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type priceSourceChecker interface {
	Healthy(ctx context.Context) error
}

type HealthHandler struct {
	prices priceSourceChecker
}

func NewHealthHandler(prices priceSourceChecker) *HealthHandler {
	return &HealthHandler{prices: prices}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	pricesStatus := "ok"
	httpStatus := http.StatusOK

	if err := h.prices.Healthy(r.Context()); err != nil {
		slog.Warn("readiness check failed: price source unreachable", "error", err)
		pricesStatus = "down"
		httpStatus = http.StatusServiceUnavailable
	}

	overallStatus := "ok"
	if httpStatus != http.StatusOK {
		overallStatus = "down"
	}

	RespondJSON(w, httpStatus, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"price_source": pricesStatus,
		},
	})
}
