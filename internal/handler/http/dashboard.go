package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/report"
	"github.com/fieldtrack/timeclock-backend-go/internal/handler/http/response"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/jwt"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/sse"
	"github.com/go-chi/jwtauth/v5"
)

type DashboardHandler interface {
	// GetLive returns per-area working/on-break counts as of now
	GetLive(w http.ResponseWriter, r *http.Request)
	// GetStreamToken generates a short-lived token for SSE connections
	GetStreamToken(w http.ResponseWriter, r *http.Request)
	// Stream handles the SSE connection pushing presence transitions
	Stream(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	reportService report.ReportService
	jwtService    jwt.Service
	hub           *sse.Hub
}

func NewDashboardHandler(reportService report.ReportService, jwtService jwt.Service, hub *sse.Hub) DashboardHandler {
	return &dashboardHandlerImpl{
		reportService: reportService,
		jwtService:    jwtService,
		hub:           hub,
	}
}

// GetLive handles GET /dashboard/live
func (h *dashboardHandlerImpl) GetLive(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.LiveDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

type streamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetStreamToken handles GET /dashboard/stream-token
func (h *dashboardHandlerImpl) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(employeeID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, streamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles GET /dashboard/stream
func (h *dashboardHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Token comes as a query parameter because EventSource cannot set headers.
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	if _, err := h.jwtService.ValidateStreamToken(tokenStr); err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sse.TopicDashboard)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// getEmployeeIDFromContext extracts the employee_id claim set by the JWT
// verifier; empty string when the claim is absent.
func getEmployeeIDFromContext(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	if id, ok := claims["employee_id"].(string); ok {
		return id
	}
	return ""
}
