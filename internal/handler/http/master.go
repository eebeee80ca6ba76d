package http

import (
	"net/http"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/employee"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/workarea"
	"github.com/fieldtrack/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// MasterHandler exposes the reference data the attendance surface reads:
// work areas and the employee roster. Both are owned by the administrative
// system and served read-only here.
type MasterHandler interface {
	ListWorkAreas(w http.ResponseWriter, r *http.Request)
	GetWorkArea(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	workAreaRepo workarea.WorkAreaRepository
	employeeRepo employee.EmployeeRepository
}

func NewMasterHandler(workAreaRepo workarea.WorkAreaRepository, employeeRepo employee.EmployeeRepository) MasterHandler {
	return &masterHandlerImpl{
		workAreaRepo: workAreaRepo,
		employeeRepo: employeeRepo,
	}
}

type workAreaResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters int      `json:"radius_meters"`
	PauseMinutes *int     `json:"pause_minutes,omitempty"`
}

// employeeResponse deliberately omits the PIN hash and device list.
type employeeResponse struct {
	ID           string   `json:"id"`
	FullName     string   `json:"full_name"`
	EmployeeCode string   `json:"employee_code"`
	Role         string   `json:"role"`
	GPSRequired  bool     `json:"gps_required"`
	WorkAreaIDs  []string `json:"work_area_ids"`
	Status       string   `json:"status"`
}

func mapWorkArea(area workarea.WorkArea) workAreaResponse {
	return workAreaResponse{
		ID:           area.ID,
		Name:         area.Name,
		Latitude:     area.Latitude,
		Longitude:    area.Longitude,
		RadiusMeters: area.RadiusMeters,
		PauseMinutes: area.PauseMinutes,
	}
}

func mapEmployee(emp employee.Employee) employeeResponse {
	return employeeResponse{
		ID:           emp.ID,
		FullName:     emp.FullName,
		EmployeeCode: emp.EmployeeCode,
		Role:         string(emp.Role),
		GPSRequired:  emp.GPSRequired,
		WorkAreaIDs:  emp.WorkAreaIDs,
		Status:       string(emp.Status),
	}
}

// ListWorkAreas handles GET /work-areas
func (h *masterHandlerImpl) ListWorkAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.workAreaRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]workAreaResponse, 0, len(areas))
	for _, area := range areas {
		results = append(results, mapWorkArea(area))
	}

	response.Success(w, results)
}

// GetWorkArea handles GET /work-areas/{id}
func (h *masterHandlerImpl) GetWorkArea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	area, err := h.workAreaRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapWorkArea(area))
}

// ListEmployees handles GET /employees
func (h *masterHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		results = append(results, mapEmployee(emp))
	}

	response.Success(w, results)
}

// GetEmployee handles GET /employees/{id}
func (h *masterHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.employeeRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapEmployee(emp))
}
