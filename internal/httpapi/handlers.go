package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/taxonomy"
)

type handler struct {
	reliability *reliability.Service
	taxonomy    *taxonomy.Service
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps the error taxonomy onto HTTP statuses: not-found 404,
// referential and lifecycle conflicts 409, guard failures 422, store outage
// 503, anything else a 400 validation reject.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ports.ErrFailureRecordNotFound),
		errors.Is(err, ports.ErrAnalysisNotFound),
		errors.Is(err, ports.ErrFailureCodeNotFound),
		errors.Is(err, ports.ErrRootCauseNotFound),
		errors.Is(err, ports.ErrActionTakenNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrFailureRecordHasAnalysis),
		errors.Is(err, ports.ErrFailureCodeInUse),
		errors.Is(err, ports.ErrDuplicateCode),
		errors.Is(err, reliability.ErrRecordLockedByAnalysis),
		errors.Is(err, reliability.ErrAnalysisImmutable):
		return http.StatusConflict
	case errors.Is(err, domainrel.ErrInvalidStatusTransition),
		errors.Is(err, domainrel.ErrProblemStatementRequired),
		errors.Is(err, domainrel.ErrCorrectiveActionsPending),
		errors.Is(err, domainrel.ErrVerificationNotRequired):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type failureRecordResponse struct {
	ID                string   `json:"id"`
	OrgID             string   `json:"orgId"`
	WorkOrderID       string   `json:"workOrderId,omitempty"`
	WorkOrderNumber   string   `json:"workOrderNumber,omitempty"`
	EquipmentID       string   `json:"equipmentId"`
	EquipmentName     string   `json:"equipmentName,omitempty"`
	FailureCodeID     string   `json:"failureCodeId"`
	FailureCode       string   `json:"failureCode"`
	FailureDate       string   `json:"failureDate"`
	ReportedBy        string   `json:"reportedBy"`
	ReportedByName    string   `json:"reportedByName,omitempty"`
	Description       string   `json:"description,omitempty"`
	DowntimeHours     float64  `json:"downtimeHours"`
	RepairHours       float64  `json:"repairHours"`
	PartsCost         float64  `json:"partsCost"`
	LaborCost         float64  `json:"laborCost"`
	RootCauseID       string   `json:"rootCauseId,omitempty"`
	RootCauseCode     string   `json:"rootCauseCode,omitempty"`
	ActionTakenID     string   `json:"actionTakenId,omitempty"`
	ActionTakenCode   string   `json:"actionTakenCode,omitempty"`
	FiveWhys          []string `json:"fiveWhys,omitempty"`
	CorrectiveActions []string `json:"correctiveActions,omitempty"`
	PreventiveActions []string `json:"preventiveActions,omitempty"`
	IsRecurring       bool     `json:"isRecurring"`
	PreviousFailureID string   `json:"previousFailureId,omitempty"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

func toFailureResponse(rec ports.FailureRecord) failureRecordResponse {
	return failureRecordResponse{
		ID:                rec.FailureRecordID,
		OrgID:             rec.OrgID,
		WorkOrderID:       rec.WorkOrderID,
		WorkOrderNumber:   rec.WorkOrderNumber,
		EquipmentID:       rec.EquipmentID,
		EquipmentName:     rec.EquipmentName,
		FailureCodeID:     rec.FailureCodeID,
		FailureCode:       rec.FailureCode,
		FailureDate:       rec.FailureDate,
		ReportedBy:        rec.ReportedBy,
		ReportedByName:    rec.ReportedByName,
		Description:       rec.Description,
		DowntimeHours:     rec.DowntimeHours,
		RepairHours:       rec.RepairHours,
		PartsCost:         rec.PartsCost,
		LaborCost:         rec.LaborCost,
		RootCauseID:       rec.RootCauseID,
		RootCauseCode:     rec.RootCauseCode,
		ActionTakenID:     rec.ActionTakenID,
		ActionTakenCode:   rec.ActionTakenCode,
		FiveWhys:          rec.FiveWhys,
		CorrectiveActions: rec.CorrectiveActions,
		PreventiveActions: rec.PreventiveActions,
		IsRecurring:       rec.IsRecurring,
		PreviousFailureID: rec.PreviousFailureID,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}

func toFailureResponses(records []ports.FailureRecord) []failureRecordResponse {
	out := make([]failureRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toFailureResponse(rec))
	}
	return out
}

func (h *handler) listFailures(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := ports.FailureFilter{
		EquipmentID:   query.Get("equipmentId"),
		FailureCodeID: query.Get("failureCodeId"),
		From:          query.Get("from"),
		To:            query.Get("to"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be an integer"})
			return
		}
		filter.Limit = limit
	}
	if raw := query.Get("recurring"); raw != "" {
		recurring, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "recurring must be a boolean"})
			return
		}
		filter.Recurring = &recurring
	}

	records, err := h.reliability.ListFailures(r.Context(), chi.URLParam(r, "org"), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFailureResponses(records))
}

type reportFailureRequest struct {
	WorkOrderID       string   `json:"workOrderId"`
	WorkOrderNumber   string   `json:"workOrderNumber"`
	EquipmentID       string   `json:"equipmentId"`
	EquipmentName     string   `json:"equipmentName"`
	FailureCodeID     string   `json:"failureCodeId"`
	FailureDate       string   `json:"failureDate"`
	ReportedBy        string   `json:"reportedBy"`
	ReportedByName    string   `json:"reportedByName"`
	Description       string   `json:"description"`
	DowntimeHours     float64  `json:"downtimeHours"`
	RepairHours       float64  `json:"repairHours"`
	PartsCost         float64  `json:"partsCost"`
	LaborCost         float64  `json:"laborCost"`
	RootCauseID       string   `json:"rootCauseId"`
	ActionTakenID     string   `json:"actionTakenId"`
	FiveWhys          []string `json:"fiveWhys"`
	CorrectiveActions []string `json:"correctiveActions"`
	PreventiveActions []string `json:"preventiveActions"`
	PreviousFailureID string   `json:"previousFailureId"`
}

func (h *handler) reportFailure(w http.ResponseWriter, r *http.Request) {
	var req reportFailureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	created, err := h.reliability.ReportFailure(r.Context(), reliability.ReportFailureInput{
		OrgID:             chi.URLParam(r, "org"),
		WorkOrderID:       req.WorkOrderID,
		WorkOrderNumber:   req.WorkOrderNumber,
		EquipmentID:       req.EquipmentID,
		EquipmentName:     req.EquipmentName,
		FailureCodeID:     req.FailureCodeID,
		FailureDate:       req.FailureDate,
		ReportedBy:        req.ReportedBy,
		ReportedByName:    req.ReportedByName,
		Description:       req.Description,
		DowntimeHours:     req.DowntimeHours,
		RepairHours:       req.RepairHours,
		PartsCost:         req.PartsCost,
		LaborCost:         req.LaborCost,
		RootCauseID:       req.RootCauseID,
		ActionTakenID:     req.ActionTakenID,
		FiveWhys:          req.FiveWhys,
		CorrectiveActions: req.CorrectiveActions,
		PreventiveActions: req.PreventiveActions,
		PreviousFailureID: req.PreviousFailureID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFailureResponse(created))
}

func (h *handler) getFailure(w http.ResponseWriter, r *http.Request) {
	record, err := h.reliability.GetFailure(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFailureResponse(record))
}

func (h *handler) deleteFailure(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
	if err := h.reliability.DeleteFailure(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"), force); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) equipmentMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.reliability.EquipmentMetrics(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "equipmentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if metrics == nil {
		writeJSON(w, http.StatusOK, map[string]any{"hasData": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hasData": true, "metrics": metrics})
}

func (h *handler) fleetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.reliability.FleetMetrics(r.Context(), chi.URLParam(r, "org"))
	if err != nil {
		writeError(w, err)
		return
	}
	if metrics == nil {
		writeJSON(w, http.StatusOK, map[string]any{"hasData": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hasData": true, "metrics": metrics})
}

func (h *handler) monthlyTrend(w http.ResponseWriter, r *http.Request) {
	months := 0
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "months must be an integer"})
			return
		}
		months = parsed
	}

	points, err := h.reliability.MonthlyTrend(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "equipmentID"), months)
	if err != nil {
		writeError(w, err)
		return
	}
	if points == nil {
		points = []domainrel.MonthlyTrendPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *handler) codeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reliability.FailureCodeStats(r.Context(), chi.URLParam(r, "org"))
	if err != nil {
		writeError(w, err)
		return
	}
	if stats == nil {
		stats = []domainrel.CodeStats{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *handler) equipmentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reliability.EquipmentStats(r.Context(), chi.URLParam(r, "org"))
	if err != nil {
		writeError(w, err)
		return
	}
	if stats == nil {
		stats = []domainrel.EquipmentStats{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *handler) fleetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.reliability.FleetOverview(r.Context(), chi.URLParam(r, "org"))
	if err != nil {
		writeError(w, err)
		return
	}
	if overview == nil {
		writeJSON(w, http.StatusOK, map[string]any{"hasData": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hasData": true, "overview": overview})
}
