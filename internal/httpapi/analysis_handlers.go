package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/taxonomy"
)

type actionItemResponse struct {
	Action        string `json:"action"`
	Responsible   string `json:"responsible,omitempty"`
	DueDate       string `json:"dueDate,omitempty"`
	Status        string `json:"status"`
	CompletedDate string `json:"completedDate,omitempty"`
}

type analysisResponse struct {
	ID                   string               `json:"id"`
	OrgID                string               `json:"orgId"`
	FailureRecordID      string               `json:"failureRecordId"`
	EquipmentID          string               `json:"equipmentId"`
	EquipmentName        string               `json:"equipmentName,omitempty"`
	AnalysisDate         string               `json:"analysisDate"`
	PerformedBy          string               `json:"performedBy"`
	ProblemStatement     string               `json:"problemStatement,omitempty"`
	RootCauseCategory    string               `json:"rootCauseCategory,omitempty"`
	RootCauseID          string               `json:"rootCauseId,omitempty"`
	FiveWhys             []string             `json:"fiveWhys,omitempty"`
	ContributingFactors  []string             `json:"contributingFactors,omitempty"`
	CorrectiveActions    []actionItemResponse `json:"correctiveActions,omitempty"`
	PreventiveActions    []actionItemResponse `json:"preventiveActions,omitempty"`
	VerificationRequired bool                 `json:"verificationRequired"`
	VerificationDate     string               `json:"verificationDate,omitempty"`
	VerifiedBy           string               `json:"verifiedBy,omitempty"`
	Status               string               `json:"status"`
	CreatedAt            string               `json:"createdAt"`
	UpdatedAt            string               `json:"updatedAt"`
}

func toActionItemResponses(items []ports.ActionItem) []actionItemResponse {
	if len(items) == 0 {
		return nil
	}
	out := make([]actionItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, actionItemResponse{
			Action:        item.Action,
			Responsible:   item.Responsible,
			DueDate:       item.DueDate,
			Status:        item.Status,
			CompletedDate: item.CompletedDate,
		})
	}
	return out
}

func toAnalysisResponse(analysis ports.Analysis) analysisResponse {
	return analysisResponse{
		ID:                   analysis.AnalysisID,
		OrgID:                analysis.OrgID,
		FailureRecordID:      analysis.FailureRecordID,
		EquipmentID:          analysis.EquipmentID,
		EquipmentName:        analysis.EquipmentName,
		AnalysisDate:         analysis.AnalysisDate,
		PerformedBy:          analysis.PerformedBy,
		ProblemStatement:     analysis.ProblemStatement,
		RootCauseCategory:    analysis.RootCauseCategory,
		RootCauseID:          analysis.RootCauseID,
		FiveWhys:             analysis.FiveWhys,
		ContributingFactors:  analysis.ContributingFactors,
		CorrectiveActions:    toActionItemResponses(analysis.CorrectiveActions),
		PreventiveActions:    toActionItemResponses(analysis.PreventiveActions),
		VerificationRequired: analysis.VerificationRequired,
		VerificationDate:     analysis.VerificationDate,
		VerifiedBy:           analysis.VerifiedBy,
		Status:               analysis.Status,
		CreatedAt:            analysis.CreatedAt,
		UpdatedAt:            analysis.UpdatedAt,
	}
}

func toAnalysisResponses(analyses []ports.Analysis) []analysisResponse {
	out := make([]analysisResponse, 0, len(analyses))
	for _, analysis := range analyses {
		out = append(out, toAnalysisResponse(analysis))
	}
	return out
}

type actionItemRequest struct {
	Action      string `json:"action"`
	Responsible string `json:"responsible"`
	DueDate     string `json:"dueDate"`
}

type startAnalysisRequest struct {
	FailureRecordID      string              `json:"failureRecordId"`
	PerformedBy          string              `json:"performedBy"`
	AnalysisDate         string              `json:"analysisDate"`
	ProblemStatement     string              `json:"problemStatement"`
	RootCauseCategory    string              `json:"rootCauseCategory"`
	RootCauseID          string              `json:"rootCauseId"`
	FiveWhys             []string            `json:"fiveWhys"`
	ContributingFactors  []string            `json:"contributingFactors"`
	CorrectiveActions    []actionItemRequest `json:"correctiveActions"`
	PreventiveActions    []actionItemRequest `json:"preventiveActions"`
	VerificationRequired bool                `json:"verificationRequired"`
}

func toActionItemInputs(items []actionItemRequest) []reliability.ActionItemInput {
	if len(items) == 0 {
		return nil
	}
	out := make([]reliability.ActionItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, reliability.ActionItemInput{
			Action:      item.Action,
			Responsible: item.Responsible,
			DueDate:     item.DueDate,
		})
	}
	return out
}

func (h *handler) startAnalysis(w http.ResponseWriter, r *http.Request) {
	var req startAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	created, err := h.reliability.StartAnalysis(r.Context(), reliability.StartAnalysisInput{
		OrgID:                chi.URLParam(r, "org"),
		FailureRecordID:      req.FailureRecordID,
		PerformedBy:          req.PerformedBy,
		AnalysisDate:         req.AnalysisDate,
		ProblemStatement:     req.ProblemStatement,
		RootCauseCategory:    req.RootCauseCategory,
		RootCauseID:          req.RootCauseID,
		FiveWhys:             req.FiveWhys,
		ContributingFactors:  req.ContributingFactors,
		CorrectiveActions:    toActionItemInputs(req.CorrectiveActions),
		PreventiveActions:    toActionItemInputs(req.PreventiveActions),
		VerificationRequired: req.VerificationRequired,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAnalysisResponse(created))
}

func (h *handler) getAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.reliability.GetAnalysis(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponse(analysis))
}

func (h *handler) listAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.reliability.ListAnalyses(r.Context(), chi.URLParam(r, "org"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponses(analyses))
}

func (h *handler) listFailureAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.reliability.ListAnalysesForFailure(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponses(analyses))
}

func (h *handler) beginAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.reliability.BeginAnalysis(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponse(analysis))
}

func (h *handler) completeAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.reliability.CompleteAnalysis(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponse(analysis))
}

type verifyAnalysisRequest struct {
	VerifiedBy string `json:"verifiedBy"`
}

func (h *handler) verifyAnalysis(w http.ResponseWriter, r *http.Request) {
	var req verifyAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	analysis, err := h.reliability.VerifyAnalysis(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"), req.VerifiedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponse(analysis))
}

func (h *handler) completeActionItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "index must be an integer"})
		return
	}

	analysis, err := h.reliability.CompleteActionItem(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "id"), chi.URLParam(r, "list"), index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponse(analysis))
}

type createFailureCodeRequest struct {
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Severity         string   `json:"severity"`
	CommonCauses     []string `json:"commonCauses"`
	SuggestedActions []string `json:"suggestedActions"`
	MTTRHours        float64  `json:"mttrHours"`
}

func (h *handler) createFailureCode(w http.ResponseWriter, r *http.Request) {
	var req createFailureCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	created, err := h.taxonomy.CreateFailureCode(r.Context(), taxonomy.CreateFailureCodeInput{
		OrgID:            chi.URLParam(r, "org"),
		Code:             req.Code,
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Severity:         req.Severity,
		CommonCauses:     req.CommonCauses,
		SuggestedActions: req.SuggestedActions,
		MTTRHours:        req.MTTRHours,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) listFailureCodes(w http.ResponseWriter, r *http.Request) {
	activeOnly := true
	if raw := r.URL.Query().Get("all"); raw != "" {
		all, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "all must be a boolean"})
			return
		}
		activeOnly = !all
	}

	codes, err := h.taxonomy.ListFailureCodes(r.Context(), chi.URLParam(r, "org"), activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	if codes == nil {
		codes = []ports.FailureCode{}
	}
	writeJSON(w, http.StatusOK, codes)
}

type createCatalogEntryRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *handler) createRootCause(w http.ResponseWriter, r *http.Request) {
	var req createCatalogEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	created, err := h.taxonomy.CreateRootCause(r.Context(), taxonomy.CreateRootCauseInput{
		OrgID:       chi.URLParam(r, "org"),
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) createActionTaken(w http.ResponseWriter, r *http.Request) {
	var req createCatalogEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	created, err := h.taxonomy.CreateActionTaken(r.Context(), taxonomy.CreateActionTakenInput{
		OrgID:       chi.URLParam(r, "org"),
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) listRootCauses(w http.ResponseWriter, r *http.Request) {
	causes, err := h.taxonomy.ListRootCauses(r.Context(), chi.URLParam(r, "org"))
	if err != nil {
		writeError(w, err)
		return
	}
	if causes == nil {
		causes = []ports.RootCause{}
	}
	writeJSON(w, http.StatusOK, causes)
}

func (h *handler) listActionTaken(w http.ResponseWriter, r *http.Request) {
	actions, err := h.taxonomy.ListActionTaken(r.Context(), chi.URLParam(r, "org"))
	if err != nil {
		writeError(w, err)
		return
	}
	if actions == nil {
		actions = []ports.ActionTaken{}
	}
	writeJSON(w, http.StatusOK, actions)
}

func (h *handler) vocabularies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"failureCategories":   h.taxonomy.FailureCategories(),
		"severities":          h.taxonomy.Severities(),
		"rootCauseCategories": h.taxonomy.RootCauseCategories(),
	})
}
