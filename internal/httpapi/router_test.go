package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/uow"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/taxonomy"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "httpapi.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(
		&model.FailureCode{},
		&model.RootCause{},
		&model.ActionTaken{},
		&model.FailureRecord{},
		&model.Analysis{},
		&model.ReliabilityKV{},
	))

	failures := sqliterepo.NewFailureRepository(db)
	analyses := sqliterepo.NewAnalysisRepository(db)
	catalog := sqliterepo.NewTaxonomyRepository(db)
	uow := sqliteuow.NewUnitOfWork(db)

	rel := reliability.NewService(failures, analyses, catalog, uow, nil)
	tax := taxonomy.NewService(catalog, failures, uow)
	return NewRouter(rel, tax)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createCodeViaAPI(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/taxonomy/codes", map[string]any{
		"code":     "BRG-01",
		"name":     "Bearing Failure",
		"category": "mechanical",
		"severity": "major",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		FailureCodeID string
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.FailureCodeID)
	return created.FailureCodeID
}

func reportViaAPI(t *testing.T, router http.Handler, codeID, equipment, date string, downtime float64) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/failures", map[string]any{
		"equipmentId":   equipment,
		"equipmentName": "Pump " + equipment,
		"failureCodeId": codeID,
		"failureDate":   date,
		"reportedBy":    "tech-1",
		"downtimeHours": downtime,
		"repairHours":   2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created failureRecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID
}

func TestHealthz(t *testing.T) {
	router := setupRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReportAndListFailures(t *testing.T) {
	router := setupRouter(t)
	codeID := createCodeViaAPI(t, router)

	reportViaAPI(t, router, codeID, "eq-1", "2026-05-10T00:00:00Z", 10)
	reportViaAPI(t, router, codeID, "eq-1", "2026-07-20T00:00:00Z", 14)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/orgs/org-1/failures", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []failureRecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "2026-07-20T00:00:00Z", records[0].FailureDate, "newest first")
	assert.Equal(t, "BRG-01", records[0].FailureCode)

	// Scoped reads never leak across organizations.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/orgs/org-2/failures", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var other []failureRecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &other))
	assert.Empty(t, other)
}

func TestReportFailureValidationStatus(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/failures", map[string]any{
		"failureCodeId": "fc-1",
		"failureDate":   "2026-05-10T00:00:00Z",
		"reportedBy":    "tech-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFailureNotFound(t *testing.T) {
	router := setupRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/orgs/org-1/failures/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEquipmentMetricsEndpoint(t *testing.T) {
	router := setupRouter(t)
	codeID := createCodeViaAPI(t, router)
	reportViaAPI(t, router, codeID, "eq-1", "2026-05-10T00:00:00Z", 10)
	reportViaAPI(t, router, codeID, "eq-1", "2026-07-20T00:00:00Z", 14)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/orgs/org-1/metrics/equipment/eq-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		HasData bool `json:"hasData"`
		Metrics struct {
			FailureCount int
			MTBFHours    float64
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.HasData)
	assert.Equal(t, 2, payload.Metrics.FailureCount)
	assert.Equal(t, 4380.0, payload.Metrics.MTBFHours)

	// No data is an explicit claim, not zeros.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/orgs/org-1/metrics/equipment/eq-unknown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hasData":false}`, rec.Body.String())
}

func TestAnalysisWorkflowEndpoints(t *testing.T) {
	router := setupRouter(t)
	codeID := createCodeViaAPI(t, router)
	recordID := reportViaAPI(t, router, codeID, "eq-1", "2026-05-10T00:00:00Z", 10)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/analyses", map[string]any{
		"failureRecordId":  recordID,
		"performedBy":      "eng-1",
		"problemStatement": "pump seized after vibration alarms",
		"correctiveActions": []map[string]any{
			{"action": "replace bearing", "responsible": "tech-2"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var analysis analysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, "draft", analysis.Status)
	assert.Equal(t, "eq-1", analysis.EquipmentID)

	// Skipping straight to complete violates the forward-only lifecycle.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/analyses/"+analysis.ID+"/complete", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/analyses/"+analysis.ID+"/begin", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/analyses/"+analysis.ID+"/items/corrective/0/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/analyses/"+analysis.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, "completed", analysis.Status)

	// Delete of the underlying record now conflicts without force.
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/orgs/org-1/failures/"+recordID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/orgs/org-1/failures/"+recordID+"?force=true", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCatalogCreateEndpoints(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/taxonomy/causes", map[string]any{
		"code":     "RC-LUB",
		"name":     "Lubrication lapse",
		"category": "Process",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cause ports.RootCause
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cause))
	assert.Equal(t, "process", cause.Category, "category is normalized")

	rec = doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/taxonomy/actions", map[string]any{
		"code":     "AT-REPL",
		"name":     "Replace component",
		"category": "repair",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/orgs/org-1/taxonomy/causes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var causes []ports.RootCause
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &causes))
	require.Len(t, causes, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/orgs/org-1/taxonomy/actions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var actions []ports.ActionTaken
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &actions))
	require.Len(t, actions, 1)

	// An invalid root-cause category is rejected up front.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/orgs/org-1/taxonomy/causes", map[string]any{
		"code":     "RC-BAD",
		"name":     "Bad",
		"category": "karma",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVocabEndpoint(t *testing.T) {
	router := setupRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/orgs/org-1/taxonomy/vocab", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload["severities"], 4)
	assert.Contains(t, payload["failureCategories"], "mechanical")
}
