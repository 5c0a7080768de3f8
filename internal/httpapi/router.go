package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/taxonomy"
)

// NewRouter builds the read/report HTTP surface. Presentation formatting
// stays on the client; handlers ship plain JSON records.
func NewRouter(rel *reliability.Service, tax *taxonomy.Service) http.Handler {
	h := &handler{reliability: rel, taxonomy: tax}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)

	r.Route("/api/v1/orgs/{org}", func(r chi.Router) {
		r.Route("/failures", func(r chi.Router) {
			r.Get("/", h.listFailures)
			r.Post("/", h.reportFailure)
			r.Get("/{id}", h.getFailure)
			r.Delete("/{id}", h.deleteFailure)
			r.Get("/{id}/analyses", h.listFailureAnalyses)
		})

		r.Route("/analyses", func(r chi.Router) {
			r.Get("/", h.listAnalyses)
			r.Post("/", h.startAnalysis)
			r.Get("/{id}", h.getAnalysis)
			r.Post("/{id}/begin", h.beginAnalysis)
			r.Post("/{id}/complete", h.completeAnalysis)
			r.Post("/{id}/verify", h.verifyAnalysis)
			r.Post("/{id}/items/{list}/{index}/complete", h.completeActionItem)
		})

		r.Get("/metrics/equipment/{equipmentID}", h.equipmentMetrics)
		r.Get("/metrics/fleet", h.fleetMetrics)
		r.Get("/trends/{equipmentID}", h.monthlyTrend)

		r.Get("/stats/codes", h.codeStats)
		r.Get("/stats/equipment", h.equipmentStats)
		r.Get("/stats/fleet", h.fleetOverview)

		r.Route("/taxonomy", func(r chi.Router) {
			r.Get("/codes", h.listFailureCodes)
			r.Post("/codes", h.createFailureCode)
			r.Get("/causes", h.listRootCauses)
			r.Post("/causes", h.createRootCause)
			r.Get("/actions", h.listActionTaken)
			r.Post("/actions", h.createActionTaken)
			r.Get("/vocab", h.vocabularies)
		})
	})

	return r
}
