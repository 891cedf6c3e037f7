package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/outreach-planner/internal/costing"
	"github.com/ignite/outreach-planner/internal/domain"
	"github.com/ignite/outreach-planner/internal/pipeline"
	"github.com/ignite/outreach-planner/internal/pkg/logger"
	"github.com/ignite/outreach-planner/internal/repository/postgres"
	"github.com/ignite/outreach-planner/internal/storage"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	engine    *pipeline.Engine
	scenarios *costing.Registry
	cache     *storage.BatchCache
	repo      *postgres.PlanRepo
	archive   *storage.Archive
}

// NewHandlers creates a new Handlers instance
func NewHandlers(engine *pipeline.Engine, scenarios *costing.Registry) *Handlers {
	return &Handlers{engine: engine, scenarios: scenarios}
}

// SetBatchCache sets the optional Redis batch result cache
func (h *Handlers) SetBatchCache(cache *storage.BatchCache) {
	h.cache = cache
}

// SetPlanRepo sets the optional Postgres plan repository
func (h *Handlers) SetPlanRepo(repo *postgres.PlanRepo) {
	h.repo = repo
}

// SetArchive sets the optional S3 batch report archive
func (h *Handlers) SetArchive(archive *storage.Archive) {
	h.archive = archive
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck returns service health status
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"time":             time.Now().UTC().Format(time.RFC3339),
		"current_scenario": h.scenarios.CurrentName(),
	})
}

// PlanRequest is the body for single-customer planning.
type PlanRequest struct {
	Profile domain.CustomerProfile      `json:"profile"`
	Letter  domain.LetterClassification `json:"letter"`
}

// HandleCreatePlan plans communications for one customer.
func (h *Handlers) HandleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.engine.Plan(r.Context(), req.Profile, req.Letter, h.scenarios.Snapshot())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("plan failed", "customer_id", req.Profile.CustomerID, "error", err.Error())
		respondError(w, http.StatusInternalServerError, "planning failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// BatchRequest is the body for batch planning.
type BatchRequest struct {
	Profiles []domain.CustomerProfile    `json:"profiles"`
	Letter   domain.LetterClassification `json:"letter"`
}

// HandleCreateBatch plans communications for a batch of customers, then
// caches, persists and archives the result where those layers are wired.
func (h *Handlers) HandleCreateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.engine.PlanBatch(r.Context(), req.Profiles, req.Letter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("batch planning failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "batch planning failed")
		return
	}

	ctx := r.Context()
	if h.cache != nil {
		if err := h.cache.Put(ctx, &result); err != nil {
			logger.Warn("batch cache write failed", "batch_id", result.BatchID, "error", err.Error())
		}
	}
	if h.repo != nil {
		if err := h.repo.SaveBatch(ctx, &result); err != nil {
			logger.Error("batch persistence failed", "batch_id", result.BatchID, "error", err.Error())
		}
	}
	if h.archive != nil {
		key, err := h.archive.SaveBatchReport(ctx, &result)
		if err != nil {
			logger.Warn("batch archive failed", "batch_id", result.BatchID, "error", err.Error())
		} else {
			logger.Info("batch report archived", "batch_id", result.BatchID, "key", key)
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetBatch returns a previously planned batch, from cache when
// available, otherwise from the database.
func (h *Handlers) HandleGetBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	if h.cache != nil {
		result, err := h.cache.Get(r.Context(), batchID)
		if err == nil {
			respondJSON(w, http.StatusOK, result)
			return
		}
		if !errors.Is(err, storage.ErrBatchNotFound) {
			logger.Warn("batch cache read failed", "batch_id", batchID, "error", err.Error())
		}
	}

	if h.repo != nil {
		result, err := h.repo.GetBatch(r.Context(), batchID)
		if err == nil {
			respondJSON(w, http.StatusOK, result)
			return
		}
		if !errors.Is(err, postgres.ErrNotFound) {
			logger.Error("batch lookup failed", "batch_id", batchID, "error", err.Error())
			respondError(w, http.StatusInternalServerError, "batch lookup failed")
			return
		}
	}

	respondError(w, http.StatusNotFound, "batch not found")
}

// HandleListBatches returns stored batch summaries.
func (h *Handlers) HandleListBatches(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondJSON(w, http.StatusOK, []postgres.BatchRecord{})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	batches, err := h.repo.ListBatches(r.Context(), limit, offset)
	if err != nil {
		logger.Error("list batches failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "listing batches failed")
		return
	}
	if batches == nil {
		batches = []postgres.BatchRecord{}
	}
	respondJSON(w, http.StatusOK, batches)
}

// HandleCustomerPlans returns a customer's stored plan history.
func (h *Handlers) HandleCustomerPlans(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondJSON(w, http.StatusOK, []domain.CommunicationPlan{})
		return
	}

	customerID := chi.URLParam(r, "customerID")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	plans, err := h.repo.CustomerPlans(r.Context(), customerID, limit)
	if err != nil {
		logger.Error("customer plan lookup failed", "customer_id", customerID, "error", err.Error())
		respondError(w, http.StatusInternalServerError, "plan lookup failed")
		return
	}
	if plans == nil {
		plans = []domain.CommunicationPlan{}
	}
	respondJSON(w, http.StatusOK, plans)
}

// HandleListScenarios returns all cost scenarios and the current selection.
func (h *Handlers) HandleListScenarios(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"current":   h.scenarios.CurrentName(),
		"scenarios": h.scenarios.List(),
	})
}

// HandleGetScenario returns one named scenario.
func (h *Handlers) HandleGetScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	scenario, err := h.scenarios.Get(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, scenario)
}

// HandleUpsertScenario adds or replaces a named scenario.
func (h *Handlers) HandleUpsertScenario(w http.ResponseWriter, r *http.Request) {
	var scenario costing.CostScenario
	if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	scenario.Name = chi.URLParam(r, "name")

	if err := h.scenarios.Upsert(scenario); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Info("cost scenario upserted", "scenario", scenario.Name)
	respondJSON(w, http.StatusOK, scenario)
}

// SwitchScenarioRequest is the body for changing the active scenario.
type SwitchScenarioRequest struct {
	Scenario string `json:"scenario"`
}

// HandleSwitchScenario changes the active cost scenario. Switching to an
// unknown scenario is rejected and leaves the selection unchanged.
func (h *Handlers) HandleSwitchScenario(w http.ResponseWriter, r *http.Request) {
	var req SwitchScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.scenarios.SetCurrent(req.Scenario); err != nil {
		if errors.Is(err, domain.ErrUnknownScenario) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("cost scenario switched", "scenario", req.Scenario)
	respondJSON(w, http.StatusOK, map[string]string{"current": req.Scenario})
}
