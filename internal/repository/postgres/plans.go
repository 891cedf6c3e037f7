package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ignite/outreach-planner/internal/domain"
	"github.com/ignite/outreach-planner/internal/pipeline"
)

// ErrNotFound is returned when a requested batch or plan does not exist.
var ErrNotFound = fmt.Errorf("not found: %w", domain.ErrInvalidInput)

// BatchRecord is a stored batch summary row.
type BatchRecord struct {
	ID             string                       `json:"id"`
	Classification domain.MessageClassification `json:"classification"`
	Scenario       string                       `json:"scenario"`
	CustomerCount  int                          `json:"customer_count"`
	TotalCost      float64                      `json:"total_cost"`
	BaselineCost   float64                      `json:"baseline_cost"`
	CostSavings    float64                      `json:"cost_savings"`
	CreatedAt      time.Time                    `json:"created_at"`
}

// PlanRepo persists batch planning runs against PostgreSQL. The full batch
// report is stored as JSONB alongside queryable summary columns, and each
// customer plan gets its own row for per-customer history lookups.
type PlanRepo struct{ db *sql.DB }

// NewPlanRepo creates a Postgres-backed plan repository.
func NewPlanRepo(db *sql.DB) *PlanRepo { return &PlanRepo{db: db} }

// SaveBatch stores a batch result and its per-customer plans in one
// transaction.
func (r *PlanRepo) SaveBatch(ctx context.Context, result *pipeline.BatchResult) error {
	report, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling batch report: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save batch: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO plan_batches (id, classification, scenario, customer_count,
		       total_cost, baseline_cost, cost_savings, report, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, result.BatchID, string(result.Classification), result.Scenario,
		len(result.Plans), result.Cost.TotalCost,
		result.Cost.Baseline.TotalCost, result.Cost.Savings.Cost,
		report, result.GeneratedAt)
	if err != nil {
		return fmt.Errorf("insert batch %s: %w", result.BatchID, err)
	}

	for _, p := range result.Plans {
		planJSON, err := json.Marshal(p.Plan)
		if err != nil {
			return fmt.Errorf("marshaling plan for %s: %w", p.CustomerID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO communication_plans (id, batch_id, customer_id, category,
			       classification, channel_count, total_cost, plan)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, p.Plan.ID, result.BatchID, p.CustomerID, string(p.Plan.Category),
			string(p.Plan.Classification), len(p.Plan.Steps),
			p.Cost.TotalCost, planJSON)
		if err != nil {
			return fmt.Errorf("insert plan for %s: %w", p.CustomerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save batch: %w", err)
	}
	return nil
}

// GetBatch returns the full stored batch report.
func (r *PlanRepo) GetBatch(ctx context.Context, batchID string) (*pipeline.BatchResult, error) {
	var report []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT report FROM plan_batches WHERE id = $1
	`, batchID).Scan(&report)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get batch %s: %w", batchID, err)
	}

	var result pipeline.BatchResult
	if err := json.Unmarshal(report, &result); err != nil {
		return nil, fmt.Errorf("decoding batch %s: %w", batchID, err)
	}
	return &result, nil
}

// ListBatches returns batch summaries newest first.
func (r *PlanRepo) ListBatches(ctx context.Context, limit, offset int) ([]BatchRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, classification, scenario, customer_count,
		       total_cost, baseline_cost, cost_savings, created_at
		FROM plan_batches
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []BatchRecord
	for rows.Next() {
		var b BatchRecord
		if err := rows.Scan(
			&b.ID, &b.Classification, &b.Scenario, &b.CustomerCount,
			&b.TotalCost, &b.BaselineCost, &b.CostSavings, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan batch row: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CustomerPlans returns a customer's stored plans newest first.
func (r *PlanRepo) CustomerPlans(ctx context.Context, customerID string, limit int) ([]domain.CommunicationPlan, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.plan
		FROM communication_plans p
		JOIN plan_batches b ON b.id = p.batch_id
		WHERE p.customer_id = $1
		ORDER BY b.created_at DESC LIMIT $2
	`, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans for %s: %w", customerID, err)
	}
	defer rows.Close()

	var out []domain.CommunicationPlan
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		var plan domain.CommunicationPlan
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("decoding plan for %s: %w", customerID, err)
		}
		out = append(out, plan)
	}
	return out, rows.Err()
}
