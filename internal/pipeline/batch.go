package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/outreach-planner/internal/costing"
	"github.com/ignite/outreach-planner/internal/domain"
)

const defaultWorkers = 8

// BatchResult is the complete outcome of planning one letter for a batch of
// customers: every individual plan, the batch cost comparison, summary
// statistics, and derived recommendations.
type BatchResult struct {
	BatchID         string                       `json:"batch_id"`
	Classification  domain.MessageClassification `json:"letter_classification"`
	GeneratedAt     time.Time                    `json:"generated_at"`
	Scenario        string                       `json:"cost_scenario"`
	Plans           []PlanResult                 `json:"individual_plans"`
	Cost            costing.BatchCost            `json:"cost_analysis"`
	Summary         BatchSummary                 `json:"batch_summary"`
	Recommendations []string                     `json:"recommendations"`
}

// BatchSummary carries the per-batch statistics the dashboard consumes.
type BatchSummary struct {
	TotalCustomers         int                             `json:"total_customers_processed"`
	CustomerDistribution   map[domain.CustomerCategory]int `json:"customer_distribution"`
	ChannelPopularity      map[domain.Channel]int          `json:"channel_popularity"`
	MostPopularChannel     domain.Channel                  `json:"most_popular_channel"`
	UpsellOpportunities    int                             `json:"upsell_opportunities"`
	AvgChannelsPerCustomer float64                         `json:"average_channels_per_customer"`
	DigitalPercent         float64                         `json:"digital_percentage"`
	TraditionalPercent     float64                         `json:"traditional_percentage"`
}

// PlanBatch plans one letter for every customer in the batch. The batch is
// an order-independent parallel map: a fixed worker pool processes
// customers concurrently, each worker sharing the single immutable scenario
// snapshot taken at batch start, and results are reassembled in input
// order. All profiles are validated up front; an invalid profile rejects
// the whole batch before any planning starts. An empty batch yields a
// zero-valued aggregate.
func (e *Engine) PlanBatch(ctx context.Context, profiles []domain.CustomerProfile,
	letter domain.LetterClassification) (BatchResult, error) {

	scenario := e.scenarios.Snapshot()

	result := BatchResult{
		BatchID:        uuid.NewString(),
		Classification: letter.Classification,
		GeneratedAt:    time.Now().UTC(),
		Scenario:       scenario.Name,
	}

	if !letter.Classification.Valid() {
		return BatchResult{}, fmt.Errorf("%w: missing or unknown classification %q",
			domain.ErrInvalidInput, letter.Classification)
	}
	for _, p := range profiles {
		if err := validate(p, letter); err != nil {
			return BatchResult{}, fmt.Errorf("customer %q: %w", p.CustomerID, err)
		}
	}

	if len(profiles) == 0 {
		cost, _ := costing.EvaluateBatch(nil, scenario)
		result.Cost = cost
		result.Summary = summarize(nil)
		return result, nil
	}

	type job struct {
		idx     int
		profile domain.CustomerProfile
	}

	jobs := make(chan job)
	results := make([]PlanResult, len(profiles))
	errs := make([]error, len(profiles))

	workers := e.workers
	if workers > len(profiles) {
		workers = len(profiles)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx], errs[j.idx] = e.Plan(ctx, j.profile, letter, scenario)
			}
		}()
	}

	for i, p := range profiles {
		jobs <- job{idx: i, profile: p}
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return BatchResult{}, fmt.Errorf("plan customer %q: %w", profiles[i].CustomerID, err)
		}
	}

	planCosts := make([]costing.PlanCost, len(results))
	for i, r := range results {
		planCosts[i] = r.Cost
	}
	cost, err := costing.EvaluateBatch(planCosts, scenario)
	if err != nil {
		return BatchResult{}, err
	}

	result.Plans = results
	result.Cost = cost
	result.Summary = summarize(results)
	result.Recommendations = recommend(cost, result.Summary)
	return result, nil
}

func summarize(plans []PlanResult) BatchSummary {
	s := BatchSummary{
		TotalCustomers:       len(plans),
		CustomerDistribution: make(map[domain.CustomerCategory]int),
		ChannelPopularity:    make(map[domain.Channel]int),
	}

	totalSteps := 0
	digital := 0
	traditional := 0
	for _, p := range plans {
		s.CustomerDistribution[p.Plan.Category]++
		if p.Plan.Upsell.Included {
			s.UpsellOpportunities++
		}
		for _, step := range p.Plan.Steps {
			s.ChannelPopularity[step.Channel]++
			totalSteps++
			switch step.Channel {
			case domain.ChannelEmail, domain.ChannelInApp, domain.ChannelSMS, domain.ChannelVoiceNote:
				digital++
			case domain.ChannelLetter, domain.ChannelPhone:
				traditional++
			}
		}
	}

	if len(plans) > 0 {
		s.AvgChannelsPerCustomer = float64(totalSteps) / float64(len(plans))
	}
	if totalSteps > 0 {
		s.DigitalPercent = float64(digital) / float64(totalSteps) * 100
		s.TraditionalPercent = float64(traditional) / float64(totalSteps) * 100
	}

	best := 0
	for ch, n := range s.ChannelPopularity {
		if n > best || (n == best && s.MostPopularChannel == "") {
			best = n
			s.MostPopularChannel = ch
		}
	}
	return s
}

// recommend derives plain-text guidance from the batch economics. The
// thresholds mirror the ones the business reviews batches against.
func recommend(cost costing.BatchCost, summary BatchSummary) []string {
	var recs []string

	switch {
	case cost.Savings.CostPercent > 70:
		recs = append(recs, fmt.Sprintf("Excellent cost optimization: %.0f%% savings achieved through smart targeting.", cost.Savings.CostPercent))
	case cost.Savings.CostPercent > 50:
		recs = append(recs, fmt.Sprintf("Good cost savings of %.0f%% achieved. Consider further digital adoption.", cost.Savings.CostPercent))
	default:
		recs = append(recs, fmt.Sprintf("Limited savings of %.0f%%. Review customer segmentation strategy.", cost.Savings.CostPercent))
	}

	if cost.Savings.CarbonPercent > 70 {
		recs = append(recs, fmt.Sprintf("Significant environmental impact: %.0f%% carbon reduction.", cost.Savings.CarbonPercent))
	}

	if summary.DigitalPercent > 70 {
		recs = append(recs, fmt.Sprintf("High digital adoption (%.0f%%): consider advanced digital features.", summary.DigitalPercent))
	} else if summary.DigitalPercent < 30 {
		recs = append(recs, "High traditional communication usage: invest in digital education programs.")
	}

	if summary.TotalCustomers > 0 {
		upsellRate := float64(summary.UpsellOpportunities) / float64(summary.TotalCustomers) * 100
		if upsellRate > 40 {
			recs = append(recs, fmt.Sprintf("Strong upsell potential (%.0f%% of customers): prioritize sales follow-up.", upsellRate))
		} else if upsellRate < 10 {
			recs = append(recs, fmt.Sprintf("Low upsell rate (%.0f%%) indicates good vulnerable customer protection.", upsellRate))
		}
	}

	switch summary.MostPopularChannel {
	case domain.ChannelLetter:
		recs = append(recs, "Letter-heavy approach detected: consider digital coaching programs.")
	case domain.ChannelEmail, domain.ChannelInApp:
		recs = append(recs, fmt.Sprintf("%s-first approach working well: maintain digital strategy.", summary.MostPopularChannel))
	}

	return recs
}
