package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ignite/outreach-planner/internal/content"
	"github.com/ignite/outreach-planner/internal/costing"
	"github.com/ignite/outreach-planner/internal/domain"
	"github.com/ignite/outreach-planner/internal/pipeline"
	"github.com/ignite/outreach-planner/internal/storage"
)

func main() {
	var (
		profilesPath   = flag.String("profiles", "", "CSV file of customer profiles (customer_id,name,category,upsell_eligible,upsell_products)")
		classification = flag.String("classification", "information", "letter classification: regulatory, promotional or information")
		confidence     = flag.Float64("confidence", 0.9, "classifier confidence to record in the report")
		scenario       = flag.String("scenario", "", "cost scenario to use (default: current)")
		scenariosFile  = flag.String("scenarios-file", "", "JSON scenario store to load before planning")
		outPath        = flag.String("out", "", "write the batch report to this file instead of stdout")
		workers        = flag.Int("workers", 8, "parallel planning workers")
	)
	flag.Parse()

	if *profilesPath == "" {
		fmt.Fprintln(os.Stderr, "usage: batch-runner -profiles customers.csv [-classification regulatory]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	letter := domain.LetterClassification{
		Classification: domain.MessageClassification(*classification),
		Confidence:     *confidence,
	}
	if !letter.Classification.Valid() {
		fatal("unknown classification %q", *classification)
	}

	profiles, err := readProfiles(*profilesPath)
	if err != nil {
		fatal("reading profiles: %v", err)
	}

	scenarios := costing.NewRegistry()
	if *scenariosFile != "" {
		if err := storage.NewScenarioStore(*scenariosFile).Load(scenarios, ""); err != nil {
			fatal("loading scenarios: %v", err)
		}
	}
	if *scenario != "" {
		if err := scenarios.SetCurrent(*scenario); err != nil {
			fatal("selecting scenario: %v", err)
		}
	}

	engine := pipeline.NewEngine(scenarios, content.NewTemplateGenerator(), *workers)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	started := time.Now()
	result, err := engine.PlanBatch(ctx, profiles, letter)
	if err != nil {
		fatal("batch planning: %v", err)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatal("creating output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fatal("writing report: %v", err)
	}

	fmt.Fprintf(os.Stderr, "planned %d customers in %s (scenario %s, saved %.2f vs letters-only baseline)\n",
		len(result.Plans), time.Since(started).Round(time.Millisecond),
		result.Scenario, result.Cost.Savings.Cost)
}

// readProfiles parses the customer CSV. A header row is detected by the
// customer_id column name and skipped.
func readProfiles(path string) ([]domain.CustomerProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var profiles []domain.CustomerProfile
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "customer_id") {
			continue
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("line %d: expected at least 3 columns, got %d", line, len(record))
		}

		p := domain.CustomerProfile{
			CustomerID: strings.TrimSpace(record[0]),
			Name:       strings.TrimSpace(record[1]),
			Category:   domain.CustomerCategory(strings.TrimSpace(record[2])),
		}
		if len(record) > 3 {
			p.UpsellEligible, _ = strconv.ParseBool(strings.TrimSpace(record[3]))
		}
		if len(record) > 4 && strings.TrimSpace(record[4]) != "" {
			for _, prod := range strings.Split(record[4], ";") {
				if prod = strings.TrimSpace(prod); prod != "" {
					p.UpsellProducts = append(p.UpsellProducts, prod)
				}
			}
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "FATAL: "+format+"\n", args...)
	os.Exit(1)
}
