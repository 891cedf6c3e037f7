package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ignite/outreach-planner/internal/costing"
	"github.com/ignite/outreach-planner/internal/pkg/logger"
)

// scenarioFile is the on-disk shape of the scenario store.
type scenarioFile struct {
	LastUpdated     string                          `json:"last_updated"`
	CurrentScenario string                          `json:"current_scenario"`
	Scenarios       map[string]costing.CostScenario `json:"scenarios"`
}

// ScenarioStore persists cost scenarios as a JSON file so that scenario
// edits and the active selection survive restarts.
type ScenarioStore struct {
	path string
}

// NewScenarioStore creates a file-backed scenario store at path.
func NewScenarioStore(path string) *ScenarioStore {
	return &ScenarioStore{path: path}
}

// Load reads the stored scenarios into the registry. A missing file is not
// an error: the registry keeps its builtin defaults and the file is created
// on the next save.
func (s *ScenarioStore) Load(reg *costing.Registry, defaultScenario string) error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if defaultScenario != "" {
			if err := reg.SetCurrent(defaultScenario); err != nil {
				return fmt.Errorf("setting default scenario: %w", err)
			}
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading scenario file: %w", err)
	}

	var file scenarioFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing scenario file: %w", err)
	}

	scenarios := make([]costing.CostScenario, 0, len(file.Scenarios))
	for name, sc := range file.Scenarios {
		if sc.Name == "" {
			sc.Name = name
		}
		scenarios = append(scenarios, sc)
	}
	reg.Replace(scenarios, file.CurrentScenario)
	logger.Info("cost scenarios loaded",
		"file", s.path,
		"count", len(scenarios),
		"current", reg.CurrentName())
	return nil
}

// Save writes the registry's scenarios and active selection to disk. The
// write goes through a temp file and rename so a crash mid-write never
// leaves a truncated store.
func (s *ScenarioStore) Save(reg *costing.Registry) error {
	file := scenarioFile{
		LastUpdated:     time.Now().UTC().Format(time.RFC3339),
		CurrentScenario: reg.CurrentName(),
		Scenarios:       make(map[string]costing.CostScenario),
	}
	for _, sc := range reg.List() {
		file.Scenarios[sc.Name] = sc
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling scenarios: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating scenario dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing scenario file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing scenario file: %w", err)
	}
	return nil
}

// Attach wires the store as the registry's persistence hook so every
// mutation is flushed to disk.
func (s *ScenarioStore) Attach(reg *costing.Registry) {
	reg.SetOnChange(func() {
		if err := s.Save(reg); err != nil {
			logger.Error("persisting cost scenarios failed", "error", err.Error())
		}
	})
}
