package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/outreach-planner/internal/costing"
)

func TestScenarioStoreSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")
	store := NewScenarioStore(path)

	reg := costing.NewRegistry()
	require.NoError(t, reg.SetCurrent(costing.ScenarioConservative))

	custom := costing.CostScenario{Name: "pilot", Description: "Pilot pricing"}
	custom.Rates.Email = 0.01
	require.NoError(t, reg.Upsert(custom))

	require.NoError(t, store.Save(reg))

	// Fresh registry picks up both the custom scenario and the selection.
	reg2 := costing.NewRegistry()
	require.NoError(t, store.Load(reg2, ""))

	assert.Equal(t, costing.ScenarioConservative, reg2.CurrentName())
	got, err := reg2.Get("pilot")
	require.NoError(t, err)
	assert.Equal(t, 0.01, got.Rates.Email)

	// Builtins survive the round trip.
	_, err = reg2.Get(costing.ScenarioRealistic)
	assert.NoError(t, err)
}

func TestScenarioStoreLoadMissingFile(t *testing.T) {
	store := NewScenarioStore(filepath.Join(t.TempDir(), "missing.json"))
	reg := costing.NewRegistry()

	require.NoError(t, store.Load(reg, costing.ScenarioOptimistic))
	assert.Equal(t, costing.ScenarioOptimistic, reg.CurrentName())
}

func TestScenarioStoreFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")
	store := NewScenarioStore(path)
	reg := costing.NewRegistry()
	require.NoError(t, store.Save(reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var file scenarioFile
	require.NoError(t, json.Unmarshal(data, &file))
	assert.NotEmpty(t, file.LastUpdated)
	assert.Equal(t, costing.ScenarioRealistic, file.CurrentScenario)
	assert.Len(t, file.Scenarios, 3)
}

func TestScenarioStoreAttachPersistsMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.json")
	store := NewScenarioStore(path)
	reg := costing.NewRegistry()
	store.Attach(reg)

	require.NoError(t, reg.SetCurrent(costing.ScenarioOptimistic))

	reg2 := costing.NewRegistry()
	require.NoError(t, store.Load(reg2, ""))
	assert.Equal(t, costing.ScenarioOptimistic, reg2.CurrentName())
}
