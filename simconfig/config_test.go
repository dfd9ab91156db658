package simconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AGAPIA/VirtualOrganisms/simconfig"
)

func TestDefaultConfig(t *testing.T) {
	cfg := simconfig.Default()
	assert.Equal(t, 20, cfg.Rows)
	assert.Equal(t, 20, cfg.Cols)
	assert.Equal(t, simconfig.TwoWay, cfg.Regime)
	assert.Equal(t, 100.0, cfg.MaxFlowPerCell)
	assert.Equal(t, 5, cfg.MaxHopDistance)
}

func TestOptionsOverrideDefaults(t *testing.T) {
	cfg := simconfig.Default(
		simconfig.WithDimensions(10, 10),
		simconfig.WithMaxHopDistance(3),
		simconfig.WithRegime(simconfig.FourWay),
	)
	assert.Equal(t, 10, cfg.Rows)
	assert.Equal(t, 3, cfg.MaxHopDistance)
	assert.Equal(t, simconfig.FourWay, cfg.Regime)
}

func TestCostLookup(t *testing.T) {
	cfg := simconfig.Default(simconfig.WithElasticEconomics(2.0, map[byte]float64{'4': 3.0}))
	assert.Equal(t, 3.0, cfg.Cost('4'))
	assert.Equal(t, 0.0, cfg.Cost('x'))
}
