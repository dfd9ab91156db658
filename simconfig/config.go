// Package simconfig centralizes the tunable environment constants of the
// simulation (spec §6): capacities, hop limits, elastic-model economics,
// restructure delay, spawn probabilities, and board dimensions. It follows
// the same functional-option shape as the teacher pack's
// builder.BuilderOption / matrix.Option: a defaulted struct plus small
// Option closures, rather than a config-file library (none of the example
// repos reach for one for in-process tunables).
package simconfig

// Regime selects which structural variant the board runs (spec §1: "The
// two structural regimes ... are treated as a compile-time selection").
type Regime int

const (
	// TwoWay is the left/down tree regime (the original's
	// LEFTRIGHTONLY_MODE, and the one actually compiled in the source).
	TwoWay Regime = iota
	// FourWay is the directional regime with membrane/interior/exterior
	// cell roles (the original's DIRECTIONAL_MODE).
	FourWay
)

// Config holds every tunable constant of §6. Zero-value Config is invalid;
// always obtain one from Default() followed by Options.
type Config struct {
	Regime Regime

	Rows, Cols int // board dimensions, default 20x20

	MaxFlowPerCell float64
	MaxHopDistance int // "never zero" per the Manhattan metric definition

	BenefitPerUnitOfFlow float64
	CostPerResource      map[byte]float64
	MaxResourcesToRent   int

	TicksToDelayDataFlowOnRestructure int

	MinPowerForWirelessSource float64
	MaxPowerForWirelessSource float64

	ProbabilityPublisherSpawn float64 // vs. subscriber spawn, in [0,1]

	PublisherCapacityMin, PublisherCapacityMax   float64
	SubscriberCapacityMin, SubscriberCapacityMax float64

	Alphabet []byte

	MinMembraneSize, MaxMembraneSize int // 4-way regime only

	SimulationWindowSize int // ticks folded into the moving average
}

// Option mutates a Config during construction.
type Option func(*Config)

// Default returns the spec's defaults: 20x20 board, two-way regime,
// max_flow_per_cell=100, max_hop_distance=5, a moving average window of 50
// ticks, and an alphabet of {2,4,7,e}.
func Default(opts ...Option) Config {
	cfg := Config{
		Regime:                            TwoWay,
		Rows:                              20,
		Cols:                              20,
		MaxFlowPerCell:                    100,
		MaxHopDistance:                    5,
		BenefitPerUnitOfFlow:              1.0,
		CostPerResource:                   map[byte]float64{'2': 1, '4': 1, '7': 1, 'e': 1},
		MaxResourcesToRent:                20,
		TicksToDelayDataFlowOnRestructure: 3,
		MinPowerForWirelessSource:         1,
		MaxPowerForWirelessSource:         20,
		ProbabilityPublisherSpawn:         0.5,
		PublisherCapacityMin:              5,
		PublisherCapacityMax:              20,
		SubscriberCapacityMin:             5,
		SubscriberCapacityMax:             20,
		Alphabet:                          []byte{'2', '4', '7', 'e'},
		MinMembraneSize:                   7,
		MaxMembraneSize:                   7,
		SimulationWindowSize:              50,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithRegime selects the two-way or four-way structural regime.
func WithRegime(r Regime) Option {
	return func(c *Config) { c.Regime = r }
}

// WithDimensions sets the board's row and column counts.
func WithDimensions(rows, cols int) Option {
	return func(c *Config) { c.Rows = rows; c.Cols = cols }
}

// WithMaxFlowPerCell sets the per-cell buffer capacity.
func WithMaxFlowPerCell(v float64) Option {
	return func(c *Config) { c.MaxFlowPerCell = v }
}

// WithMaxHopDistance sets the maximum relay hop count honored by the PSM.
func WithMaxHopDistance(v int) Option {
	return func(c *Config) { c.MaxHopDistance = v }
}

// WithElasticEconomics sets benefit-per-unit-of-flow and per-symbol cost.
func WithElasticEconomics(benefitPerUnit float64, costPerResource map[byte]float64) Option {
	return func(c *Config) {
		c.BenefitPerUnitOfFlow = benefitPerUnit
		if costPerResource != nil {
			c.CostPerResource = costPerResource
		}
	}
}

// WithMaxResourcesToRent caps how many cells the elastic optimizer may add.
func WithMaxResourcesToRent(v int) Option {
	return func(c *Config) { c.MaxResourcesToRent = v }
}

// WithRestructureDelay sets the number of ticks a reorganized cell
// suspends data capture.
func WithRestructureDelay(ticks int) Option {
	return func(c *Config) { c.TicksToDelayDataFlowOnRestructure = ticks }
}

// WithSimulationWindowSize sets how many recent ticks feed the moving
// average used by last_simulation_avg_flow_per_unit.
func WithSimulationWindowSize(n int) Option {
	return func(c *Config) { c.SimulationWindowSize = n }
}

// Cost returns the rent cost of symbol, or 0 if unconfigured.
func (c Config) Cost(symbol byte) float64 {
	if v, ok := c.CostPerResource[symbol]; ok {
		return v
	}

	return 0
}
