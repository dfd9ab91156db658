package board

import (
	"math/rand"

	"k8s.io/klog/v2"

	"github.com/AGAPIA/VirtualOrganisms/core"
	"github.com/AGAPIA/VirtualOrganisms/language"
	"github.com/AGAPIA/VirtualOrganisms/simconfig"
)

// Board owns the grid and the sources map, enforces language compliance,
// and runs the per-tick flow simulation (spec §3, §4.3-§4.5).
type Board struct {
	Config simconfig.Config

	Grid *core.Grid
	Root core.Position

	Sources map[core.Position]*core.SourceInfo

	// RentedResources maps a rented cell's position to the symbol placed
	// there by the elastic optimizer (spec §3, §4.8).
	RentedResources map[core.Position]byte

	ticksRemainingToUpdateSources int

	rowOracle *language.Oracle
	colOracle *language.Oracle

	topology TreeTopology

	flowStats *FlowStatistics
}

// NewBoard allocates an empty R×C board per cfg and sets topology by
// cfg.Regime.
func NewBoard(cfg simconfig.Config) *Board {
	b := &Board{
		Config:          cfg,
		Grid:            core.NewGrid(cfg.Rows, cfg.Cols, cfg.MaxFlowPerCell),
		Root:            core.InvalidPos,
		Sources:         make(map[core.Position]*core.SourceInfo),
		RentedResources: make(map[core.Position]byte),
		rowOracle:       language.NewOracle(),
		colOracle:       language.NewOracle(),
		flowStats:       NewFlowStatistics(cfg.SimulationWindowSize),
	}
	if cfg.Regime == simconfig.FourWay {
		b.topology = &fourWayTopology{}
	} else {
		b.topology = &twoWayTopology{}
	}

	return b
}

// SetRoot designates pos as the root. The caller must have already placed
// a symbol there; SetRoot does not itself validate occupancy (that is
// DiscoverStructure's job, run immediately after).
func (b *Board) SetRoot(pos core.Position) {
	b.Root = pos
}

// ChildDirs returns the fixed per-regime direction order used to reach a
// cell's children, exposed so reorg/elastic can DFS the tree themselves.
func (b *Board) ChildDirs() []core.Direction {
	return b.topology.ChildDirs()
}

// DiscoverStructure recomputes every cell's links, distance_to_root, and
// (4-way regime) cell type from scratch. Any caller that writes a symbol
// directly, or through GenerateRow/GenerateCol (which do not rediscover),
// must invoke this afterward; TryApplySubtree invokes it itself
// (spec §4.3).
func (b *Board) DiscoverStructure() error {
	return b.topology.DiscoverStructure(b.Grid, b.Root)
}

// RootCell returns the root cell, or nil if no root has been set or its
// position is no longer occupied.
func (b *Board) RootCell() *core.Cell {
	if !b.Root.IsValid() {
		return nil
	}
	cell := b.Grid.At(b.Root)
	if cell == nil || cell.IsFree() {
		return nil
	}

	return cell
}

// IsPosFree reports whether pos is free on the board.
func (b *Board) IsPosFree(pos core.Position) bool {
	return b.Grid.IsFree(pos)
}

// CountNodes returns the number of occupied cells (uncached, O(R*C)).
func (b *Board) CountNodes() int {
	return b.Grid.CountNodes()
}

// IsBoardCompliant checks whole-board language compliance, or just the
// indicated single row/column if onlyRow/onlyCol are non-negative
// (spec §4.2: is_board_compliant(only_row?, only_col?)).
func (b *Board) IsBoardCompliant(onlyRow, onlyCol int) bool {
	if onlyRow >= 0 {
		return b.rowOracle.IsRowCompliant(symbolsOf(b.Grid.Row(onlyRow)))
	}
	if onlyCol >= 0 {
		return b.colOracle.IsColCompliant(symbolsOf(b.Grid.Column(onlyCol)))
	}

	for r := 0; r < b.Grid.Rows; r++ {
		if !b.rowOracle.IsRowCompliant(symbolsOf(b.Grid.Row(r))) {
			return false
		}
	}
	for c := 0; c < b.Grid.Cols; c++ {
		if !b.colOracle.IsColCompliant(symbolsOf(b.Grid.Column(c))) {
			return false
		}
	}

	return true
}

func symbolsOf(cells []*core.Cell) []byte {
	out := make([]byte, len(cells))
	for i, c := range cells {
		out[i] = c.Symbol
	}

	return out
}

// AddSource registers a new SourceInfo at pos. It enforces §3 lifecycle:
// DuplicateSource if pos is already mapped, InvalidPosition if pos isn't a
// VO cell.
func (b *Board) AddSource(pos core.Position, info core.SourceInfo) error {
	if !b.Grid.IsValid(pos) || b.Grid.IsFree(pos) {
		return core.ErrInvalidPosition
	}
	if _, exists := b.Sources[pos]; exists {
		return core.ErrDuplicateSource
	}
	if info.ConnectedTo == nil {
		info.ConnectedTo = make(map[core.Position]core.LinkInfo)
	}
	cp := info
	b.Sources[pos] = &cp
	klog.V(2).Infof("board: added %s source at %s (power=%.2f)", info.SourceType, pos, info.CurrentPower)

	return nil
}

// ModifySource updates the SourceInfo at pos in place, preserving existing
// connections unless the new capacity would fall below UsedPower, in which
// case the caller must tear down connections first (spec §3 lifecycle).
func (b *Board) ModifySource(pos core.Position, info core.SourceInfo) error {
	existing, ok := b.Sources[pos]
	if !ok {
		return core.ErrSourceNotFound
	}
	if info.CurrentPower < existing.UsedPower()-core.Epsilon {
		return core.ErrCapacityExceeded
	}
	existing.CurrentPower = info.CurrentPower
	existing.PowerTarget = info.PowerTarget
	existing.ServiceType = info.ServiceType

	return nil
}

// RemoveSource deletes the SourceInfo at pos. Tearing down its connections
// symmetrically is the caller's responsibility (psm.Manager.OnItemRemoved)
// since Board does not track the publisher/subscriber partition.
func (b *Board) RemoveSource(pos core.Position) error {
	if _, ok := b.Sources[pos]; !ok {
		return core.ErrSourceNotFound
	}
	delete(b.Sources, pos)

	return nil
}

// SelectRandomSource returns a uniformly random source position, or
// InvalidPos if none exist.
func (b *Board) SelectRandomSource(rng *rand.Rand) core.Position {
	if len(b.Sources) == 0 {
		return core.InvalidPos
	}
	keys := make([]core.Position, 0, len(b.Sources))
	for k := range b.Sources {
		keys = append(keys, k)
	}

	return keys[rng.Intn(len(keys))]
}

// AddRentedResource records pos/symbol as an elastically-rented cell.
func (b *Board) AddRentedResource(pos core.Position, symbol byte) {
	b.RentedResources[pos] = symbol
	if cell := b.Grid.At(pos); cell != nil {
		cell.Rented = true
	}
}

// RemoveRentedResource un-marks pos as rented. Returns false if pos wasn't
// rented.
func (b *Board) RemoveRentedResource(pos core.Position) bool {
	if _, ok := b.RentedResources[pos]; !ok {
		return false
	}
	delete(b.RentedResources, pos)
	if cell := b.Grid.At(pos); cell != nil {
		cell.Rented = false
	}

	return true
}

// NumAvailableResourcesToRent reports how many more cells the elastic
// optimizer may still rent under Config.MaxResourcesToRent.
func (b *Board) NumAvailableResourcesToRent() int {
	remaining := b.Config.MaxResourcesToRent - len(b.RentedResources)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// FlowStats exposes the board's flow statistics window.
func (b *Board) FlowStats() *FlowStatistics {
	return b.flowStats
}

// LastSimulationAvgFlowPerUnit returns the mean flow per tick across the
// last simulation window.
func (b *Board) LastSimulationAvgFlowPerUnit() float64 {
	return b.flowStats.Average()
}

// Clone deep-copies the board: grid, sources, and rented resources. Used
// to build the private board-view snapshot non-root cells evaluate
// against during reorganization (spec §5).
func (b *Board) Clone() *Board {
	out := &Board{
		Config:          b.Config,
		Grid:            b.Grid.Clone(),
		Root:            b.Root,
		Sources:         make(map[core.Position]*core.SourceInfo, len(b.Sources)),
		RentedResources: make(map[core.Position]byte, len(b.RentedResources)),
		rowOracle:       b.rowOracle,
		colOracle:       b.colOracle,
		topology:        b.topology,
		flowStats:       NewFlowStatistics(b.Config.SimulationWindowSize),
	}
	for pos, info := range b.Sources {
		cp := *info
		cp.ConnectedTo = make(map[core.Position]core.LinkInfo, len(info.ConnectedTo))
		for k, v := range info.ConnectedTo {
			cp.ConnectedTo[k] = v
		}
		out.Sources[pos] = &cp
	}
	for pos, sym := range b.RentedResources {
		out.RentedResources[pos] = sym
	}

	return out
}
