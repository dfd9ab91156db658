package board

import (
	movingaverage "github.com/RobinUS2/golang-moving-average"

	"github.com/AGAPIA/VirtualOrganisms/core"
)

// OffsetAndSymbol records one cell of a cut subtree, as an offset from the
// subroot together with the symbol and rented flag it carried (spec §4.4).
type OffsetAndSymbol struct {
	RowOffset, ColOffset int
	Symbol               byte
	Rented               bool
}

// SubtreeInfo is the result of CutSubtree: every cell of the detached
// subtree, plus the axis-aligned bounding box of the recorded offsets.
type SubtreeInfo struct {
	Offsets []OffsetAndSymbol

	MinRowOffset, MaxRowOffset int
	MinColOffset, MaxColOffset int
}

func newSubtreeInfo() *SubtreeInfo {
	return &SubtreeInfo{
		MinRowOffset: intMax,
		MinColOffset: intMax,
		MaxRowOffset: intMin,
		MaxColOffset: intMin,
	}
}

const (
	intMax = int(^uint(0) >> 1)
	intMin = -intMax - 1
)

func (s *SubtreeInfo) add(o OffsetAndSymbol) {
	s.Offsets = append(s.Offsets, o)
	if o.RowOffset < s.MinRowOffset {
		s.MinRowOffset = o.RowOffset
	}
	if o.RowOffset > s.MaxRowOffset {
		s.MaxRowOffset = o.RowOffset
	}
	if o.ColOffset < s.MinColOffset {
		s.MinColOffset = o.ColOffset
	}
	if o.ColOffset > s.MaxColOffset {
		s.MaxColOffset = o.ColOffset
	}
}

// SimulationContext supplies per-tick environmental input to the flow
// simulation (spec §4.5): how much a leaf cell captures from outside the
// board this tick. A Board builds its own default context from its
// sources map (see Board.FillSimulationContext); callers evaluating a
// private snapshot during reorganization may substitute their own.
type SimulationContext interface {
	// LeafCaptureValue returns the amount a leaf at pos should capture this
	// tick, and whether pos is recognized as a capturing position at all.
	LeafCaptureValue(pos core.Position) (float64, bool)
}

// mapSimulationContext is the default SimulationContext backed by a plain
// position->value map, used both for the live board and for trial
// snapshots evaluated during reorganization/elastic search.
type mapSimulationContext map[core.Position]float64

func (m mapSimulationContext) LeafCaptureValue(pos core.Position) (float64, bool) {
	v, ok := m[pos]

	return v, ok
}

// FlowStatistics tracks the mean flow recorded at the root across the
// simulation window, backed by a moving average rather than a hand-rolled
// ring buffer (see SPEC_FULL.md Domain Stack).
type FlowStatistics struct {
	avg     *movingaverage.MovingAverage
	samples int
}

// NewFlowStatistics returns a FlowStatistics averaging over the last
// windowSize ticks.
func NewFlowStatistics(windowSize int) *FlowStatistics {
	if windowSize <= 0 {
		windowSize = 1
	}

	return &FlowStatistics{avg: movingaverage.New(windowSize)}
}

// Record folds one tick's root flow into the window.
func (f *FlowStatistics) Record(flow float64) {
	f.avg.Add(flow)
	f.samples++
}

// Average returns the mean flow per tick across the last simulation
// window (last_simulation_avg_flow_per_unit), or 0 if no ticks were
// recorded yet.
func (f *FlowStatistics) Average() float64 {
	if f.samples == 0 {
		return 0
	}

	return f.avg.Avg()
}
