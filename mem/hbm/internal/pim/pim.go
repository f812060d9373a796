// Package pim estimates the cost of moving data between the units of a
// processing-in-memory stack.
package pim

// An Estimator computes the number of extra cycles (hops) a request spends
// moving from the unit that issues it to the unit that holds its data. Units
// are channels (vaults) and sub-units are bank groups.
type Estimator struct {
	// IntraUnitCost is the cost per sub-unit of distance when the source and
	// the destination are in the same unit.
	IntraUnitCost int

	// InterUnitCost is the flat cost of crossing to another unit.
	InterUnitCost int

	// ReadPenalty is added to InterUnitCost for reads, which need the data
	// to travel back.
	ReadPenalty int
}

// MakeEstimator returns an estimator with the default costs.
func MakeEstimator() Estimator {
	return Estimator{
		IntraUnitCost: 0,
		InterUnitCost: 5,
		ReadPenalty:   1,
	}
}

// Hops returns the movement latency of one access.
func (e Estimator) Hops(
	srcUnit, srcSubUnit, dstUnit, dstSubUnit int,
	isRead bool,
) int {
	if srcUnit == dstUnit {
		return abs(srcSubUnit-dstSubUnit) * e.IntraUnitCost
	}

	if isRead {
		return e.InterUnitCost + e.ReadPenalty
	}

	return e.InterUnitCost
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
