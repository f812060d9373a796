package ctrl

import "github.com/sarchlab/hbmsim/mem/hbm/internal/addressmapping"

// RowBufferOutcome tells whether an access finds its row open.
type RowBufferOutcome int

// A list of all row buffer outcomes.
const (
	RowHit RowBufferOutcome = iota
	RowMiss
	RowConflict
)

type bankKey struct {
	rank, bankGroup, bank int
}

func bankKeyOf(loc addressmapping.Location) bankKey {
	return bankKey{
		rank:      loc[addressmapping.Rank],
		bankGroup: loc[addressmapping.BankGroup],
		bank:      loc[addressmapping.Bank],
	}
}

// bank keeps the open row of a DRAM bank.
type bank struct {
	isOpen    bool
	openRow   int
	busyUntil uint64
}

func (b *bank) outcome(row int) RowBufferOutcome {
	switch {
	case !b.isOpen:
		return RowMiss
	case b.openRow == row:
		return RowHit
	default:
		return RowConflict
	}
}

// access opens the row and returns the number of cycles until the data
// transfer ends.
func (b *bank) access(row int, t Timing) (RowBufferOutcome, int) {
	o := b.outcome(row)

	cycles := t.CL + t.BL
	switch o {
	case RowMiss:
		cycles += t.RCD
	case RowConflict:
		cycles += t.RP + t.RCD
	}

	b.isOpen = true
	b.openRow = row

	return o, cycles
}

const rowLevel = addressmapping.Row
