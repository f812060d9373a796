// Package addressmapping converts physical addresses to HBM locations.
package addressmapping

import "fmt"

// Level is one level of the HBM organization hierarchy.
type Level int

// The levels of an HBM device, from the widest to the narrowest unit.
const (
	Channel Level = iota
	Rank
	BankGroup
	Bank
	Row
	Column
	NumLevels
)

var levelNames = [NumLevels]string{
	"Channel", "Rank", "BankGroup", "Bank", "Row", "Column",
}

func (l Level) String() string {
	if l < 0 || l >= NumLevels {
		return fmt.Sprintf("Level(%d)", int(l))
	}

	return levelNames[l]
}

// Geometry holds the number of entries at each level.
type Geometry [NumLevels]int

// Location is the address vector of a request. It carries exactly one
// coordinate per level.
type Location [NumLevels]int

// BankProduct returns the bank coordinate multiplied by the bank group
// coordinate. The access pattern tracker uses it as part of its key.
func (l Location) BankProduct() int {
	return l[Bank] * l[BankGroup]
}

func (l Location) String() string {
	return fmt.Sprintf("ch%d.ra%d.bg%d.ba%d.ro%d.co%d",
		l[Channel], l[Rank], l[BankGroup], l[Bank], l[Row], l[Column])
}
