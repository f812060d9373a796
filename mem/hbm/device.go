package hbm

import (
	"fmt"

	"github.com/sarchlab/hbmsim/mem/hbm/ctrl"
	"github.com/sarchlab/hbmsim/mem/hbm/internal/addressmapping"
)

// OrgEntry describes the organization of one HBM density. Zero counts of
// channels and ranks are filled in from the configuration.
type OrgEntry struct {
	Name     string
	SizeMb   int
	DQ       int
	Geometry addressmapping.Geometry
}

// SpeedEntry describes one HBM speed bin.
type SpeedEntry struct {
	Name string

	// Rate is the data rate in MT/s.
	Rate float64

	// Freq is the clock frequency in MHz.
	Freq float64

	// TCK is the clock period in ns.
	TCK float64

	Timing ctrl.Timing
}

// DeviceSpec is the device that the memory system simulates.
type DeviceSpec struct {
	Org   OrgEntry
	Speed SpeedEntry

	// PrefetchSize is the number of beats per transaction.
	PrefetchSize int

	// ChannelWidth is the number of data bits of a channel.
	ChannelWidth int
}

// TransactionBytes returns the number of bytes moved by one transaction.
func (s DeviceSpec) TransactionBytes() int {
	return s.PrefetchSize * s.ChannelWidth / 8
}

var orgTable = map[string]OrgEntry{
	"HBM_1Gb": {
		Name: "HBM_1Gb", SizeMb: 1 << 10, DQ: 128,
		Geometry: addressmapping.Geometry{0, 0, 4, 2, 1 << 13, 1 << 6},
	},
	"HBM_2Gb": {
		Name: "HBM_2Gb", SizeMb: 2 << 10, DQ: 128,
		Geometry: addressmapping.Geometry{0, 0, 4, 2, 1 << 14, 1 << 6},
	},
	"HBM_4Gb": {
		Name: "HBM_4Gb", SizeMb: 4 << 10, DQ: 128,
		Geometry: addressmapping.Geometry{0, 0, 4, 4, 1 << 14, 1 << 6},
	},
}

var speedTable = map[string]SpeedEntry{
	"HBM_1Gbps": {
		Name: "HBM_1Gbps", Rate: 1000, Freq: 500, TCK: 2.0,
		Timing: ctrl.Timing{CL: 7, RCD: 7, RP: 7, BL: 2},
	},
}

// LookupDevice finds the organization and speed entries by name.
func LookupDevice(org, speed string) (DeviceSpec, error) {
	o, found := orgTable[org]
	if !found {
		return DeviceSpec{}, fmt.Errorf("unknown HBM organization %q", org)
	}

	s, found := speedTable[speed]
	if !found {
		return DeviceSpec{}, fmt.Errorf("unknown HBM speed %q", speed)
	}

	return DeviceSpec{
		Org:          o,
		Speed:        s,
		PrefetchSize: 2,
		ChannelWidth: 128,
	}, nil
}
