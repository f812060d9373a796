// Package signal defines the requests that flow from the memory system
// front-end into the channel controllers.
package signal

import "github.com/sarchlab/hbmsim/mem/hbm/internal/addressmapping"

// RequestKind tells what a request does.
type RequestKind int

// A list of all request kinds.
const (
	RequestKindRead RequestKind = iota
	RequestKindWrite
	RequestKindOther
)

func (k RequestKind) String() string {
	switch k {
	case RequestKindRead:
		return "read"
	case RequestKindWrite:
		return "write"
	default:
		return "other"
	}
}

// Request is one memory access.
type Request struct {
	ID     uint64
	Addr   uint64
	CoreID int
	Kind   RequestKind

	// ChildID is the PIM sub-unit that issues the request.
	ChildID int

	// BurstCount is the number of transactions needed to move a cacheline.
	BurstCount int

	// Location is filled by the address mapper.
	Location addressmapping.Location

	// Hops is the data movement latency in PIM mode.
	Hops int

	ArriveCycle uint64
	IssueCycle  uint64
	DepartCycle uint64
}

// IsRead returns true if the request reads data.
func (r *Request) IsRead() bool {
	return r.Kind == RequestKindRead
}

// IsWrite returns true if the request writes data.
func (r *Request) IsWrite() bool {
	return r.Kind == RequestKindWrite
}

// QueueDepths is a snapshot of the occupancy of a channel controller.
type QueueDepths struct {
	Read    int
	Write   int
	Other   int
	Pending int
}

// Total returns the number of requests held by the controller.
func (d QueueDepths) Total() int {
	return d.Read + d.Write + d.Other + d.Pending
}
