package hbm

import (
	"log"

	"github.com/sarchlab/hbmsim/mem/hbm/signal"
	"github.com/sarchlab/hbmsim/sim/hooking"
)

// Hook positions of the memory system.
var (
	// HookPosReqAccepted is reached when a controller accepts a request. The
	// item is the signal.Request.
	HookPosReqAccepted = &hooking.HookPos{Name: "HBMReqAccepted"}

	// HookPosReqRejected is reached when a controller rejects a request. The
	// item is the signal.Request.
	HookPosReqRejected = &hooking.HookPos{Name: "HBMReqRejected"}

	// HookPosPageReplaced is reached when a page takes an assigned frame. The
	// item is the virtual address and the detail the physical address.
	HookPosPageReplaced = &hooking.HookPos{Name: "HBMPageReplaced"}

	// HookPosTableFlushed is reached when the access pattern table is
	// flushed. The item is the number of entries flushed.
	HookPosTableFlushed = &hooking.HookPos{Name: "HBMTableFlushed"}
)

// LogTracer is a hook that prints the events of a memory system.
type LogTracer struct {
	logger *log.Logger
}

// NewLogTracer creates a LogTracer that prints into the logger.
func NewLogTracer(logger *log.Logger) *LogTracer {
	return &LogTracer{logger: logger}
}

// Func prints one line per event.
func (t *LogTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosReqAccepted, HookPosReqRejected:
		req := ctx.Item.(signal.Request)
		t.logger.Printf("%d, %s, %s, core %d, 0x%x, %s, hops %d\n",
			ctx.Cycle, ctx.Pos.Name, req.Kind, req.CoreID, req.Addr,
			req.Location, req.Hops)
	case HookPosPageReplaced:
		t.logger.Printf("%d, %s, 0x%x -> 0x%x\n",
			ctx.Cycle, ctx.Pos.Name, ctx.Item, ctx.Detail)
	case HookPosTableFlushed:
		t.logger.Printf("%d, %s, %d entries\n",
			ctx.Cycle, ctx.Pos.Name, ctx.Item)
	}
}
