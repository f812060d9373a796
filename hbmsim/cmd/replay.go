package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/hbmsim/mem/hbm"
	"github.com/sarchlab/hbmsim/mem/hbm/signal"
	"github.com/sarchlab/hbmsim/mem/hbm/stats"
	"github.com/sarchlab/hbmsim/mem/hbm/trace"
)

// maxStallCycles bounds the cycles spent waiting for a controller.
const maxStallCycles = 1 << 24

type result struct {
	cfg     hbm.Config
	report  stats.Report
	records []hbm.AccessRecord
}

func readTrace(path string) ([]signal.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	return readRequests(f)
}

func readRequests(r io.Reader) ([]signal.Request, error) {
	var reqs []signal.Request

	reader := trace.NewReader(r)
	for {
		req, ok, err := reader.Next()
		if err != nil {
			return nil, err
		}

		if !ok {
			return reqs, nil
		}

		reqs = append(reqs, req)
	}
}

// simulate sends one request per cycle, in trace order. A rejected request
// is sent again in the next cycle. After the last request, the memory system
// runs until every controller is idle.
//
// A full access pattern table is flushed into the result before the next
// request is sent.
func simulate(
	comp *hbm.Comp,
	cfg hbm.Config,
	reqs []signal.Request,
	onSent func(),
) (result, error) {
	res := result{cfg: cfg}

	for i := range reqs {
		req := reqs[i]

		if req.CoreID >= cfg.NumCores {
			return result{}, fmt.Errorf(
				"request %d is from core %d, but only %d cores are configured",
				req.ID, req.CoreID, cfg.NumCores)
		}

		req.Addr = comp.PageAllocate(req.Addr, req.CoreID)

		if err := send(comp, &req); err != nil {
			return result{}, err
		}

		if comp.AccessTableFull() {
			res.records = append(res.records, comp.FlushAccessTable()...)
		}

		if onSent != nil {
			onSent()
		}
	}

	if err := drain(comp); err != nil {
		return result{}, err
	}

	for core := 0; core < cfg.NumCores; core++ {
		comp.RecordCore(core)
	}

	res.records = append(res.records, comp.FlushAccessTable()...)
	res.report = comp.Finish()

	return res, nil
}

func send(comp *hbm.Comp, req *signal.Request) error {
	for stall := 0; !comp.Submit(req); stall++ {
		if stall >= maxStallCycles {
			return fmt.Errorf("request %d stalled for %d cycles",
				req.ID, stall)
		}

		comp.Tick()
	}

	comp.Tick()

	return nil
}

func drain(comp *hbm.Comp) error {
	for cycle := 0; comp.PendingRequests() > 0; cycle++ {
		if cycle >= maxStallCycles {
			return fmt.Errorf("%d requests still pending after %d cycles",
				comp.PendingRequests(), cycle)
		}

		comp.Tick()
	}

	return nil
}
