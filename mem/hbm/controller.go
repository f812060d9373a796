package hbm

import (
	"github.com/sarchlab/hbmsim/mem/hbm/ctrl"
	"github.com/sarchlab/hbmsim/mem/hbm/signal"
	"github.com/sarchlab/hbmsim/mem/hbm/stats"
)

// Controller is a channel controller driven by the memory system.
type Controller interface {
	// Enqueue tries to accept a request. It returns false if the controller
	// cannot take the request this cycle.
	Enqueue(req signal.Request) bool

	// Tick advances the controller by one cycle.
	Tick()

	// IsActive returns true if the controller is serving any request.
	IsActive() bool

	// QueueDepths returns the current occupancy of the controller.
	QueueDepths() signal.QueueDepths

	// RecordCore is called when a core finishes.
	RecordCore(coreID int)

	// Finish is called once at the end of the simulation.
	Finish(cycles uint64)
}

// ControllerFactory creates the controller of a channel. All the controllers
// of a memory system share the same sink.
type ControllerFactory func(
	channelID int,
	spec DeviceSpec,
	sink *stats.Sink,
) Controller

func defaultControllerFactory(queueSize int, networkOverhead bool) ControllerFactory {
	return func(channelID int, spec DeviceSpec, sink *stats.Sink) Controller {
		return ctrl.MakeBuilder().
			WithTiming(spec.Speed.Timing).
			WithTransactionBytes(spec.TransactionBytes()).
			WithQueueSize(queueSize).
			WithNetworkOverhead(networkOverhead).
			WithSink(sink).
			Build(channelID)
	}
}
