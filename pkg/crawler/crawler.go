package crawler

import (
	"github.com/pegin-network/pegin-daemon/pkg/coordinator"
	"github.com/pegin-network/pegin-daemon/pkg/explorer"
	"golang.org/x/time/rate"
)

// Event are emitted through a channel during observation.
type Event interface {
	Type() EventType
}

// Services groups the remote endpoints an Observable may poll.
type Services struct {
	ExplorerSvc    explorer.Service
	CoordinatorSvc coordinator.Service
}

// Observable represent an object that can be observed, either on the base
// chain or on the coordinator.
type Observable interface {
	observe(
		svc Services,
		errChan chan error,
		eventChan chan Event,
		observableStatus *observableStatus,
		rateLimiter *rate.Limiter,
	)
	key() string
}

// Service is the interface for Crawler
type Service interface {
	Start()
	Stop()
	AddObservable(observable Observable)
	RemoveObservable(observable Observable)
	GetEventChannel() chan Event
}
