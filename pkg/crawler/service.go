package crawler

import (
	"sync"

	"golang.org/x/time/rate"
)

const (
	eventQueueMaxSize = 100
	errorQueueMaxSize = 10
)

type depositCrawler struct {
	interval     int
	svc          Services
	errChan      chan error
	eventChan    chan Event
	observables  map[string]*observableHandler
	errorHandler func(err error)
	mutex        *sync.RWMutex
	wg           *sync.WaitGroup
	rateLimiter  *rate.Limiter
}

// Opts defines the parameters needed for creating a crawler service with
// NewService method
type Opts struct {
	Services               Services
	IntervalInMilliseconds int
	ErrorHandler           func(err error)
	RequestsPerSecond      float64
	TokenBurst             int
}

// NewService returns a crawler that is ready to watch for transaction
// confirmations and deposit status changes. Use Start and Stop methods to
// manage it.
func NewService(opts Opts) Service {
	rateLimiter := rate.NewLimiter(
		rate.Limit(opts.RequestsPerSecond), opts.TokenBurst,
	)

	return &depositCrawler{
		interval:     opts.IntervalInMilliseconds,
		svc:          opts.Services,
		errChan:      make(chan error, errorQueueMaxSize),
		eventChan:    make(chan Event, eventQueueMaxSize),
		observables:  map[string]*observableHandler{},
		errorHandler: opts.ErrorHandler,
		mutex:        &sync.RWMutex{},
		wg:           &sync.WaitGroup{},
		rateLimiter:  rateLimiter,
	}
}

// Start starts the crawler which periodically polls the watched observables.
func (dc *depositCrawler) Start() {
	for {
		err, more := <-dc.errChan
		if !more {
			return
		}
		go dc.errorHandler(err)
	}
}

// Stop stops the crawler
func (dc *depositCrawler) Stop() {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()
	for _, obsHandler := range dc.observables {
		go obsHandler.stop()
	}
	dc.wg.Wait()
	dc.eventChan <- QuitEvent{}
	close(dc.errChan)
}

// GetEventChannel returns the Event channel which can be used to "listen" to
// observation events
func (dc *depositCrawler) GetEventChannel() chan Event {
	dc.mutex.RLock()
	defer dc.mutex.RUnlock()
	return dc.eventChan
}

// AddObservable adds a new Observable to the list of Observables to be
// watched over, only if the same Observable is not already in the list
func (dc *depositCrawler) AddObservable(observable Observable) {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()

	if _, ok := dc.observables[observable.key()]; !ok {
		obsHandler := newObservableHandler(
			observable,
			dc.svc,
			dc.wg,
			dc.interval,
			dc.eventChan,
			dc.errChan,
			dc.rateLimiter,
		)

		dc.observables[observable.key()] = obsHandler
		// The Add must happen before the handler goroutine is spawned, or a
		// racing RemoveObservable can drive the counter negative.
		dc.wg.Add(1)
		go obsHandler.start()
	}
}

// RemoveObservable stops watching the given Observable
func (dc *depositCrawler) RemoveObservable(observable Observable) {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()

	if obsHandler, ok := dc.observables[observable.key()]; ok {
		obsHandler.stop()
		delete(dc.observables, observable.key())
	}
}
