package crawler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pegin-network/pegin-daemon/pkg/coordinator"
	log "github.com/sirupsen/logrus"
)

const (
	New       Status = "NEW"
	Waiting   Status = "WAITING"
	Processed Status = "PROCESSED"
)

type Status string

type observableStatus struct {
	sync.RWMutex
	status Status
}

func NewObservableStatus() *observableStatus {
	return &observableStatus{
		status: New,
	}
}

func (o *observableStatus) Get() Status {
	o.RLock()
	defer o.RUnlock()
	return o.status
}

func (o *observableStatus) Set(status Status) {
	o.Lock()
	defer o.Unlock()
	o.status = status
}

// TransactionObservable polls the explorer for the confirmation state of a
// transaction.
type TransactionObservable struct {
	TxID string
}

func (t *TransactionObservable) observe(
	svc Services,
	errChan chan error,
	eventChan chan Event,
	observableStatus *observableStatus,
	rateLimiter *rate.Limiter,
) {
	if t == nil {
		return
	}

	observableStatus.Set(Waiting)
	if err := rateLimiter.Wait(context.Background()); err != nil {
		errChan <- err
		return
	}

	txStatus, err := svc.ExplorerSvc.GetTransactionStatus(t.TxID)
	if err != nil {
		errChan <- err
		return
	}

	observableStatus.Set(Processed)

	trxStatus := TransactionUnConfirmed
	if txStatus.Confirmed() {
		trxStatus = TransactionConfirmed
	}

	eventChan <- TransactionEvent{
		TxID:        t.TxID,
		EventType:   trxStatus,
		BlockHash:   txStatus.BlockHash(),
		BlockHeight: txStatus.BlockHeight(),
		BlockTime:   txStatus.BlockTime(),
	}
}

func (t *TransactionObservable) key() string {
	return t.TxID
}

// DepositObservable polls the coordinator for the lifecycle state of a
// registered deposit.
type DepositObservable struct {
	TxID string
	VOut uint32
}

func (d *DepositObservable) observe(
	svc Services,
	errChan chan error,
	eventChan chan Event,
	observableStatus *observableStatus,
	rateLimiter *rate.Limiter,
) {
	if d == nil {
		return
	}

	observableStatus.Set(Waiting)
	if err := rateLimiter.Wait(context.Background()); err != nil {
		errChan <- err
		return
	}

	info, err := svc.CoordinatorSvc.GetDeposit(d.TxID, d.VOut)
	if err != nil {
		if errors.Is(err, coordinator.ErrDepositNotFound) {
			observableStatus.Set(Processed)
			eventChan <- DepositEvent{
				TxID:      d.TxID,
				VOut:      d.VOut,
				EventType: DepositNotFound,
			}
			return
		}
		errChan <- err
		return
	}

	observableStatus.Set(Processed)

	eventChan <- DepositEvent{
		TxID:            d.TxID,
		VOut:            d.VOut,
		EventType:       DepositStatusUpdated,
		Status:          info.Status,
		StatusMessage:   info.StatusMessage,
		FulfillmentTxID: info.FulfillmentTxID,
	}
}

func (d *DepositObservable) key() string {
	return fmt.Sprintf("%s:%d", d.TxID, d.VOut)
}

type observableHandler struct {
	observable       Observable
	svc              Services
	wg               *sync.WaitGroup
	ticker           *time.Ticker
	eventChan        chan Event
	errChan          chan error
	stopChan         chan int
	observableStatus *observableStatus
	rateLimiter      *rate.Limiter
}

func newObservableHandler(
	observable Observable,
	svc Services,
	wg *sync.WaitGroup,
	interval int,
	eventChan chan Event,
	errChan chan error,
	rateLimiter *rate.Limiter,
) *observableHandler {
	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	stopChan := make(chan int, 1)

	return &observableHandler{
		observable,
		svc,
		wg,
		ticker,
		eventChan,
		errChan,
		stopChan,
		NewObservableStatus(),
		rateLimiter,
	}
}

func (oh *observableHandler) start() {
	oh.logAction("start")
	for {
		select {
		case <-oh.ticker.C:
			if oh.observableStatus.Get() != Waiting {
				oh.observable.observe(
					oh.svc,
					oh.errChan,
					oh.eventChan,
					oh.observableStatus,
					oh.rateLimiter,
				)
			}
		case <-oh.stopChan:
			oh.ticker.Stop()
			close(oh.stopChan)
			return
		}
	}
}

func (oh *observableHandler) stop() {
	oh.logAction("stop")
	oh.stopChan <- 1
	oh.wg.Done()
}

func (oh *observableHandler) logAction(action string) {
	obs := oh.observable
	switch obs.(type) {
	case *TransactionObservable:
		log.Debugf("%s observing tx: %v", action, obs.key())
	case *DepositObservable:
		log.Debugf("%s observing deposit: %v", action, obs.key())
	}
}
