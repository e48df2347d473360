package crawler

import (
	"testing"
	"time"

	"github.com/pegin-network/pegin-daemon/pkg/coordinator"
	"github.com/pegin-network/pegin-daemon/pkg/explorer"
	"github.com/stretchr/testify/require"
)

const testTxID = "ff00000000000000000000000000000000000000000000000000000000000001"

type stubTxStatus struct {
	confirmed   bool
	blockHash   string
	blockHeight int
	blockTime   int
}

func (s stubTxStatus) Confirmed() bool   { return s.confirmed }
func (s stubTxStatus) BlockHash() string { return s.blockHash }
func (s stubTxStatus) BlockHeight() int  { return s.blockHeight }
func (s stubTxStatus) BlockTime() int    { return s.blockTime }

type stubExplorer struct {
	txStatus stubTxStatus
}

func (s stubExplorer) GetUnspents(addr string) ([]explorer.Utxo, error) {
	return nil, nil
}
func (s stubExplorer) GetTransactionHex(txid string) (string, error) {
	return "", nil
}
func (s stubExplorer) IsTransactionConfirmed(txid string) (bool, error) {
	return s.txStatus.confirmed, nil
}
func (s stubExplorer) GetTransactionStatus(txid string) (explorer.TransactionStatus, error) {
	return s.txStatus, nil
}
func (s stubExplorer) GetFeeEstimates() (map[string]float64, error) {
	return nil, nil
}
func (s stubExplorer) BroadcastTransaction(txhex string) (string, error) {
	return "", nil
}
func (s stubExplorer) GetBlockHeight() (int, error) {
	return s.txStatus.blockHeight, nil
}

type stubCoordinator struct {
	info coordinator.DepositInfo
	err  error
}

func (s stubCoordinator) RegisterDeposit(
	args coordinator.RegisterDepositArgs,
) (coordinator.DepositInfo, error) {
	return s.info, s.err
}
func (s stubCoordinator) GetDeposit(
	txid string, vout uint32,
) (coordinator.DepositInfo, error) {
	return s.info, s.err
}

func newTestCrawler(svc Services) Service {
	return NewService(Opts{
		Services:               svc,
		IntervalInMilliseconds: 50,
		ErrorHandler:           func(err error) {},
		RequestsPerSecond:      100,
		TokenBurst:             1,
	})
}

func waitForEvent(t *testing.T, crawlSvc Service, want EventType) Event {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case event := <-crawlSvc.GetEventChannel():
			if event.Type() == want {
				return event
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s event", want)
		}
	}
}

func TestCrawlerEmitsTransactionEvents(t *testing.T) {
	svc := Services{
		ExplorerSvc: stubExplorer{
			txStatus: stubTxStatus{
				confirmed:   true,
				blockHash:   "000000000019d6689c085ae165831e93",
				blockHeight: 102,
				blockTime:   1700000000,
			},
		},
	}
	crawlSvc := newTestCrawler(svc)
	go crawlSvc.Start()
	defer crawlSvc.Stop()

	crawlSvc.AddObservable(&TransactionObservable{TxID: testTxID})

	event := waitForEvent(t, crawlSvc, TransactionConfirmed)
	txEvent, ok := event.(TransactionEvent)
	require.True(t, ok)
	require.Equal(t, testTxID, txEvent.TxID)
	require.Equal(t, 102, txEvent.BlockHeight)
}

func TestCrawlerEmitsDepositEvents(t *testing.T) {
	svc := Services{
		CoordinatorSvc: stubCoordinator{
			info: coordinator.DepositInfo{
				TxID:            testTxID,
				Status:          coordinator.StatusMinted,
				FulfillmentTxID: "0xabc",
			},
		},
	}
	crawlSvc := newTestCrawler(svc)
	go crawlSvc.Start()
	defer crawlSvc.Stop()

	crawlSvc.AddObservable(&DepositObservable{TxID: testTxID, VOut: 0})

	event := waitForEvent(t, crawlSvc, DepositStatusUpdated)
	depEvent, ok := event.(DepositEvent)
	require.True(t, ok)
	require.Equal(t, coordinator.StatusMinted, depEvent.Status)
	require.Equal(t, "0xabc", depEvent.FulfillmentTxID)
}

func TestCrawlerEmitsDepositNotFound(t *testing.T) {
	svc := Services{
		CoordinatorSvc: stubCoordinator{
			err: coordinator.ErrDepositNotFound,
		},
	}
	crawlSvc := newTestCrawler(svc)
	go crawlSvc.Start()
	defer crawlSvc.Stop()

	crawlSvc.AddObservable(&DepositObservable{TxID: testTxID, VOut: 1})

	event := waitForEvent(t, crawlSvc, DepositNotFound)
	depEvent, ok := event.(DepositEvent)
	require.True(t, ok)
	require.Equal(t, uint32(1), depEvent.VOut)
}

func TestCrawlerAddRemoveChurn(t *testing.T) {
	svc := Services{
		ExplorerSvc: stubExplorer{},
	}
	crawlSvc := newTestCrawler(svc)
	go crawlSvc.Start()

	// Removing an observable right after adding it must not race the handler
	// goroutine into a negative wait group counter.
	for i := 0; i < 50; i++ {
		obs := &TransactionObservable{TxID: testTxID}
		crawlSvc.AddObservable(obs)
		crawlSvc.RemoveObservable(obs)
	}
	crawlSvc.Stop()
}

func TestCrawlerRemoveObservable(t *testing.T) {
	svc := Services{
		ExplorerSvc: stubExplorer{},
	}
	crawlSvc := newTestCrawler(svc)
	go crawlSvc.Start()

	obs := &TransactionObservable{TxID: testTxID}
	crawlSvc.AddObservable(obs)
	waitForEvent(t, crawlSvc, TransactionUnConfirmed)

	crawlSvc.RemoveObservable(obs)
	crawlSvc.Stop()
}
