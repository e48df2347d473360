package application

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/google/uuid"
	"github.com/pegin-network/pegin-daemon/internal/core/domain"
	"github.com/pegin-network/pegin-daemon/pkg/circuitbreaker"
	"github.com/pegin-network/pegin-daemon/pkg/coordinator"
	"github.com/pegin-network/pegin-daemon/pkg/explorer"
	"github.com/pegin-network/pegin-daemon/pkg/ordinals"
	"github.com/pegin-network/pegin-daemon/pkg/pegin"
	"github.com/pegin-network/pegin-daemon/pkg/wallet"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
)

// DepositService defines the methods of the application layer for building,
// broadcasting and registering peg-in deposits.
type DepositService interface {
	// Deposit runs the whole pipeline: derives the deposit scripts for the
	// recipient, funds and signs the transaction with verified cardinal
	// unspents, broadcasts it and registers it with the coordinator.
	//
	// When registration fails after a successful broadcast, the result is
	// returned alongside a RegistrationFailedError: the caller must not lose
	// the outpoint, registration can be retried at any time.
	Deposit(ctx context.Context, req DepositRequest) (*DepositResult, error)
	// DepositAddress derives the taproot deposit address and scripts for the
	// given amount and recipient without moving any funds.
	DepositAddress(
		ctx context.Context, amount uint64, recipient string,
	) (*pegin.DepositDescriptor, error)
}

type depositService struct {
	wallet          *wallet.Wallet
	explorerSvc     explorer.Service
	ordinalsSvc     ordinals.Service
	coordinatorSvc  coordinator.Service
	depositRepo     domain.DepositRepository
	signersKey      *btcec.PublicKey
	maxSignerFee    uint64
	reclaimLockTime uint32
	net             *chaincfg.Params
	cb              *gobreaker.CircuitBreaker
}

// DepositServiceOpts is the struct given to NewDepositService.
type DepositServiceOpts struct {
	Wallet          *wallet.Wallet
	ExplorerSvc     explorer.Service
	OrdinalsSvc     ordinals.Service
	CoordinatorSvc  coordinator.Service
	DepositRepo     domain.DepositRepository
	SignersKey      *btcec.PublicKey
	MaxSignerFee    uint64
	ReclaimLockTime uint32
	Net             *chaincfg.Params
}

// NewDepositService is a constructor function for DepositService.
func NewDepositService(opts DepositServiceOpts) DepositService {
	return &depositService{
		wallet:          opts.Wallet,
		explorerSvc:     opts.ExplorerSvc,
		ordinalsSvc:     opts.OrdinalsSvc,
		coordinatorSvc:  opts.CoordinatorSvc,
		depositRepo:     opts.DepositRepo,
		signersKey:      opts.SignersKey,
		maxSignerFee:    opts.MaxSignerFee,
		reclaimLockTime: opts.ReclaimLockTime,
		net:             opts.Net,
		cb:              circuitbreaker.NewCircuitBreaker("coordinator"),
	}
}

func (s *depositService) DepositAddress(
	_ context.Context, amount uint64, recipient string,
) (*pegin.DepositDescriptor, error) {
	principal, err := pegin.ParsePrincipal(recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecipient, err)
	}

	return pegin.NewDepositDescriptor(pegin.NewDepositDescriptorOpts{
		Amount:          amount,
		Recipient:       principal,
		ReclaimKey:      s.wallet.PubKey(),
		MaxSignerFee:    s.maxSignerFee,
		ReclaimLockTime: s.reclaimLockTime,
		SignersKey:      s.signersKey,
		Net:             s.net,
	})
}

func (s *depositService) Deposit(
	ctx context.Context, req DepositRequest,
) (*DepositResult, error) {
	descriptor, err := s.DepositAddress(ctx, req.Amount, req.Recipient)
	if err != nil {
		return nil, err
	}

	satsPerVByte, err := resolveFeeRate(s.explorerSvc, req.FeeRate)
	if err != nil {
		return nil, err
	}

	fundingAddr, err := s.wallet.TaprootAddress()
	if err != nil {
		return nil, err
	}

	unspents, err := s.listAndClassifyUnspents(ctx, fundingAddr.EncodeAddress())
	if err != nil {
		return nil, err
	}

	depositOutputScript, err := txscript.PayToAddrScript(descriptor.Address)
	if err != nil {
		return nil, err
	}

	depositTx, err := s.wallet.CreateAndSignDepositTx(wallet.CreateDepositTxOpts{
		Unspents:        unspents,
		DepositScript:   depositOutputScript,
		Amount:          req.Amount,
		SatsPerVByte:    satsPerVByte,
		IncludeOrdinals: req.IncludeOrdinals,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.explorerSvc.BroadcastTransaction(depositTx.TxHex); err != nil {
		return nil, BroadcastRejectedError{Reason: err.Error()}
	}

	log.WithFields(log.Fields{
		"txid":     depositTx.TxID,
		"amount":   req.Amount,
		"fee_paid": depositTx.FeePaid,
	}).Info("deposit transaction broadcast")

	record := domain.Deposit{
		AttemptID:       uuid.New(),
		TxID:            depositTx.TxID,
		VOut:            depositTx.VOut,
		Amount:          req.Amount,
		Recipient:       descriptor.Recipient.String(),
		MaxSignerFee:    s.maxSignerFee,
		ReclaimLockTime: s.reclaimLockTime,
		DepositScript:   descriptor.DepositScript,
		ReclaimScript:   descriptor.ReclaimScript,
		DepositAddress:  descriptor.Address.EncodeAddress(),
		FeePaid:         depositTx.FeePaid,
		FeeRate:         satsPerVByte.String(),
		Timestamp:       time.Now().Unix(),
	}
	persistErr := s.depositRepo.AddDeposit(ctx, record)
	if persistErr != nil {
		log.WithError(persistErr).Warn("failed to persist deposit record")
	}

	result := &DepositResult{
		TxID:           depositTx.TxID,
		VOut:           depositTx.VOut,
		Amount:         req.Amount,
		Recipient:      record.Recipient,
		DepositAddress: record.DepositAddress,
		FundingAddress: fundingAddr.EncodeAddress(),
		DepositScript:  descriptor.DepositScript,
		ReclaimScript:  descriptor.ReclaimScript,
		FeePaid:        depositTx.FeePaid,
		FeeRate:        satsPerVByte,
	}

	if err := registerDeposit(
		ctx, s.cb, s.coordinatorSvc, s.depositRepo, record,
	); err != nil {
		// Without the local record a later `register` run has nothing to read,
		// so the caller must know to keep the returned script material.
		if persistErr != nil {
			err = fmt.Errorf(
				"%s; deposit record not persisted (%s)", err, persistErr,
			)
		}
		return result, RegistrationFailedError{
			TxID: depositTx.TxID,
			VOut: depositTx.VOut,
			Err:  err,
		}
	}
	result.Registered = true

	return result, nil
}

// listAndClassifyUnspents fetches the wallet unspents and asks the
// inscription index about each of them concurrently. Any index failure taints
// the whole set: spending proceeds only with verified outputs.
func (s *depositService) listAndClassifyUnspents(
	ctx context.Context, addr string,
) ([]domain.Unspent, error) {
	utxos, err := s.explorerSvc.GetUnspents(addr)
	if err != nil {
		return nil, err
	}

	unspents := make([]domain.Unspent, len(utxos))
	eg, _ := errgroup.WithContext(ctx)
	for i := range utxos {
		i := i
		eg.Go(func() error {
			utxo := utxos[i]

			classification := domain.ClassificationUnknown
			output, err := s.ordinalsSvc.GetOutput(utxo.Hash(), utxo.Index())
			if err != nil {
				return fmt.Errorf("%w: %s", ErrClassifierUnavailable, err)
			}
			if output.Indexed {
				classification = domain.ClassificationCardinal
				if output.HasInscribedAssets() {
					classification = domain.ClassificationOrdinal
				}
			}

			unspents[i] = domain.Unspent{
				TxID:           utxo.Hash(),
				VOut:           utxo.Index(),
				Value:          utxo.Value(),
				Script:         utxo.Script(),
				Address:        addr,
				Confirmed:      utxo.IsConfirmed(),
				Classification: classification,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return unspents, nil
}

// registerDeposit hands the script material of a broadcast deposit over to
// the coordinator and marks the local record accordingly. Calls go through
// the circuit breaker so a flapping coordinator does not get hammered.
func registerDeposit(
	ctx context.Context,
	cb *gobreaker.CircuitBreaker,
	coordinatorSvc coordinator.Service,
	depositRepo domain.DepositRepository,
	record domain.Deposit,
) error {
	_, err := cb.Execute(func() (interface{}, error) {
		return coordinatorSvc.RegisterDeposit(coordinator.RegisterDepositArgs{
			TxID:          record.TxID,
			OutputIndex:   record.VOut,
			DepositScript: hex.EncodeToString(record.DepositScript),
			ReclaimScript: hex.EncodeToString(record.ReclaimScript),
		})
	})
	if err != nil {
		return err
	}

	if err := depositRepo.UpdateDeposit(
		ctx, record.TxID, record.VOut,
		func(d *domain.Deposit) (*domain.Deposit, error) {
			d.Registered = true
			return d, nil
		},
	); err != nil {
		log.WithError(err).Warn("failed to mark deposit record as registered")
	}

	log.WithFields(log.Fields{
		"txid": record.TxID,
		"vout": record.VOut,
	}).Info("deposit registered with the coordinator")

	return nil
}
