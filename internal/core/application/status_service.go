package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/pegin-network/pegin-daemon/internal/core/domain"
	"github.com/pegin-network/pegin-daemon/pkg/circuitbreaker"
	"github.com/pegin-network/pegin-daemon/pkg/coordinator"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// StatusService defines the methods of the application layer for following up
// deposits after broadcast.
type StatusService interface {
	// GetDepositStatus reconciles the coordinator view of the deposit with the
	// locally persisted record, when one exists. A deposit unknown to the
	// coordinator yields DepositStatusNotFound, not an error.
	GetDepositStatus(
		ctx context.Context, txid string, vout uint32,
	) (*DepositStatusInfo, error)
	// RetryRegistration re-sends the script material of a locally recorded
	// deposit to the coordinator.
	RetryRegistration(ctx context.Context, txid string, vout uint32) error
	// ListDeposits returns all locally recorded deposits.
	ListDeposits(ctx context.Context) ([]domain.Deposit, error)
}

type statusService struct {
	coordinatorSvc coordinator.Service
	depositRepo    domain.DepositRepository
	cb             *gobreaker.CircuitBreaker
}

// NewStatusService is a constructor function for StatusService.
func NewStatusService(
	coordinatorSvc coordinator.Service,
	depositRepo domain.DepositRepository,
) StatusService {
	return &statusService{
		coordinatorSvc: coordinatorSvc,
		depositRepo:    depositRepo,
		cb:             circuitbreaker.NewCircuitBreaker("coordinator"),
	}
}

func (s *statusService) GetDepositStatus(
	ctx context.Context, txid string, vout uint32,
) (*DepositStatusInfo, error) {
	record, err := s.depositRepo.GetDeposit(ctx, txid, vout)
	if err != nil && !errors.Is(err, domain.ErrDepositRecordNotFound) {
		return nil, err
	}

	info, err := s.coordinatorSvc.GetDeposit(txid, vout)
	if err != nil {
		if errors.Is(err, coordinator.ErrDepositNotFound) {
			return &DepositStatusInfo{
				TxID:   txid,
				VOut:   vout,
				Status: domain.DepositStatusNotFound,
				Record: record,
			}, nil
		}
		return nil, err
	}

	status, known := mapCoordinatorStatus(info.Status)
	statusMessage := info.StatusMessage
	if !known {
		log.WithField("status", info.Status).Warn(
			"unrecognized coordinator status, treating deposit as pending",
		)
		if statusMessage == "" {
			statusMessage = fmt.Sprintf(
				"unrecognized coordinator status %q", info.Status,
			)
		}
	}

	return &DepositStatusInfo{
		TxID:             txid,
		VOut:             vout,
		Status:           status,
		StatusMessage:    statusMessage,
		Recipient:        info.Recipient,
		Amount:           info.Amount,
		LastUpdateHeight: info.LastUpdateHeight,
		FulfillmentTxID:  info.FulfillmentTxID,
		Record:           record,
	}, nil
}

func (s *statusService) RetryRegistration(
	ctx context.Context, txid string, vout uint32,
) error {
	record, err := s.depositRepo.GetDeposit(ctx, txid, vout)
	if err != nil {
		return err
	}

	if err := registerDeposit(
		ctx, s.cb, s.coordinatorSvc, s.depositRepo, *record,
	); err != nil {
		return RegistrationFailedError{TxID: txid, VOut: vout, Err: err}
	}
	return nil
}

func (s *statusService) ListDeposits(
	ctx context.Context,
) ([]domain.Deposit, error) {
	return s.depositRepo.GetAllDeposits(ctx)
}

// mapCoordinatorStatus normalizes the coordinator wire statuses to the
// domain lifecycle states. The second return value reports whether the wire
// status was recognized; unrecognized ones degrade to pending.
func mapCoordinatorStatus(status string) (domain.DepositStatus, bool) {
	switch status {
	case coordinator.StatusPending:
		return domain.DepositStatusPending, true
	case coordinator.StatusAccepted:
		return domain.DepositStatusConfirmed, true
	case coordinator.StatusMinted:
		return domain.DepositStatusMinted, true
	case coordinator.StatusFailed:
		return domain.DepositStatusReclaimable, true
	default:
		return domain.DepositStatusPending, false
	}
}
