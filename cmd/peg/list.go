package main

import (
	"context"
	"encoding/hex"

	"github.com/pegin-network/pegin-daemon/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var list = cli.Command{
	Name:   "list",
	Usage:  "list all locally recorded deposits",
	Action: listAction,
}

type depositRecordView struct {
	TxID            string `json:"txid"`
	VOut            uint32 `json:"vout"`
	Amount          uint64 `json:"amount"`
	Recipient       string `json:"recipient"`
	DepositAddress  string `json:"deposit_address"`
	MaxSignerFee    uint64 `json:"max_signer_fee"`
	ReclaimLockTime uint32 `json:"reclaim_locktime"`
	DepositScript   string `json:"deposit_script"`
	ReclaimScript   string `json:"reclaim_script"`
	FeePaid         uint64 `json:"fee_paid"`
	FeeRate         string `json:"fee_rate"`
	Registered      bool   `json:"registered"`
	Timestamp       int64  `json:"timestamp"`
}

func listAction(ctx *cli.Context) error {
	svc, cleanup, err := getStatusService()
	if err != nil {
		return err
	}
	defer cleanup()

	deposits, err := svc.ListDeposits(context.Background())
	if err != nil {
		return err
	}

	views := make([]depositRecordView, 0, len(deposits))
	for _, d := range deposits {
		views = append(views, newDepositRecordView(d))
	}
	printRespJSON(views)
	return nil
}

func newDepositRecordView(d domain.Deposit) depositRecordView {
	return depositRecordView{
		TxID:            d.TxID,
		VOut:            d.VOut,
		Amount:          d.Amount,
		Recipient:       d.Recipient,
		DepositAddress:  d.DepositAddress,
		MaxSignerFee:    d.MaxSignerFee,
		ReclaimLockTime: d.ReclaimLockTime,
		DepositScript:   hex.EncodeToString(d.DepositScript),
		ReclaimScript:   hex.EncodeToString(d.ReclaimScript),
		FeePaid:         d.FeePaid,
		FeeRate:         d.FeeRate,
		Registered:      d.Registered,
		Timestamp:       d.Timestamp,
	}
}
