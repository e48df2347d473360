package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var status = cli.Command{
	Name:   "status",
	Usage:  "show the lifecycle state of a deposit as seen by the coordinator",
	Action: statusAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "txid",
			Usage:    "transaction id of the deposit",
			Required: true,
		},
		&cli.UintFlag{
			Name:  "vout",
			Usage: "output index of the deposit",
			Value: 0,
		},
	},
}

func statusAction(ctx *cli.Context) error {
	svc, cleanup, err := getStatusService()
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := svc.GetDepositStatus(
		context.Background(), ctx.String("txid"), uint32(ctx.Uint("vout")),
	)
	if err != nil {
		return err
	}

	printRespJSON(struct {
		TxID             string `json:"txid"`
		VOut             uint32 `json:"vout"`
		Status           string `json:"status"`
		StatusMessage    string `json:"status_message,omitempty"`
		Recipient        string `json:"recipient,omitempty"`
		Amount           uint64 `json:"amount,omitempty"`
		LastUpdateHeight uint64 `json:"last_update_height,omitempty"`
		FulfillmentTxID  string `json:"fulfillment_txid,omitempty"`
		RecordedLocally  bool   `json:"recorded_locally"`
	}{
		TxID:             info.TxID,
		VOut:             info.VOut,
		Status:           info.Status.String(),
		StatusMessage:    info.StatusMessage,
		Recipient:        info.Recipient,
		Amount:           info.Amount,
		LastUpdateHeight: info.LastUpdateHeight,
		FulfillmentTxID:  info.FulfillmentTxID,
		RecordedLocally:  info.Record != nil,
	})
	return nil
}
