package main

import (
	"context"
	"encoding/hex"

	"github.com/urfave/cli/v2"
)

var address = cli.Command{
	Name:   "address",
	Usage:  "derive the deposit address and scripts without moving any funds",
	Action: addressAction,
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "amount to deposit in satoshis",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "recipient",
			Usage:    "settlement-layer principal receiving the pegged funds",
			Required: true,
		},
	},
}

func addressAction(ctx *cli.Context) error {
	svc, cleanup, err := getDepositService()
	if err != nil {
		return err
	}
	defer cleanup()

	descriptor, err := svc.DepositAddress(
		context.Background(), ctx.Uint64("amount"), ctx.String("recipient"),
	)
	if err != nil {
		return err
	}

	printRespJSON(struct {
		Address         string `json:"address"`
		Recipient       string `json:"recipient"`
		MaxSignerFee    uint64 `json:"max_signer_fee"`
		ReclaimLockTime uint32 `json:"reclaim_locktime"`
		DepositScript   string `json:"deposit_script"`
		ReclaimScript   string `json:"reclaim_script"`
	}{
		Address:         descriptor.Address.EncodeAddress(),
		Recipient:       descriptor.Recipient.String(),
		MaxSignerFee:    descriptor.MaxSignerFee,
		ReclaimLockTime: descriptor.ReclaimLockTime,
		DepositScript:   hex.EncodeToString(descriptor.DepositScript),
		ReclaimScript:   hex.EncodeToString(descriptor.ReclaimScript),
	})
	return nil
}
