package main

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var register = cli.Command{
	Name:   "register",
	Usage:  "re-send the script material of a broadcast deposit to the coordinator",
	Action: registerAction,
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

func registerAction(ctx *cli.Context) error {
	svc, cleanup, err := getStatusService()
	if err != nil {
		return err
	}
	defer cleanup()

	txid := ctx.String("txid")
	vout := uint32(ctx.Uint("vout"))
	if err := svc.RetryRegistration(
		context.Background(), txid, vout,
	); err != nil {
		return err
	}

	log.Infof("deposit %s:%d registered", txid, vout)
	return nil
}
