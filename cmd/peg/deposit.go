package main

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/pegin-network/pegin-daemon/internal/core/application"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var deposit = cli.Command{
	Name:   "deposit",
	Usage:  "build, broadcast and register a peg-in deposit",
	Action: depositAction,
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
		&cli.StringFlag{
			Name:  "fee-rate",
			Usage: "fee rate in sat/vByte, or one of fast, medium, slow",
			Value: application.FeeRateMedium,
		},
		&cli.BoolFlag{
			Name:  "include-ordinals",
			Usage: "allow spending outputs that carry inscriptions or runes",
			Value: false,
		},
	},
}

func depositAction(ctx *cli.Context) error {
	feeRate, err := application.ParseFeeRate(ctx.String("fee-rate"))
	if err != nil {
		return err
	}

	svc, cleanup, err := getDepositService()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.Deposit(context.Background(), application.DepositRequest{
		Amount:          ctx.Uint64("amount"),
		Recipient:       ctx.String("recipient"),
		FeeRate:         feeRate,
		IncludeOrdinals: ctx.Bool("include-ordinals"),
	})
	if err != nil {
		// The funds moved even if registration failed, so the outpoint must
		// reach the user before the error does.
		var regErr application.RegistrationFailedError
		if errors.As(err, &regErr) && res != nil {
			printRespJSON(newDepositView(res))
			log.Warnf("retry with: peg register --txid %s --vout %d", res.TxID, res.VOut)
		}
		return err
	}

	printRespJSON(newDepositView(res))
	return nil
}

type depositView struct {
	TxID           string `json:"txid"`
	VOut           uint32 `json:"vout"`
	Amount         uint64 `json:"amount"`
	Recipient      string `json:"recipient"`
	DepositAddress string `json:"deposit_address"`
	FundingAddress string `json:"funding_address"`
	DepositScript  string `json:"deposit_script"`
	ReclaimScript  string `json:"reclaim_script"`
	FeePaid        uint64 `json:"fee_paid"`
	FeeRate        string `json:"fee_rate"`
	Registered     bool   `json:"registered"`
}

func newDepositView(res *application.DepositResult) depositView {
	return depositView{
		TxID:           res.TxID,
		VOut:           res.VOut,
		Amount:         res.Amount,
		Recipient:      res.Recipient,
		DepositAddress: res.DepositAddress,
		FundingAddress: res.FundingAddress,
		DepositScript:  hex.EncodeToString(res.DepositScript),
		ReclaimScript:  hex.EncodeToString(res.ReclaimScript),
		FeePaid:        res.FeePaid,
		FeeRate:        res.FeeRate.String(),
		Registered:     res.Registered,
	}
}
