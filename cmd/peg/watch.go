package main

import (
	"github.com/pegin-network/pegin-daemon/pkg/coordinator"
	"github.com/pegin-network/pegin-daemon/pkg/crawler"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var watch = cli.Command{
	Name:   "watch",
	Usage:  "follow a deposit until the settlement-layer credit is issued",
	Action: watchAction,
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

func watchAction(ctx *cli.Context) error {
	crawlSvc, err := getCrawler()
	if err != nil {
		return err
	}

	txid := ctx.String("txid")
	vout := uint32(ctx.Uint("vout"))

	go crawlSvc.Start()
	defer crawlSvc.Stop()

	crawlSvc.AddObservable(&crawler.TransactionObservable{TxID: txid})
	crawlSvc.AddObservable(&crawler.DepositObservable{TxID: txid, VOut: vout})

	confirmedSeen := false
	lastStatus := ""
	for event := range crawlSvc.GetEventChannel() {
		switch e := event.(type) {
		case crawler.TransactionEvent:
			if e.Type() == crawler.TransactionConfirmed && !confirmedSeen {
				confirmedSeen = true
				log.WithFields(log.Fields{
					"block_hash":   e.BlockHash,
					"block_height": e.BlockHeight,
				}).Info("deposit transaction confirmed")
			}
		case crawler.DepositEvent:
			if e.Type() == crawler.DepositNotFound {
				log.Debug("deposit not indexed by the coordinator yet")
				continue
			}
			if e.Status != lastStatus {
				lastStatus = e.Status
				log.WithField("status", e.Status).Info("deposit status changed")
			}
			switch e.Status {
			case coordinator.StatusMinted:
				log.WithField(
					"fulfillment_txid", e.FulfillmentTxID,
				).Info("deposit minted")
				return nil
			case coordinator.StatusFailed:
				log.WithField(
					"reason", e.StatusMessage,
				).Warn("deposit failed, funds are reclaimable after the lock time")
				return nil
			}
		case crawler.QuitEvent:
			return nil
		}
	}
	return nil
}
