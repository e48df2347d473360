package main

import (
	"path/filepath"

	"github.com/pegin-network/pegin-daemon/internal/config"
	"github.com/pegin-network/pegin-daemon/internal/core/application"
	"github.com/pegin-network/pegin-daemon/internal/core/domain"
	dbbadger "github.com/pegin-network/pegin-daemon/internal/infrastructure/storage/db/badger"
	"github.com/pegin-network/pegin-daemon/pkg/crawler"
	log "github.com/sirupsen/logrus"
)

func getDepositRepository() (domain.DepositRepository, func(), error) {
	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	dbManager, err := dbbadger.NewDbManager(dbDir, nil)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = dbManager.Close() }

	return dbbadger.NewDepositRepositoryImpl(dbManager.DepositStore), cleanup, nil
}

func getDepositService() (application.DepositService, func(), error) {
	walletSvc, err := config.GetWallet()
	if err != nil {
		return nil, nil, err
	}
	signersKey, err := config.GetSignersKey()
	if err != nil {
		return nil, nil, err
	}
	explorerSvc, err := config.GetExplorer()
	if err != nil {
		return nil, nil, err
	}
	ordinalsSvc, err := config.GetOrdinals()
	if err != nil {
		return nil, nil, err
	}
	depositRepo, cleanup, err := getDepositRepository()
	if err != nil {
		return nil, nil, err
	}

	svc := application.NewDepositService(application.DepositServiceOpts{
		Wallet:          walletSvc,
		ExplorerSvc:     explorerSvc,
		OrdinalsSvc:     ordinalsSvc,
		CoordinatorSvc:  config.GetCoordinator(),
		DepositRepo:     depositRepo,
		SignersKey:      signersKey,
		MaxSignerFee:    uint64(config.GetInt(config.MaxSignerFeeKey)),
		ReclaimLockTime: uint32(config.GetInt(config.ReclaimLockTimeKey)),
		Net:             config.GetNetwork(),
	})
	return svc, cleanup, nil
}

func getStatusService() (application.StatusService, func(), error) {
	depositRepo, cleanup, err := getDepositRepository()
	if err != nil {
		return nil, nil, err
	}

	svc := application.NewStatusService(config.GetCoordinator(), depositRepo)
	return svc, cleanup, nil
}

func getCrawler() (crawler.Service, error) {
	explorerSvc, err := config.GetExplorer()
	if err != nil {
		return nil, err
	}

	return crawler.NewService(crawler.Opts{
		Services: crawler.Services{
			ExplorerSvc:    explorerSvc,
			CoordinatorSvc: config.GetCoordinator(),
		},
		IntervalInMilliseconds: config.GetInt(config.CrawlIntervalKey),
		ErrorHandler: func(err error) {
			if err != nil {
				log.Warn(err)
			}
		},
		RequestsPerSecond: config.GetFloat(config.CrawlLimitKey),
		TokenBurst:        config.GetInt(config.CrawlTokenBurst),
	}), nil
}
