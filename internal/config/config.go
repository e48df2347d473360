package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pegin-network/pegin-daemon/pkg/coordinator"
	"github.com/pegin-network/pegin-daemon/pkg/explorer"
	"github.com/pegin-network/pegin-daemon/pkg/explorer/esplora"
	"github.com/pegin-network/pegin-daemon/pkg/ordinals"
	"github.com/pegin-network/pegin-daemon/pkg/wallet"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// NetworkKey is the Bitcoin network to use. Either "mainnet", "testnet" or "regtest"
	NetworkKey = "NETWORK"
	// ExplorerEndpointKey is the endpoint where the Esplora REST API is listening
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// OrdinalsEndpointKey is the endpoint where the ord server REST API is listening
	OrdinalsEndpointKey = "ORDINALS_ENDPOINT"
	// CoordinatorEndpointKey is the endpoint where the peg coordinator REST API is listening
	CoordinatorEndpointKey = "COORDINATOR_ENDPOINT"
	// SignersPubKeyKey is the hex encoded aggregate public key of the signer set
	SignersPubKeyKey = "SIGNERS_PUBKEY"
	// WalletWIFKey is the WIF encoded private key of the depositor wallet
	WalletWIFKey = "WALLET_WIF"
	// MaxSignerFeeKey is the maximum fee in satoshis the signers may deduct from a deposit
	MaxSignerFeeKey = "MAX_SIGNER_FEE"
	// ReclaimLockTimeKey is the relative lock time in blocks after which a stale deposit can be reclaimed
	ReclaimLockTimeKey = "RECLAIM_LOCKTIME"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// CrawlIntervalKey is the interval in milliseconds to be used when watching deposits
	CrawlIntervalKey = "CRAWL_INTERVAL"
	// CrawlLimitKey represents the number of requests per second the crawler
	// makes to the remote endpoints
	CrawlLimitKey = "CRAWL_LIMIT"
	// CrawlTokenBurst represents the number of burst tokens permitted from the
	// crawler to the remote endpoints
	CrawlTokenBurst = "CRAWL_TOKEN"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("peg-daemon", false)

var netByName = map[string]*chaincfg.Params{
	"mainnet": &chaincfg.MainNetParams,
	"testnet": &chaincfg.TestNet3Params,
	"regtest": &chaincfg.RegressionNetParams,
}

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("PEG")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkKey, "testnet")
	vip.SetDefault(ExplorerEndpointKey, "https://blockstream.info/testnet/api")
	vip.SetDefault(OrdinalsEndpointKey, "http://localhost:8080")
	vip.SetDefault(CoordinatorEndpointKey, "http://localhost:3030")
	vip.SetDefault(MaxSignerFeeKey, 80000)
	vip.SetDefault(ReclaimLockTimeKey, 144)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(CrawlIntervalKey, 5000)
	vip.SetDefault(CrawlLimitKey, 10)
	vip.SetDefault(CrawlTokenBurst, 1)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetFloat ...
func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the given key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

//GetNetwork ...
func GetNetwork() *chaincfg.Params {
	return netByName[vip.GetString(NetworkKey)]
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

//GetExplorer ...
func GetExplorer() (explorer.Service, error) {
	return esplora.NewService(GetString(ExplorerEndpointKey))
}

//GetOrdinals ...
func GetOrdinals() (ordinals.Service, error) {
	return ordinals.NewService(GetString(OrdinalsEndpointKey))
}

//GetCoordinator ...
func GetCoordinator() coordinator.Service {
	return coordinator.NewService(GetString(CoordinatorEndpointKey))
}

// GetWallet decodes the configured WIF key into a wallet handle.
func GetWallet() (*wallet.Wallet, error) {
	wif := GetString(WalletWIFKey)
	if len(wif) <= 0 {
		return nil, fmt.Errorf("%s must not be null", WalletWIFKey)
	}
	return wallet.NewWalletFromWIF(wif, GetNetwork())
}

// GetSignersKey parses the configured signer set public key, given either as
// a 33-byte compressed key or as a 32-byte x-only key, both hex encoded.
func GetSignersKey() (*btcec.PublicKey, error) {
	keyHex := GetString(SignersPubKeyKey)
	if len(keyHex) <= 0 {
		return nil, fmt.Errorf("%s must not be null", SignersPubKeyKey)
	}

	buf, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", SignersPubKeyKey, err)
	}
	if len(buf) == schnorr.PubKeyBytesLen {
		return schnorr.ParsePubKey(buf)
	}
	return btcec.ParsePubKey(buf)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	if GetNetwork() == nil {
		return fmt.Errorf(
			"network must be one of 'mainnet', 'testnet' or 'regtest'",
		)
	}

	maxSignerFee := GetInt(MaxSignerFeeKey)
	if maxSignerFee <= 0 {
		return fmt.Errorf("max signer fee must be a positive number of satoshis")
	}

	lockTime := GetInt(ReclaimLockTimeKey)
	if lockTime < 1 || lockTime > 65535 {
		return fmt.Errorf("reclaim lock time must be in range [1, 65535]")
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
