package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// Wallet is the in-memory handle over the key material of the active
// account: a single signing key whose BIP-86 taproot address funds deposits
// and receives change. Key storage, encryption and unlocking belong to the
// surrounding wallet infrastructure, not to this package.
type Wallet struct {
	signingKey *btcec.PrivateKey
	net        *chaincfg.Params
}

// NewWalletFromWIF returns the wallet handle for the given WIF-encoded key.
func NewWalletFromWIF(wifKey string, net *chaincfg.Params) (*Wallet, error) {
	if len(wifKey) <= 0 {
		return nil, ErrNullSigningKey
	}
	if net == nil {
		return nil, ErrNullNetwork
	}

	wif, err := btcutil.DecodeWIF(wifKey)
	if err != nil {
		return nil, err
	}
	if !wif.IsForNet(net) {
		return nil, ErrWIFNetworkMismatch
	}

	return &Wallet{
		signingKey: wif.PrivKey,
		net:        net,
	}, nil
}

// NewWalletFromKey returns the wallet handle for an already decoded key.
func NewWalletFromKey(key *btcec.PrivateKey, net *chaincfg.Params) (*Wallet, error) {
	if key == nil {
		return nil, ErrNullSigningKey
	}
	if net == nil {
		return nil, ErrNullNetwork
	}
	return &Wallet{signingKey: key, net: net}, nil
}

// PubKey returns the public key of the wallet signing key. Its x-only form
// is what ends up in the reclaim leaf of a deposit.
func (w *Wallet) PubKey() *btcec.PublicKey {
	return w.signingKey.PubKey()
}

// TaprootAddress returns the BIP-86 address of the wallet key, used as the
// funding and change address of deposit transactions.
func (w *Wallet) TaprootAddress() (*btcutil.AddressTaproot, error) {
	outputKey := txscript.ComputeTaprootKeyNoScript(w.signingKey.PubKey())
	return btcutil.NewAddressTaproot(schnorr.SerializePubKey(outputKey), w.net)
}

// TaprootScript returns the pkScript paying to the wallet taproot address.
func (w *Wallet) TaprootScript() ([]byte, error) {
	addr, err := w.TaprootAddress()
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(addr)
}
