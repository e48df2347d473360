package pegin

import (
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"
)

func testKeys(t *testing.T) (signersKey, reclaimKey *btcec.PublicKey) {
	t.Helper()
	_, signersPub := btcec.PrivKeyFromBytes([]byte(
		"11111111111111111111111111111111",
	))
	_, reclaimPub := btcec.PrivKeyFromBytes([]byte(
		"22222222222222222222222222222222",
	))
	return signersPub, reclaimPub
}

func testOpts(t *testing.T) NewDepositDescriptorOpts {
	t.Helper()
	signersKey, reclaimKey := testKeys(t)
	recipient, err := ParsePrincipal(burnAddress)
	require.NoError(t, err)

	return NewDepositDescriptorOpts{
		Amount:          100000,
		Recipient:       recipient,
		ReclaimKey:      reclaimKey,
		MaxSignerFee:    80000,
		ReclaimLockTime: 144,
		SignersKey:      signersKey,
		Net:             &chaincfg.RegressionNetParams,
	}
}

func TestNewDepositDescriptorIsDeterministic(t *testing.T) {
	opts := testOpts(t)

	first, err := NewDepositDescriptor(opts)
	require.NoError(t, err)
	second, err := NewDepositDescriptor(opts)
	require.NoError(t, err)

	require.Equal(t, first.DepositScript, second.DepositScript)
	require.Equal(t, first.ReclaimScript, second.ReclaimScript)
	require.Equal(t, first.Address.String(), second.Address.String())
}

func TestDepositScriptLayout(t *testing.T) {
	opts := testOpts(t)

	descriptor, err := NewDepositDescriptor(opts)
	require.NoError(t, err)

	script := descriptor.DepositScript
	// One push of max fee (8 bytes) plus the serialized standard principal
	// (22 bytes), then OP_DROP, a 32 byte key push and OP_CHECKSIG.
	require.Equal(t, byte(30), script[0])
	require.Equal(t, []byte{0, 0, 0, 0, 0, 1, 0x38, 0x80}, script[1:9])
	require.Equal(t, opts.Recipient.Serialize(), script[9:31])
	require.Equal(t, byte(txscript.OP_DROP), script[31])
	require.Equal(t, byte(txscript.OP_DATA_32), script[32])
	require.Equal(t, schnorr.SerializePubKey(opts.SignersKey), script[33:65])
	require.Equal(t, byte(txscript.OP_CHECKSIG), script[65])
	require.Len(t, script, 66)
}

func TestReclaimScriptLayout(t *testing.T) {
	opts := testOpts(t)

	descriptor, err := NewDepositDescriptor(opts)
	require.NoError(t, err)

	script := descriptor.ReclaimScript
	// Minimal scriptnum push of 144, OP_CSV, OP_DROP, key push, OP_CHECKSIG.
	require.Equal(t, byte(0x02), script[0])
	require.Equal(t, []byte{0x90, 0x00}, script[1:3])
	require.Equal(t, byte(txscript.OP_CHECKSEQUENCEVERIFY), script[3])
	require.Equal(t, byte(txscript.OP_DROP), script[4])
	require.Equal(t, byte(txscript.OP_DATA_32), script[5])
	require.Equal(t, schnorr.SerializePubKey(opts.ReclaimKey), script[6:38])
	require.Equal(t, byte(txscript.OP_CHECKSIG), script[38])
	require.Len(t, script, 39)
}

func TestDepositAddressIsTaproot(t *testing.T) {
	opts := testOpts(t)

	descriptor, err := NewDepositDescriptor(opts)
	require.NoError(t, err)
	require.Equal(
		t, "bcrt", descriptor.Address.String()[:4],
	)
	require.Len(t, descriptor.Address.WitnessProgram(), 32)
}

func TestNewDepositDescriptorInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NewDepositDescriptorOpts)
	}{
		{
			"amount below dust",
			func(o *NewDepositDescriptorOpts) { o.Amount = DustThreshold },
		},
		{
			"fee not lower than amount",
			func(o *NewDepositDescriptorOpts) {
				o.Amount = 50000
				o.MaxSignerFee = 80000
			},
		},
		{
			"fee equal to amount",
			func(o *NewDepositDescriptorOpts) {
				o.Amount = 50000
				o.MaxSignerFee = 50000
			},
		},
		{
			"zero lock time",
			func(o *NewDepositDescriptorOpts) { o.ReclaimLockTime = 0 },
		},
		{
			"lock time above sequence range",
			func(o *NewDepositDescriptorOpts) { o.ReclaimLockTime = 65536 },
		},
		{
			"missing reclaim key",
			func(o *NewDepositDescriptorOpts) { o.ReclaimKey = nil },
		},
		{
			"missing signers key",
			func(o *NewDepositDescriptorOpts) { o.SignersKey = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOpts(t)
			tt.mutate(&opts)

			_, err := NewDepositDescriptor(opts)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidDepositParameters))
		})
	}
}
