package token

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	daapcrypto "github.com/daap-network/daap-ledger/pkg/crypto"
	"github.com/daap-network/daap-ledger/pkg/eip712"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

func ownerKey(t *testing.T) *daapcrypto.Secp256k1PrivateKey {
	key, err := daapcrypto.ParseSecp256k1PrivateKey(repo.DefaultAccountKeys[1])
	require.Nil(t, err)
	require.Equal(t, alice, key.Address())
	return key
}

func testDomain(d *DAAP) *eip712.Domain {
	return &eip712.Domain{
		Name:              repo.DefaultTokenName,
		Version:           repo.DefaultTokenVersion,
		ChainID:           big.NewInt(repo.DefaultChainID),
		VerifyingContract: d.Address,
	}
}

func signPermit(t *testing.T, d *DAAP, key *daapcrypto.Secp256k1PrivateKey, spender ethcommon.Address, value, nonce, deadline int64) []byte {
	digest, err := testDomain(d).PermitDigest(&eip712.Permit{
		Owner:    key.Address(),
		Spender:  spender,
		Value:    big.NewInt(value),
		Nonce:    big.NewInt(nonce),
		Deadline: big.NewInt(deadline),
	})
	require.Nil(t, err)
	sig, err := key.Sign(digest.Bytes())
	require.Nil(t, err)
	return sig
}

func TestPermitThenTransferFrom(t *testing.T) {
	nvm, d := prepare(t, withBalance(alice, "1000"))
	key := ownerKey(t)
	deadline := int64(nvm.Timestamp) + 3600
	sig := signPermit(t, d, key, bob, 500, 0, deadline)

	logs, err := nvm.RunSingleTX(d, bob, func() error {
		return d.PermitWithSignature(alice, bob, big.NewInt(500), big.NewInt(deadline), sig)
	})
	require.Nil(t, err)
	require.Len(t, logs, 1)
	approval := unpackApproval(t, logs[0])
	assert.Equal(t, alice, approval.Owner)
	assert.Equal(t, bob, approval.Spender)
	requireBig(t, 500, approval.Value)
	nvm.Call(d, bob, func() {
		requireBig(t, 1, d.Nonces(alice))
	})
	requireBig(t, 500, allowanceOf(nvm, d, alice, bob))

	_, err = nvm.RunSingleTX(d, bob, func() error {
		_, err := d.TransferFrom(alice, bob, big.NewInt(500))
		return err
	})
	require.Nil(t, err)
	requireBig(t, 0, allowanceOf(nvm, d, alice, bob))
	requireBig(t, 495, balanceOf(nvm, d, bob))
	requireBig(t, 5, balanceOf(nvm, d, feeRecipient))
	requireSupplyInvariant(t, nvm, d)
}

func TestPermitReplay(t *testing.T) {
	nvm, d := prepare(t)
	key := ownerKey(t)
	deadline := int64(nvm.Timestamp) + 3600
	sig := signPermit(t, d, key, bob, 500, 0, deadline)

	_, err := nvm.RunSingleTX(d, bob, func() error {
		return d.PermitWithSignature(alice, bob, big.NewInt(500), big.NewInt(deadline), sig)
	})
	require.Nil(t, err)

	_, err = nvm.RunSingleTX(d, bob, func() error {
		return d.PermitWithSignature(alice, bob, big.NewInt(500), big.NewInt(deadline), sig)
	})
	require.ErrorIs(t, err, ErrInvalidSignature)
	nvm.Call(d, bob, func() {
		requireBig(t, 1, d.Nonces(alice))
	})
}

func TestPermitExpired(t *testing.T) {
	nvm, d := prepare(t)
	key := ownerKey(t)
	deadline := int64(nvm.Timestamp) - 1
	sig := signPermit(t, d, key, bob, 500, 0, deadline)

	_, err := nvm.RunSingleTX(d, bob, func() error {
		return d.PermitWithSignature(alice, bob, big.NewInt(500), big.NewInt(deadline), sig)
	})
	require.ErrorIs(t, err, ErrExpired)
	requireBig(t, 0, allowanceOf(nvm, d, alice, bob))
	nvm.Call(d, bob, func() {
		requireBig(t, 0, d.Nonces(alice))
	})

	// an expired permit is reported before its value is examined
	tooLarge := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = nvm.RunSingleTX(d, bob, func() error {
		return d.PermitWithSignature(alice, bob, tooLarge, big.NewInt(deadline), sig)
	})
	require.ErrorIs(t, err, ErrExpired)

	// the deadline itself is still valid
	deadline = int64(nvm.Timestamp)
	sig = signPermit(t, d, key, bob, 500, 0, deadline)
	_, err = nvm.RunSingleTX(d, bob, func() error {
		return d.PermitWithSignature(alice, bob, big.NewInt(500), big.NewInt(deadline), sig)
	})
	require.Nil(t, err)
}

func TestPermitInvalidSignature(t *testing.T) {
	nvm, d := prepare(t)
	key := ownerKey(t)
	deadline := int64(nvm.Timestamp) + 3600

	tests := []struct {
		name string
		sig  func() []byte
		args func() (ethcommon.Address, *big.Int)
	}{
		{
			name: "signed by another key",
			sig: func() []byte {
				other, err := daapcrypto.ParseSecp256k1PrivateKey(repo.DefaultAccountKeys[2])
				require.Nil(t, err)
				digest, err := testDomain(d).PermitDigest(&eip712.Permit{
					Owner: alice, Spender: bob, Value: big.NewInt(500), Nonce: big.NewInt(0), Deadline: big.NewInt(deadline),
				})
				require.Nil(t, err)
				sig, err := other.Sign(digest.Bytes())
				require.Nil(t, err)
				return sig
			},
		},
		{
			name: "value differs from the signed one",
			sig: func() []byte {
				return signPermit(t, d, key, bob, 499, 0, deadline)
			},
		},
		{
			name: "future nonce",
			sig: func() []byte {
				return signPermit(t, d, key, bob, 500, 1, deadline)
			},
		},
		{
			name: "other domain",
			sig: func() []byte {
				domain := testDomain(d)
				domain.ChainID = big.NewInt(1)
				digest, err := domain.PermitDigest(&eip712.Permit{
					Owner: alice, Spender: bob, Value: big.NewInt(500), Nonce: big.NewInt(0), Deadline: big.NewInt(deadline),
				})
				require.Nil(t, err)
				sig, err := key.Sign(digest.Bytes())
				require.Nil(t, err)
				return sig
			},
		},
		{
			name: "high s",
			sig: func() []byte {
				sig := signPermit(t, d, key, bob, 500, 0, deadline)
				n := ethcrypto.S256().Params().N
				s := new(big.Int).Sub(n, new(big.Int).SetBytes(sig[32:64]))
				copy(sig[32:64], ethcommon.LeftPadBytes(s.Bytes(), 32))
				sig[64] ^= 1
				return sig
			},
		},
		{
			name: "truncated",
			sig: func() []byte {
				return signPermit(t, d, key, bob, 500, 0, deadline)[:64]
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := tt.sig()
			_, err := nvm.RunSingleTX(d, bob, func() error {
				return d.PermitWithSignature(alice, bob, big.NewInt(500), big.NewInt(deadline), sig)
			})
			require.ErrorIs(t, err, ErrInvalidSignature)
			requireBig(t, 0, allowanceOf(nvm, d, alice, bob))
		})
	}
	nvm.Call(d, bob, func() {
		requireBig(t, 0, d.Nonces(alice))
	})
}

func TestPermitWithVRS(t *testing.T) {
	nvm, d := prepare(t)
	key := ownerKey(t)
	deadline := int64(nvm.Timestamp) + 60
	v, r, s, err := daapcrypto.SplitSignature(signPermit(t, d, key, bob, 7, 0, deadline))
	require.Nil(t, err)

	_, err = nvm.RunSingleTX(d, bob, func() error {
		return d.Permit(alice, bob, big.NewInt(7), big.NewInt(deadline), v, r, s)
	})
	require.Nil(t, err)
	requireBig(t, 7, allowanceOf(nvm, d, alice, bob))

	t.Run("zero spender", func(t *testing.T) {
		sig := signPermit(t, d, key, ethcommon.Address{}, 7, 1, deadline)
		_, err := nvm.RunSingleTX(d, bob, func() error {
			return d.PermitWithSignature(alice, ethcommon.Address{}, big.NewInt(7), big.NewInt(deadline), sig)
		})
		require.ErrorIs(t, err, ErrZeroAddress)
		nvm.Call(d, bob, func() {
			requireBig(t, 1, d.Nonces(alice))
		})
	})
}

func TestDomainSeparator(t *testing.T) {
	nvm, d := prepare(t)
	expected, err := testDomain(d).Separator()
	require.Nil(t, err)
	nvm.Call(d, bob, func() {
		assert.Equal(t, [32]byte(expected), d.DomainSeparator())
	})
}

func TestPermitRejectsRawRecoveryID(t *testing.T) {
	nvm, d := prepare(t)
	key := ownerKey(t)
	deadline := int64(nvm.Timestamp) + 3600
	sig := signPermit(t, d, key, bob, 500, 0, deadline)

	raw := append([]byte(nil), sig...)
	raw[64] -= 27
	_, err := nvm.RunSingleTX(d, bob, func() error {
		return d.PermitWithSignature(alice, bob, big.NewInt(500), big.NewInt(deadline), raw)
	})
	require.ErrorIs(t, err, ErrInvalidSignature)
	nvm.Call(d, bob, func() {
		requireBig(t, 0, d.Nonces(alice))
	})

	_, err = nvm.RunSingleTX(d, bob, func() error {
		return d.PermitWithSignature(alice, bob, big.NewInt(500), big.NewInt(deadline), sig)
	})
	require.Nil(t, err)
}
