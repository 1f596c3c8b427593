package crypto

import (
	"math/big"
	"path/filepath"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hardhatKey0     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	hardhatAddress0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestParseSecp256k1PrivateKey(t *testing.T) {
	key, err := ParseSecp256k1PrivateKey(hardhatKey0)
	require.Nil(t, err)
	assert.Equal(t, ethcommon.HexToAddress(hardhatAddress0), key.Address())
	assert.Equal(t, "0x"+hardhatKey0, key.String())
	assert.Equal(t, key.Address(), key.PublicKey().Address())

	_, err = ParseSecp256k1PrivateKey("0x" + hardhatKey0)
	require.Nil(t, err)

	_, err = ParseSecp256k1PrivateKey("0x0000000000000000000000000000000000000000000000000000000000000000")
	require.NotNil(t, err)

	_, err = ParseSecp256k1PrivateKey("zz")
	require.NotNil(t, err)
}

func TestRecoverAddress(t *testing.T) {
	key, err := ParseSecp256k1PrivateKey(hardhatKey0)
	require.Nil(t, err)
	digest := ethcrypto.Keccak256([]byte("daap permit digest"))

	sig, err := key.Sign(digest)
	require.Nil(t, err)
	require.Len(t, sig, SignatureLength)
	require.True(t, sig[64] == 27 || sig[64] == 28)

	t.Run("recover with legacy v", func(t *testing.T) {
		addr, err := RecoverAddress(digest, sig)
		require.Nil(t, err)
		assert.Equal(t, key.Address(), addr)
	})

	t.Run("recover with raw v", func(t *testing.T) {
		raw := append([]byte(nil), sig...)
		raw[64] -= 27
		addr, err := RecoverAddress(digest, raw)
		require.Nil(t, err)
		assert.Equal(t, key.Address(), addr)
	})

	t.Run("other digest recovers other address", func(t *testing.T) {
		addr, err := RecoverAddress(ethcrypto.Keccak256([]byte("other")), sig)
		if err == nil {
			assert.NotEqual(t, key.Address(), addr)
		}
	})

	t.Run("signer requires legacy v", func(t *testing.T) {
		addr, err := RecoverSigner(digest, sig)
		require.Nil(t, err)
		assert.Equal(t, key.Address(), addr)

		raw := append([]byte(nil), sig...)
		raw[64] -= 27
		_, err = RecoverSigner(digest, raw)
		require.ErrorIs(t, err, ErrInvalidRecoveryID)

		_, err = RecoverSigner(digest, sig[:64])
		require.ErrorIs(t, err, ErrInvalidSignatureLength)
	})

	t.Run("bad length", func(t *testing.T) {
		_, err := RecoverAddress(digest, sig[:64])
		require.ErrorIs(t, err, ErrInvalidSignatureLength)

		_, err = RecoverAddress(digest[:31], sig)
		require.ErrorIs(t, err, ErrInvalidHashLength)
	})

	t.Run("bad recovery id", func(t *testing.T) {
		bad := append([]byte(nil), sig...)
		bad[64] = 29
		_, err := RecoverAddress(digest, bad)
		require.ErrorIs(t, err, ErrInvalidRecoveryID)
	})

	t.Run("high s is rejected", func(t *testing.T) {
		n := ethcrypto.S256().Params().N
		s := new(big.Int).SetBytes(sig[32:64])
		highS := new(big.Int).Sub(n, s)

		malleable := append([]byte(nil), sig...)
		copy(malleable[32:64], ethcommon.LeftPadBytes(highS.Bytes(), 32))
		if malleable[64] == 27 {
			malleable[64] = 28
		} else {
			malleable[64] = 27
		}
		_, err := RecoverAddress(digest, malleable)
		require.ErrorIs(t, err, ErrInvalidSignatureValues)
	})

	t.Run("zero r is rejected", func(t *testing.T) {
		zero := make([]byte, SignatureLength)
		zero[64] = 27
		_, err := RecoverAddress(digest, zero)
		require.ErrorIs(t, err, ErrInvalidSignatureValues)
	})
}

func TestJoinSplitSignature(t *testing.T) {
	key, err := GenerateSecp256k1PrivateKey()
	require.Nil(t, err)
	digest := ethcrypto.Keccak256([]byte("vrs"))
	sig, err := key.Sign(digest)
	require.Nil(t, err)

	v, r, s, err := SplitSignature(sig)
	require.Nil(t, err)
	assert.Equal(t, sig, JoinSignature(v, r, s))

	_, _, _, err = SplitSignature(sig[1:])
	require.ErrorIs(t, err, ErrInvalidSignatureLength)
}

func TestSecp256k1Keystore(t *testing.T) {
	key, err := ParseSecp256k1PrivateKey(hardhatKey0)
	require.Nil(t, err)
	path := filepath.Join(t.TempDir(), "signer.json")

	ks := NewSecp256k1Keystore(path, key, "passwd", "permit signer")
	require.Nil(t, ks.Write())

	loaded, err := ReadKeystore[*Secp256k1PrivateKey, *Secp256k1PublicKey](path)
	require.Nil(t, err)
	assert.Equal(t, KeyTypeSecp256k1, loaded.KeyType)
	assert.Equal(t, key.Address().String(), loaded.Address)
	assert.Equal(t, key.Address(), loaded.PublicKey.Address())

	require.NotNil(t, loaded.DecryptPrivateKey("wrong"))
	require.Nil(t, loaded.DecryptPrivateKey("passwd"))
	assert.Equal(t, key.String(), loaded.PrivateKey.String())
}
