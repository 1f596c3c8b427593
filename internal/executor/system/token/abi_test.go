package token

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap-network/daap-ledger/internal/executor/system/access"
)

func TestMethodSignatures(t *testing.T) {
	assert.Equal(t, "transfer(address,uint256)", Method2Sig["transfer"])
	assert.Equal(t, "transferFrom(address,address,uint256)", Method2Sig["transferFrom"])
	assert.Equal(t, "permit(address,address,uint256,uint256,uint8,bytes32,bytes32)", Method2Sig["permit"])
	assert.Equal(t, "grantRole(bytes32,address)", Method2Sig["grantRole"])

	// standard ERC20 selectors
	assert.Equal(t, "a9059cbb", ethcommon.Bytes2Hex(DAAPABI.Methods["transfer"].ID))
	assert.Equal(t, "095ea7b3", ethcommon.Bytes2Hex(DAAPABI.Methods["approve"].ID))
	assert.Equal(t, "23b872dd", ethcommon.Bytes2Hex(DAAPABI.Methods["transferFrom"].ID))
	assert.Equal(t, "70a08231", ethcommon.Bytes2Hex(DAAPABI.Methods["balanceOf"].ID))
	assert.Equal(t, "d505accf", ethcommon.Bytes2Hex(DAAPABI.Methods["permit"].ID))
	assert.Equal(t, "3644e515", ethcommon.Bytes2Hex(DAAPABI.Methods["DOMAIN_SEPARATOR"].ID))
	assert.Equal(t, "7ecebe00", ethcommon.Bytes2Hex(DAAPABI.Methods["nonces"].ID))
}

func TestEncodeCall(t *testing.T) {
	data, err := EncodeCall("transfer", []string{bob.Hex(), "1000"})
	require.Nil(t, err)
	expected, err := Pack("transfer", bob, big.NewInt(1000))
	require.Nil(t, err)
	assert.Equal(t, expected, data)

	method, err := MethodByID(data)
	require.Nil(t, err)
	assert.Equal(t, "transfer", method)

	hexAmount, err := EncodeCall("transfer", []string{bob.Hex(), "0x3e8"})
	require.Nil(t, err)
	assert.Equal(t, expected, hexAmount)

	byName, err := EncodeCall("grantRole", []string{"MINTER_ROLE", alice.Hex()})
	require.Nil(t, err)
	byHash, err := EncodeCall("grantRole", []string{ethcommon.Hash(access.MinterRole).Hex(), alice.Hex()})
	require.Nil(t, err)
	assert.Equal(t, byName, byHash)

	_, err = EncodeCall("permit", []string{alice.Hex(), bob.Hex(), "1", "2", "27", "0x" + ethcommon.Bytes2Hex(make([]byte, 32)), "0x" + ethcommon.Bytes2Hex(make([]byte, 32))})
	require.Nil(t, err)

	t.Run("errors", func(t *testing.T) {
		_, err := EncodeCall("steal", nil)
		require.ErrorIs(t, err, ErrUnknownMethod)

		_, err = EncodeCall("transfer", []string{bob.Hex()})
		require.NotNil(t, err)

		_, err = EncodeCall("transfer", []string{"bob", "1"})
		require.NotNil(t, err)

		_, err = EncodeCall("transfer", []string{bob.Hex(), "-1"})
		require.NotNil(t, err)

		_, err = EncodeCall("permit", []string{alice.Hex(), bob.Hex(), "1", "2", "256", "0x00", "0x00"})
		require.NotNil(t, err)

		_, err = MethodByID([]byte{0x01})
		require.ErrorIs(t, err, ErrUnknownMethod)

		_, err = MethodByID([]byte{0xde, 0xad, 0xbe, 0xef})
		require.ErrorIs(t, err, ErrUnknownMethod)
	})
}

func TestDecodeReturn(t *testing.T) {
	ret, err := DAAPABI.Methods["balanceOf"].Outputs.Pack(big.NewInt(42))
	require.Nil(t, err)
	values, err := DecodeReturn("balanceOf", ret)
	require.Nil(t, err)
	require.Len(t, values, 1)
	requireBig(t, 42, values[0].(*big.Int))

	ret, err = DAAPABI.Methods["name"].Outputs.Pack("DAAP")
	require.Nil(t, err)
	values, err = DecodeReturn("name", ret)
	require.Nil(t, err)
	assert.Equal(t, "DAAP", values[0])
}
