package packer

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testABI = `[{
	"anonymous": false,
	"inputs": [
		{"indexed": true, "internalType": "address", "name": "user", "type": "address"},
		{"indexed": true, "internalType": "bytes32", "name": "role", "type": "bytes32"},
		{"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
	],
	"name": "Test",
	"type": "event"
}]`

type EventTest struct {
	User   common.Address
	Role   [32]byte
	Amount *big.Int
}

func (_event *EventTest) Pack(abi abi.ABI) (*types.Log, error) {
	return PackEvent(_event, abi.Events["Test"])
}

func TestPackEvent(t *testing.T) {
	innerABI, err := abi.JSON(strings.NewReader(testABI))
	require.Nil(t, err)
	input := &EventTest{
		User:   common.HexToAddress("0x0000000000000000000000000000000000001000"),
		Role:   common.HexToHash("0x01"),
		Amount: big.NewInt(100),
	}
	log, err := input.Pack(innerABI)
	require.Nil(t, err)
	require.Len(t, log.Topics, 3)
	assert.Equal(t, innerABI.Events["Test"].ID, log.Topics[0])
	assert.Equal(t, common.BytesToHash(input.User.Bytes()), log.Topics[1])
	assert.Equal(t, common.Hash(input.Role), log.Topics[2])

	data, err := innerABI.Events["Test"].Inputs.NonIndexed().Unpack(log.Data)
	require.Nil(t, err)
	assert.Equal(t, big.NewInt(100), data[0])

	parsed := &EventTest{}
	require.Nil(t, UnpackEvent(parsed, innerABI.Events["Test"], log))
	assert.Equal(t, input.User, parsed.User)
	assert.Equal(t, input.Role, parsed.Role)
	assert.Equal(t, 0, input.Amount.Cmp(parsed.Amount))

	_, err = PackEvent((*EventTest)(nil), innerABI.Events["Test"])
	require.NotNil(t, err)
}

func TestPackRevert(t *testing.T) {
	cause := errors.New("ERC20: transfer amount exceeds balance")
	revertErr := PackRevert(errors.Wrap(cause, "transfer"))
	require.ErrorIs(t, revertErr, cause)
	assert.Equal(t, ErrorSelector, revertErr.Data[:4])

	reason, err := abi.UnpackRevert(revertErr.Data)
	require.Nil(t, err)
	assert.Equal(t, "transfer: ERC20: transfer amount exceeds balance", reason)
}
