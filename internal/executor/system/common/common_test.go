package common

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap-network/daap-ledger/internal/ledger"
	"github.com/daap-network/daap-ledger/pkg/loggers"
	"github.com/daap-network/daap-ledger/pkg/packer"
)

const mockABI = `[{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "from", "type": "address"},
			{"indexed": true, "name": "to", "type": "address"},
			{"indexed": false, "name": "value", "type": "uint256"}
		],
		"name": "Transfer",
		"type": "event"
	}]`

type mockTransferEvent struct {
	From  ethcommon.Address
	To    ethcommon.Address
	Value *big.Int
}

func (e *mockTransferEvent) Pack(abi abi.ABI) (*ethtypes.Log, error) {
	return packer.PackEvent(e, abi.Events["Transfer"])
}

func TestIsSystemContractAddr(t *testing.T) {
	assert.True(t, IsSystemContractAddr(ethcommon.HexToAddress(SystemContractStartAddr)))
	assert.True(t, IsSystemContractAddr(ethcommon.HexToAddress(DAAPContractAddr)))
	assert.True(t, IsSystemContractAddr(ethcommon.HexToAddress(SystemContractEndAddr)))
	assert.False(t, IsSystemContractAddr(ethcommon.HexToAddress("0x0fff")))
	assert.False(t, IsSystemContractAddr(ethcommon.HexToAddress("0x010000")))
	assert.False(t, IsSystemContractAddr(ethcommon.HexToAddress(ZeroAddress)))
}

func TestEmitEvent(t *testing.T) {
	parseAbi, err := abi.JSON(strings.NewReader(mockABI))
	require.Nil(t, err)

	addr := ethcommon.HexToAddress(DAAPContractAddr)
	stateLedger := ledger.NewStateLedger(loggers.Logger(loggers.Storage))
	base := NewSystemContractBase(&SystemContractConfig{Logger: loggers.Logger(loggers.SystemContract)}, addr, &parseAbi)
	base.SetContext(NewVMContext(stateLedger, ethcommon.HexToAddress("0x01"), 1))
	assert.Equal(t, addr, base.StateAccount.GetAddress())

	snapshot := stateLedger.Snapshot()
	err = base.EmitEvent(&mockTransferEvent{
		From:  ethcommon.HexToAddress("0x01"),
		To:    ethcommon.HexToAddress("0x02"),
		Value: big.NewInt(10),
	})
	require.Nil(t, err)

	logs := stateLedger.GetLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, addr, logs[0].Address)
	assert.Equal(t, 3, len(logs[0].Topics))
	assert.Equal(t, parseAbi.Events["Transfer"].ID, logs[0].Topics[0])
	assert.Equal(t, []byte{logs[0].Data[len(logs[0].Data)-1]}, big.NewInt(10).Bytes())

	// logs are journaled with the state
	stateLedger.RevertToSnapshot(snapshot)
	assert.Empty(t, stateLedger.GetLogs())
}

func TestReentrancyGuard(t *testing.T) {
	guard := NewReentrancyGuard()
	require.Nil(t, guard.Enter())
	require.ErrorIs(t, guard.Enter(), ErrReentrantCall)
	guard.Exit()
	require.Nil(t, guard.Enter())
	guard.Exit()

	err := guard.Do(func() error {
		return guard.Do(func() error { return nil })
	})
	require.ErrorIs(t, err, ErrReentrantCall)

	assert.Panics(t, func() {
		_ = guard.Do(func() error { panic("contract bug") })
	})
	require.Nil(t, guard.Do(func() error { return nil }))
}
