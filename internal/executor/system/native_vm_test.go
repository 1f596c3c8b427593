package system

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/daap-network/daap-ledger/internal/executor/system/access"
	"github.com/daap-network/daap-ledger/internal/executor/system/common"
	"github.com/daap-network/daap-ledger/internal/executor/system/token"
	"github.com/daap-network/daap-ledger/internal/ledger"
	"github.com/daap-network/daap-ledger/internal/ledger/mock_ledger"
	"github.com/daap-network/daap-ledger/pkg/loggers"
	"github.com/daap-network/daap-ledger/pkg/packer"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

var (
	admin = ethcommon.HexToAddress(repo.DefaultAccountAddrs[0])
	alice = ethcommon.HexToAddress(repo.DefaultAccountAddrs[1])
)

func prepareNVM(t *testing.T) (*NativeVM, ledger.StateLedger, *repo.GenesisConfig) {
	genesis := repo.DefaultGenesisConfig()
	nvm := New(genesis)
	stateLedger := ledger.NewStateLedger(loggers.Logger(loggers.Storage))
	require.Nil(t, nvm.InitGenesisData(genesis, stateLedger))
	stateLedger.Finalise()
	return nvm, stateLedger, genesis
}

func pack(t *testing.T, method string, args ...any) []byte {
	data, err := token.Pack(method, args...)
	require.Nil(t, err)
	return data
}

func TestContractInitGenesisData(t *testing.T) {
	t.Run("init genesis data success", func(t *testing.T) {
		mockCtl := gomock.NewController(t)
		stateLedger := mock_ledger.NewMockStateLedger(mockCtl)
		genesis := repo.DefaultGenesisConfig()

		account := ledger.NewMockAccount(genesis.ContractAddress())
		stateLedger.EXPECT().GetOrCreateAccount(genesis.ContractAddress()).Return(account).AnyTimes()

		nvm := New(genesis)
		err := nvm.InitGenesisData(genesis, stateLedger)
		assert.Nil(t, err)
		assert.False(t, account.IsEmpty())
	})

	t.Run("init twice", func(t *testing.T) {
		nvm, stateLedger, genesis := prepareNVM(t)
		err := nvm.InitGenesisData(genesis, stateLedger)
		assert.ErrorIs(t, err, token.ErrAlreadyInitialized)
	})

	t.Run("invalid genesis", func(t *testing.T) {
		mockCtl := gomock.NewController(t)
		stateLedger := mock_ledger.NewMockStateLedger(mockCtl)
		genesis := repo.DefaultGenesisConfig()
		stateLedger.EXPECT().GetOrCreateAccount(gomock.Any()).Return(ledger.NewMockAccount(genesis.ContractAddress())).AnyTimes()

		nvm := New(genesis)
		genesis.Admin = "wrong address"
		err := nvm.InitGenesisData(genesis, stateLedger)
		assert.NotNil(t, err)
	})
}

func TestDeployOutOfRange(t *testing.T) {
	genesis := repo.DefaultGenesisConfig()
	genesis.Token.ContractAddress = "0x0000000000000000000000000000000000000009"
	assert.Panics(t, func() {
		New(genesis)
	})

	nvm := New(repo.DefaultGenesisConfig())
	assert.Panics(t, func() {
		nvm.Deploy(ethcommon.HexToAddress(common.DAAPContractAddr), &token.DAAPABI, token.Method2Sig, token.New(&common.SystemContractConfig{}, ethcommon.HexToAddress(common.DAAPContractAddr)))
	})
}

func TestContractRun(t *testing.T) {
	nvm, stateLedger, genesis := prepareNVM(t)
	to := genesis.ContractAddress()
	other := ethcommon.HexToAddress("0x0000000000000000000000000000000000002000")

	testcases := []struct {
		name string
		from ethcommon.Address
		to   *ethcommon.Address
		data []byte
		err  error
	}{
		{name: "nil to", from: admin, to: nil, data: pack(t, "totalSupply"), err: ErrNotExistSystemContract},
		{name: "not deployed", from: admin, to: &other, data: pack(t, "totalSupply"), err: ErrNotDeploySystemContract},
		{name: "short data", from: admin, to: &to, data: []byte{1, 2}, err: ErrNotExistMethodName},
		{name: "unknown selector", from: admin, to: &to, data: crypto.Keccak256([]byte("vote(uint64,uint8)")), err: ErrNotExistMethodName},
		{name: "missing args", from: admin, to: &to, data: selectorOf(t, "transfer")},
		{name: "query", from: admin, to: &to, data: pack(t, "totalSupply")},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			nvm.Reset(stateLedger, tc.from, tc.to, 1700000000)
			ret, err := nvm.Run(tc.data)
			switch {
			case tc.err != nil:
				require.ErrorIs(t, err, tc.err)
			case tc.name == "missing args":
				require.NotNil(t, err)
			default:
				require.Nil(t, err)
				values, err := nvm.UnpackOutputArgs(to, "totalSupply", ret)
				require.Nil(t, err)
				expected, ok := new(big.Int).SetString(repo.DefaultAdminBalance, 10)
				require.True(t, ok)
				assert.Zero(t, expected.Cmp(values[0].(*big.Int)))
			}
		})
	}
}

func selectorOf(t *testing.T, method string) []byte {
	m, ok := token.DAAPABI.Methods[method]
	require.True(t, ok)
	return m.ID
}

func TestRunTransferAndRevert(t *testing.T) {
	nvm, stateLedger, genesis := prepareNVM(t)
	to := genesis.ContractAddress()

	nvm.Reset(stateLedger, admin, &to, 1700000000)
	ret, err := nvm.Run(pack(t, "transfer", alice, big.NewInt(1000)))
	require.Nil(t, err)
	values, err := nvm.UnpackOutputArgs(to, "transfer", ret)
	require.Nil(t, err)
	assert.Equal(t, true, values[0])
	assert.Len(t, stateLedger.GetLogs(), 2)
	stateLedger.Finalise()

	nvm.Reset(stateLedger, alice, &to, 1700000000)
	ret, err = nvm.Run(pack(t, "balanceOf", alice))
	require.Nil(t, err)
	values, err = nvm.UnpackOutputArgs(to, "balanceOf", ret)
	require.Nil(t, err)
	assert.Zero(t, big.NewInt(990).Cmp(values[0].(*big.Int)))

	t.Run("contract error is packed as revert", func(t *testing.T) {
		nvm.Reset(stateLedger, alice, &to, 1700000000)
		_, err := nvm.Run(pack(t, "transfer", admin, big.NewInt(991)))
		require.ErrorIs(t, err, token.ErrInsufficientBalance)

		var revertErr *packer.RevertError
		require.ErrorAs(t, err, &revertErr)
		reason, err := abi.UnpackRevert(revertErr.Data)
		require.Nil(t, err)
		assert.Contains(t, reason, token.ErrInsufficientBalance.Error())
	})

	t.Run("role gated through abi", func(t *testing.T) {
		nvm.Reset(stateLedger, alice, &to, 1700000000)
		_, err := nvm.Run(pack(t, "mint", alice, big.NewInt(1)))
		require.ErrorIs(t, err, access.ErrUnauthorized)

		nvm.Reset(stateLedger, admin, &to, 1700000000)
		_, err = nvm.Run(pack(t, "grantRole", [32]byte(access.MinterRole), alice))
		require.Nil(t, err)
		stateLedger.Finalise()

		nvm.Reset(stateLedger, alice, &to, 1700000000)
		ret, err := nvm.Run(pack(t, "hasRole", [32]byte(access.MinterRole), alice))
		require.Nil(t, err)
		assert.Equal(t, hexutil.Encode(ethcommon.LeftPadBytes([]byte{1}, 32)), hexutil.Encode(ret))
	})

	t.Run("fixed size returns", func(t *testing.T) {
		nvm.Reset(stateLedger, alice, &to, 1700000000)
		ret, err := nvm.Run(pack(t, "domainSeparator"))
		require.Nil(t, err)
		assert.Equal(t, nvm.Token().DomainSeparator(), [32]byte(ethcommon.BytesToHash(ret)))

		upper, err := nvm.Run(pack(t, "DOMAIN_SEPARATOR"))
		require.Nil(t, err)
		assert.Equal(t, ret, upper)

		ret, err = nvm.Run(pack(t, "feeRecipient"))
		require.Nil(t, err)
		assert.Equal(t, genesis.FeeRecipientAddress(), ethcommon.BytesToAddress(ret))

		ret, err = nvm.Run(pack(t, "getRoleMembers", [32]byte(access.AdminRole)))
		require.Nil(t, err)
		values, err := nvm.UnpackOutputArgs(to, "getRoleMembers", ret)
		require.Nil(t, err)
		assert.Equal(t, []ethcommon.Address{admin}, values[0])
	})
}

func TestNativeVM_IsSystemContract(t *testing.T) {
	genesis := repo.DefaultGenesisConfig()
	nvm := New(genesis)

	assert.Equal(t, genesis.ContractAddress(), nvm.Token().Address)
	addr := genesis.ContractAddress()
	assert.True(t, nvm.IsSystemContract(&addr))
	assert.False(t, nvm.IsSystemContract(&admin))
	assert.False(t, nvm.IsSystemContract(nil))
}

func TestGoMethodName(t *testing.T) {
	assert.Equal(t, "Transfer", goMethodName("transfer"))
	assert.Equal(t, "TransferFrom", goMethodName("transferFrom"))
	assert.Equal(t, "DomainSeparator", goMethodName("DOMAIN_SEPARATOR"))
	assert.Equal(t, "DomainSeparator", goMethodName("domainSeparator"))
	assert.Equal(t, "", goMethodName(""))
}
