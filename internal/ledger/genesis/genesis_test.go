package genesis

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap-network/daap-ledger/internal/executor/system"
	"github.com/daap-network/daap-ledger/internal/executor/system/common"
	"github.com/daap-network/daap-ledger/internal/ledger"
	"github.com/daap-network/daap-ledger/pkg/loggers"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

func TestInitialize(t *testing.T) {
	genesis := repo.DefaultGenesisConfig()
	genesis.Accounts = append(genesis.Accounts, &repo.Account{Address: repo.DefaultAccountAddrs[1], Balance: "5"})
	lg := ledger.NewStateLedger(loggers.Logger(loggers.Storage))
	nvm := system.New(genesis)

	cfg, err := GetGenesisConfig(lg)
	require.Nil(t, err)
	assert.Nil(t, cfg)

	require.Nil(t, Initialize(genesis, lg, nvm))
	assert.Equal(t, uint64(1), lg.Version())

	cfg, err = GetGenesisConfig(lg)
	require.Nil(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, genesis.ChainID, cfg.ChainID)
	assert.Equal(t, genesis.Token, cfg.Token)
	assert.Len(t, cfg.Accounts, 2)

	daap := nvm.Token()
	daap.SetContext(common.NewVMContext(lg, ethcommon.Address{}, 0))
	expected, ok := new(big.Int).SetString(repo.DefaultAdminBalance, 10)
	require.True(t, ok)
	assert.Zero(t, expected.Add(expected, big.NewInt(5)).Cmp(daap.TotalSupply()))
	assert.Zero(t, big.NewInt(5).Cmp(daap.BalanceOf(ethcommon.HexToAddress(repo.DefaultAccountAddrs[1]))))

	err = Initialize(genesis, lg, nvm)
	require.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestInitializeInvalidGenesis(t *testing.T) {
	genesis := repo.DefaultGenesisConfig()
	lg := ledger.NewStateLedger(loggers.Logger(loggers.Storage))
	nvm := system.New(genesis)

	genesis.Fee.Percentage = 200
	require.NotNil(t, Initialize(genesis, lg, nvm))

	// nothing of the failed attempt is left behind
	cfg, err := GetGenesisConfig(lg)
	require.Nil(t, err)
	assert.Nil(t, cfg)
	assert.False(t, lg.Exist(genesis.ContractAddress()))
}
