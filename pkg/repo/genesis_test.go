package repo

import (
	"os"
	"path"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisConfig(t *testing.T) {
	repoPath := t.TempDir()
	cnf, err := LoadGenesisConfig(repoPath)
	require.Nil(t, err)
	require.Equal(t, uint64(1337), cnf.ChainID)
	require.Equal(t, DefaultTokenName, cnf.Token.Name)
	require.Equal(t, uint8(18), cnf.Token.Decimals)
	require.True(t, cnf.Vesting.Enabled)
	cnf.ChainID = 157
	cnf.Vesting.Schedules = append(cnf.Vesting.Schedules, &VestingSchedule{
		Address:     DefaultAccountAddrs[1],
		ReleaseTime: 1700000000,
	})
	err = writeConfigWithEnv(path.Join(repoPath, genesisCfgFileName), cnf)
	require.Nil(t, err)
	cnf2, err := LoadGenesisConfig(repoPath)
	require.Nil(t, err)
	require.Equal(t, uint64(0x9d), cnf2.ChainID)
	require.Len(t, cnf2.Vesting.Schedules, 1)
	assert.Equal(t, uint64(1700000000), cnf2.Vesting.Schedules[0].ReleaseTime)
	require.Len(t, cnf2.Accounts, 1)
	assert.Equal(t, DefaultAdminBalance, cnf2.Accounts[0].Balance)
}

func TestGenesisConfigEnvOverride(t *testing.T) {
	repoPath := t.TempDir()
	_, err := LoadGenesisConfig(repoPath)
	require.Nil(t, err)

	t.Setenv("DAAP_LEDGER_GENESIS_CHAINID", "42")
	t.Setenv("DAAP_LEDGER_GENESIS_FEE_PERCENTAGE", "5")
	cnf, err := LoadGenesisConfig(repoPath)
	require.Nil(t, err)
	assert.Equal(t, uint64(42), cnf.ChainID)
	assert.Equal(t, uint64(5), cnf.Fee.Percentage)
}

func TestGenesisConfigValidate(t *testing.T) {
	t.Run("default is valid", func(t *testing.T) {
		require.Nil(t, DefaultGenesisConfig().Validate())
	})

	t.Run("fee percentage out of range", func(t *testing.T) {
		cnf := DefaultGenesisConfig()
		cnf.Fee.Percentage = 101
		require.NotNil(t, cnf.Validate())
	})

	t.Run("bad admin", func(t *testing.T) {
		cnf := DefaultGenesisConfig()
		cnf.Admin = "0x123"
		require.NotNil(t, cnf.Validate())

		cnf.Admin = common.Address{}.Hex()
		require.NotNil(t, cnf.Validate())
	})

	t.Run("bad balance", func(t *testing.T) {
		cnf := DefaultGenesisConfig()
		cnf.Accounts[0].Balance = "-1"
		require.NotNil(t, cnf.Validate())
	})

	t.Run("duplicate account", func(t *testing.T) {
		cnf := DefaultGenesisConfig()
		cnf.Accounts = append(cnf.Accounts, &Account{Address: DefaultAccountAddrs[0], Balance: "1"})
		require.NotNil(t, cnf.Validate())
	})

	t.Run("total supply overflow", func(t *testing.T) {
		cnf := DefaultGenesisConfig()
		max := "115792089237316195423570985008687907853269984665640564039457584007913129639935"
		cnf.Accounts = []*Account{
			{Address: DefaultAccountAddrs[0], Balance: max},
			{Address: DefaultAccountAddrs[1], Balance: "1"},
		}
		require.NotNil(t, cnf.Validate())
	})

	t.Run("empty fee recipient falls back to admin", func(t *testing.T) {
		cnf := DefaultGenesisConfig()
		cnf.Fee.Recipient = ""
		require.Nil(t, cnf.Validate())
		assert.Equal(t, common.HexToAddress(cnf.Admin), cnf.FeeRecipientAddress())
	})
}

func TestLoadBrokenGenesis(t *testing.T) {
	repoPath := t.TempDir()
	err := os.WriteFile(path.Join(repoPath, genesisCfgFileName), []byte("chainid = \"abc\""), 0644)
	require.Nil(t, err)
	_, err = LoadGenesisConfig(repoPath)
	require.NotNil(t, err)
}
