package token

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/daap-network/daap-ledger/pkg/repo"
)

// GenesisInit writes the initial token state. It emits no events.
func (d *DAAP) GenesisInit(genesis *repo.GenesisConfig) error {
	if err := genesis.Validate(); err != nil {
		return errors.Wrap(err, "invalid genesis config")
	}
	if d.metadata.Has() {
		return errors.Wrapf(ErrAlreadyInitialized, "token at %s", d.Address)
	}

	if err := d.metadata.Put(Metadata{
		Name:     genesis.Token.Name,
		Symbol:   genesis.Token.Symbol,
		Decimals: genesis.Token.Decimals,
		Version:  genesis.Token.Version,
		ChainID:  genesis.ChainID,
	}); err != nil {
		return err
	}

	toAddrs := func(addrs []string) []ethcommon.Address {
		return lo.Map(addrs, func(addr string, _ int) ethcommon.Address {
			return ethcommon.HexToAddress(addr)
		})
	}
	if err := d.AccessControl.GenesisInit(ethcommon.HexToAddress(genesis.Admin), toAddrs(genesis.Minters), toAddrs(genesis.Burners)); err != nil {
		return err
	}

	if err := d.feeConfig.Put(FeeConfig{
		Percentage: genesis.Fee.Percentage,
		Recipient:  genesis.FeeRecipientAddress(),
	}); err != nil {
		return err
	}

	if err := d.vestingEnabled.Put(genesis.Vesting.Enabled); err != nil {
		return err
	}
	for _, schedule := range genesis.Vesting.Schedules {
		d.releaseTimes.Put(ethcommon.HexToAddress(schedule.Address), uint256.NewInt(schedule.ReleaseTime))
	}

	totalSupply := uint256.NewInt(0)
	for _, account := range genesis.Accounts {
		balance, err := uint256.FromDecimal(account.Balance)
		if err != nil {
			return errors.Wrapf(err, "invalid balance of %s", account.Address)
		}
		d.balances.Put(ethcommon.HexToAddress(account.Address), balance)
		totalSupply.Add(totalSupply, balance)
	}
	d.totalSupply.Put(totalSupply)

	d.Logger.Infof("token %s(%s) initialized at %s, total supply: %s", genesis.Token.Name, genesis.Token.Symbol, d.Address, totalSupply.Dec())
	return nil
}
