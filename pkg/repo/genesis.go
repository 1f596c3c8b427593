package repo

import (
	"os"
	"path"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type GenesisConfig struct {
	ChainID  uint64         `mapstructure:"chainid" toml:"chainid"`
	Token    GenesisToken   `mapstructure:"token" toml:"token"`
	Admin    string         `mapstructure:"admin" toml:"admin"`
	Minters  []string       `mapstructure:"minters" toml:"minters"`
	Burners  []string       `mapstructure:"burners" toml:"burners"`
	Fee      GenesisFee     `mapstructure:"fee" toml:"fee"`
	Vesting  GenesisVesting `mapstructure:"vesting" toml:"vesting"`
	Accounts []*Account     `mapstructure:"accounts" toml:"accounts"`
}

type GenesisToken struct {
	Name            string `mapstructure:"name" toml:"name"`
	Symbol          string `mapstructure:"symbol" toml:"symbol"`
	Decimals        uint8  `mapstructure:"decimals" toml:"decimals"`
	Version         string `mapstructure:"version" toml:"version"`
	ContractAddress string `mapstructure:"contract_address" toml:"contract_address"`
}

type GenesisFee struct {
	Percentage uint64 `mapstructure:"percentage" toml:"percentage"`

	// Recipient defaults to the admin when empty
	Recipient string `mapstructure:"recipient" toml:"recipient"`
}

type GenesisVesting struct {
	Enabled   bool               `mapstructure:"enabled" toml:"enabled"`
	Schedules []*VestingSchedule `mapstructure:"schedules" toml:"schedules"`
}

type VestingSchedule struct {
	Address string `mapstructure:"address" toml:"address"`

	// unix seconds
	ReleaseTime uint64 `mapstructure:"release_time" toml:"release_time"`
}

type Account struct {
	Address string `mapstructure:"address" toml:"address"`

	// decimal string in the smallest unit
	Balance string `mapstructure:"balance" toml:"balance"`
}

func DefaultGenesisConfig() *GenesisConfig {
	return &GenesisConfig{
		ChainID: DefaultChainID,
		Token: GenesisToken{
			Name:            DefaultTokenName,
			Symbol:          DefaultTokenSymbol,
			Decimals:        DefaultTokenDecimals,
			Version:         DefaultTokenVersion,
			ContractAddress: DefaultTokenContractAddress,
		},
		Admin:   DefaultAccountAddrs[0],
		Minters: []string{DefaultAccountAddrs[0]},
		Burners: []string{DefaultAccountAddrs[0]},
		Fee: GenesisFee{
			Percentage: DefaultTransferFeePercentage,
			Recipient:  DefaultAccountAddrs[0],
		},
		Vesting: GenesisVesting{
			Enabled:   true,
			Schedules: []*VestingSchedule{},
		},
		Accounts: []*Account{
			{
				Address: DefaultAccountAddrs[0],
				Balance: DefaultAdminBalance,
			},
		},
	}
}

// FeeRecipientAddress resolves the configured fee recipient, falling back to the admin
func (g *GenesisConfig) FeeRecipientAddress() common.Address {
	if g.Fee.Recipient == "" {
		return common.HexToAddress(g.Admin)
	}
	return common.HexToAddress(g.Fee.Recipient)
}

func (g *GenesisConfig) ContractAddress() common.Address {
	return common.HexToAddress(g.Token.ContractAddress)
}

// TotalSupply sums the initial account balances
func (g *GenesisConfig) TotalSupply() (*uint256.Int, error) {
	total := uint256.NewInt(0)
	for _, account := range g.Accounts {
		balance, err := uint256.FromDecimal(account.Balance)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid balance %q of genesis account %s", account.Balance, account.Address)
		}
		var overflow bool
		total, overflow = new(uint256.Int).AddOverflow(total, balance)
		if overflow {
			return nil, errors.New("genesis total supply exceeds uint256")
		}
	}
	return total, nil
}

func (g *GenesisConfig) Validate() error {
	checkAddr := func(field string, addr string) error {
		if !common.IsHexAddress(addr) {
			return errors.Errorf("invalid %s address %q", field, addr)
		}
		if common.HexToAddress(addr) == (common.Address{}) {
			return errors.Errorf("%s address must not be zero", field)
		}
		return nil
	}

	if g.Token.Name == "" || g.Token.Version == "" {
		return errors.New("token name and version are required for the permit domain")
	}
	if err := checkAddr("token contract", g.Token.ContractAddress); err != nil {
		return err
	}
	if err := checkAddr("admin", g.Admin); err != nil {
		return err
	}
	for _, m := range g.Minters {
		if err := checkAddr("minter", m); err != nil {
			return err
		}
	}
	for _, b := range g.Burners {
		if err := checkAddr("burner", b); err != nil {
			return err
		}
	}
	if g.Fee.Percentage > 100 {
		return errors.Errorf("fee percentage %d out of range [0, 100]", g.Fee.Percentage)
	}
	if g.Fee.Recipient != "" {
		if err := checkAddr("fee recipient", g.Fee.Recipient); err != nil {
			return err
		}
	}
	for _, s := range g.Vesting.Schedules {
		if err := checkAddr("vesting", s.Address); err != nil {
			return err
		}
	}
	for _, a := range g.Accounts {
		if err := checkAddr("genesis account", a.Address); err != nil {
			return err
		}
	}
	dup := lo.FindDuplicatesBy(g.Accounts, func(a *Account) common.Address {
		return common.HexToAddress(a.Address)
	})
	if len(dup) != 0 {
		return errors.Errorf("duplicate genesis account %s", dup[0].Address)
	}
	if _, err := g.TotalSupply(); err != nil {
		return err
	}
	return nil
}

func LoadGenesisConfig(repoRoot string) (*GenesisConfig, error) {
	genesis, err := func() (*GenesisConfig, error) {
		genesis := DefaultGenesisConfig()
		cfgPath := path.Join(repoRoot, genesisCfgFileName)
		if !fileExist(cfgPath) {
			err := os.MkdirAll(repoRoot, 0755)
			if err != nil {
				return nil, errors.Wrap(err, "failed to build default config")
			}

			if err := writeConfigWithEnv(cfgPath, genesis); err != nil {
				return nil, errors.Wrap(err, "failed to build default genesis config")
			}
		} else {
			if err := CheckWritable(repoRoot); err != nil {
				return nil, err
			}
			if err := readConfigFromFile(cfgPath, genesis); err != nil {
				return nil, err
			}
		}

		if err := genesis.Validate(); err != nil {
			return nil, err
		}
		return genesis, nil
	}()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load genesis config")
	}
	return genesis, nil
}
