package token

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/daap-network/daap-ledger/internal/executor/system/access"
)

const MaxFeePercentage = 100

var hundred = uint256.NewInt(100)

// ComputeFee returns floor(amount * percentage / 100) without an intermediate product wider than amount
func ComputeFee(amount *uint256.Int, percentage uint64) *uint256.Int {
	if percentage == 0 || amount.IsZero() {
		return uint256.NewInt(0)
	}
	p := uint256.NewInt(percentage)
	quo, rem := new(uint256.Int).DivMod(amount, hundred, new(uint256.Int))
	fee := new(uint256.Int).Mul(quo, p)
	return fee.Add(fee, rem.Mul(rem, p).Div(rem, hundred))
}

func (d *DAAP) getFeeConfig() FeeConfig {
	cfg, err := d.feeConfig.MustGet()
	if err != nil {
		d.Logger.Errorf("read fee config failed: %v", err)
	}
	return cfg
}

func (d *DAAP) TransferFeePercentage() *big.Int {
	return new(big.Int).SetUint64(d.getFeeConfig().Percentage)
}

func (d *DAAP) FeeRecipient() ethcommon.Address {
	return d.getFeeConfig().Recipient
}

func (d *DAAP) SetTransferFeePercentage(percentage *big.Int) error {
	return d.nonReentrant(func() error {
		if err := d.CheckRole(access.AdminRole); err != nil {
			return err
		}
		if percentage == nil || percentage.Sign() < 0 || percentage.Cmp(big.NewInt(MaxFeePercentage)) > 0 {
			return errors.Wrapf(ErrInvalidFeePercentage, "got %s", percentage)
		}
		cfg := d.getFeeConfig()
		cfg.Percentage = percentage.Uint64()
		return d.updateFeeConfig(cfg)
	})
}

func (d *DAAP) SetFeeRecipient(account ethcommon.Address) error {
	return d.nonReentrant(func() error {
		if err := d.CheckRole(access.AdminRole); err != nil {
			return err
		}
		if account == (ethcommon.Address{}) {
			return errors.Wrap(ErrZeroAddress, "fee recipient")
		}
		cfg := d.getFeeConfig()
		cfg.Recipient = account
		return d.updateFeeConfig(cfg)
	})
}

func (d *DAAP) updateFeeConfig(cfg FeeConfig) error {
	if err := d.feeConfig.Put(cfg); err != nil {
		return err
	}
	d.Logger.Infof("fee config updated, percentage: %d, recipient: %s", cfg.Percentage, cfg.Recipient)
	return d.EmitEvent(&EventFeeConfigUpdated{
		Percentage: new(big.Int).SetUint64(cfg.Percentage),
		Recipient:  cfg.Recipient,
	})
}
