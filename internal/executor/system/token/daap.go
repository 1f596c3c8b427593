package token

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/daap-network/daap-ledger/internal/executor/system/access"
	"github.com/daap-network/daap-ledger/internal/executor/system/common"
)

const (
	metadataStorageKey       = "daapMetadata"
	feeConfigStorageKey      = "daapFeeConfig"
	vestingEnabledStorageKey = "daapVestingEnabled"
	releaseTimesStorageKey   = "daapReleaseTimes"
	balancesStorageKey       = "daapBalances"
	allowancesStorageKey     = "daapAllowances"
	noncesStorageKey         = "daapNonces"
	totalSupplyStorageKey    = "daapTotalSupply"
)

type Metadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Version  string `json:"version"`
	ChainID  uint64 `json:"chain_id"`
}

type FeeConfig struct {
	// Percentage is in [0, 100]
	Percentage uint64            `json:"percentage"`
	Recipient  ethcommon.Address `json:"recipient"`
}

type allowanceKey struct {
	owner   ethcommon.Address
	spender ethcommon.Address
}

// DAAP is the fungible token ledger, all of its state lives in the contract account
type DAAP struct {
	common.SystemContractBase
	*access.AccessControl

	guard *common.ReentrancyGuard

	metadata       *common.VMSlot[Metadata]
	feeConfig      *common.VMSlot[FeeConfig]
	vestingEnabled *common.VMSlot[bool]
	releaseTimes   *common.VMWordMap[ethcommon.Address]
	balances       *common.VMWordMap[ethcommon.Address]
	allowances     *common.VMWordMap[allowanceKey]
	nonces         *common.VMWordMap[ethcommon.Address]
	totalSupply    *common.VMWordSlot
}

func New(cfg *common.SystemContractConfig, address ethcommon.Address) *DAAP {
	d := &DAAP{
		SystemContractBase: common.NewSystemContractBase(cfg, address, &DAAPABI),
		guard:              common.NewReentrancyGuard(),
	}
	d.AccessControl = access.New(&d.SystemContractBase)
	return d
}

func (d *DAAP) SetContext(ctx *common.VMContext) {
	d.SystemContractBase.SetContext(ctx)
	d.AccessControl.Bind()

	addrKey := func(key ethcommon.Address) string {
		return key.Hex()
	}
	d.metadata = common.NewVMSlot[Metadata](d.StateAccount, metadataStorageKey)
	d.feeConfig = common.NewVMSlot[FeeConfig](d.StateAccount, feeConfigStorageKey)
	d.vestingEnabled = common.NewVMSlot[bool](d.StateAccount, vestingEnabledStorageKey)
	d.releaseTimes = common.NewVMWordMap[ethcommon.Address](d.StateAccount, releaseTimesStorageKey, addrKey)
	d.balances = common.NewVMWordMap[ethcommon.Address](d.StateAccount, balancesStorageKey, addrKey)
	d.allowances = common.NewVMWordMap[allowanceKey](d.StateAccount, allowancesStorageKey, func(key allowanceKey) string {
		return key.owner.Hex() + "-" + key.spender.Hex()
	})
	d.nonces = common.NewVMWordMap[ethcommon.Address](d.StateAccount, noncesStorageKey, addrKey)
	d.totalSupply = common.NewVMWordSlot(d.StateAccount, totalSupplyStorageKey)
}

func (d *DAAP) getMetadata() Metadata {
	m, err := d.metadata.MustGet()
	if err != nil {
		d.Logger.Errorf("read token metadata failed: %v", err)
	}
	return m
}

func (d *DAAP) Name() string {
	return d.getMetadata().Name
}

func (d *DAAP) Symbol() string {
	return d.getMetadata().Symbol
}

func (d *DAAP) Decimals() uint8 {
	return d.getMetadata().Decimals
}

func (d *DAAP) Version() string {
	return d.getMetadata().Version
}

func (d *DAAP) TotalSupply() *big.Int {
	return d.totalSupply.Get().ToBig()
}

func (d *DAAP) BalanceOf(account ethcommon.Address) *big.Int {
	return d.balances.Get(account).ToBig()
}

func (d *DAAP) Allowance(owner, spender ethcommon.Address) *big.Int {
	return d.allowances.Get(allowanceKey{owner: owner, spender: spender}).ToBig()
}

// Balances lists every account that has held tokens, zero balances included
func (d *DAAP) Balances() map[ethcommon.Address]*big.Int {
	res := make(map[ethcommon.Address]*big.Int)
	d.balances.Iterate(func(key string, v *uint256.Int) bool {
		res[ethcommon.HexToAddress(key)] = v.ToBig()
		return true
	})
	return res
}

func (d *DAAP) Transfer(to ethcommon.Address, amount *big.Int) (bool, error) {
	err := d.nonReentrant(func() error {
		value, err := toAmount(amount)
		if err != nil {
			return err
		}
		return d.transfer(d.Ctx.From, to, value)
	})
	return err == nil, err
}

func (d *DAAP) Approve(spender ethcommon.Address, amount *big.Int) (bool, error) {
	err := d.nonReentrant(func() error {
		value, err := toAmount(amount)
		if err != nil {
			return err
		}
		return d.approve(d.Ctx.From, spender, value)
	})
	return err == nil, err
}

func (d *DAAP) TransferFrom(from, to ethcommon.Address, amount *big.Int) (bool, error) {
	err := d.nonReentrant(func() error {
		value, err := toAmount(amount)
		if err != nil {
			return err
		}
		spender := d.Ctx.From
		allowance := d.allowances.Get(allowanceKey{owner: from, spender: spender})
		if allowance.Lt(value) {
			return errors.Wrapf(ErrInsufficientAllowance, "allowance %s of %s over %s, need %s", allowance.Dec(), spender, from, value.Dec())
		}
		remaining := new(uint256.Int).Sub(allowance, value)

		if err := d.transfer(from, to, value); err != nil {
			return err
		}
		return d.approve(from, spender, remaining)
	})
	return err == nil, err
}

func (d *DAAP) IncreaseAllowance(spender ethcommon.Address, addedValue *big.Int) (bool, error) {
	err := d.nonReentrant(func() error {
		value, err := toAmount(addedValue)
		if err != nil {
			return err
		}
		owner := d.Ctx.From
		current := d.allowances.Get(allowanceKey{owner: owner, spender: spender})
		updated, overflow := new(uint256.Int).AddOverflow(current, value)
		if overflow {
			return errors.Wrap(ErrOverflow, "increase allowance")
		}
		return d.approve(owner, spender, updated)
	})
	return err == nil, err
}

func (d *DAAP) DecreaseAllowance(spender ethcommon.Address, subtractedValue *big.Int) (bool, error) {
	err := d.nonReentrant(func() error {
		value, err := toAmount(subtractedValue)
		if err != nil {
			return err
		}
		owner := d.Ctx.From
		current := d.allowances.Get(allowanceKey{owner: owner, spender: spender})
		updated, underflow := new(uint256.Int).SubOverflow(current, value)
		if underflow {
			return ErrDecreasedAllowanceBelowZero
		}
		return d.approve(owner, spender, updated)
	})
	return err == nil, err
}

func (d *DAAP) Mint(to ethcommon.Address, amount *big.Int) error {
	return d.nonReentrant(func() error {
		if err := d.CheckRole(access.MinterRole); err != nil {
			return err
		}
		value, err := toAmount(amount)
		if err != nil {
			return err
		}
		if to == (ethcommon.Address{}) {
			return errors.Wrap(ErrZeroAddress, "mint to the zero address")
		}

		supply, overflow := new(uint256.Int).AddOverflow(d.totalSupply.Get(), value)
		if overflow {
			return errors.Wrap(ErrOverflow, "total supply")
		}
		balance, overflow := new(uint256.Int).AddOverflow(d.balances.Get(to), value)
		if overflow {
			return errors.Wrapf(ErrOverflow, "balance of %s", to)
		}

		d.totalSupply.Put(supply)
		d.balances.Put(to, balance)
		return d.EmitEvent(&EventTransfer{
			From:  ethcommon.Address{},
			To:    to,
			Value: value.ToBig(),
		})
	})
}

func (d *DAAP) Burn(amount *big.Int) error {
	return d.nonReentrant(func() error {
		if err := d.CheckRole(access.BurnerRole); err != nil {
			return err
		}
		value, err := toAmount(amount)
		if err != nil {
			return err
		}
		account := d.Ctx.From
		balance := d.balances.Get(account)
		if balance.Lt(value) {
			return errors.Wrapf(ErrInsufficientBalance, "burn %s from %s holding %s", value.Dec(), account, balance.Dec())
		}
		supply, underflow := new(uint256.Int).SubOverflow(d.totalSupply.Get(), value)
		if underflow {
			return errors.Wrap(ErrUnderflow, "total supply")
		}

		d.balances.Put(account, new(uint256.Int).Sub(balance, value))
		d.totalSupply.Put(supply)
		return d.EmitEvent(&EventTransfer{
			From:  account,
			To:    ethcommon.Address{},
			Value: value.ToBig(),
		})
	})
}

// transfer moves amount out of from, splitting it between to and the fee recipient.
// Every check runs and every new balance is computed before the first write.
func (d *DAAP) transfer(from, to ethcommon.Address, amount *uint256.Int) error {
	if from == (ethcommon.Address{}) {
		return errors.Wrap(ErrZeroAddress, "transfer from the zero address")
	}
	if to == (ethcommon.Address{}) {
		return errors.Wrap(ErrZeroAddress, "transfer to the zero address")
	}
	if !d.IsUnlockedAt(from, d.Ctx.Timestamp) {
		return errors.Wrapf(ErrVestingLocked, "%s is locked until %s", from, d.releaseTimes.Get(from).Dec())
	}

	fromBalance := d.balances.Get(from)
	if fromBalance.Lt(amount) {
		return errors.Wrapf(ErrInsufficientBalance, "transfer %s from %s holding %s", amount.Dec(), from, fromBalance.Dec())
	}

	feeCfg := d.getFeeConfig()
	fee := ComputeFee(amount, feeCfg.Percentage)
	if fee.Gt(amount) {
		return errors.Wrapf(ErrInvalidFeePercentage, "%d", feeCfg.Percentage)
	}
	if !fee.IsZero() && feeCfg.Recipient == (ethcommon.Address{}) {
		return errors.Wrap(ErrZeroAddress, "fee recipient")
	}
	net := new(uint256.Int).Sub(amount, fee)

	// accounts may alias each other, so stage the balances by address
	staged := make(map[ethcommon.Address]*uint256.Int, 3)
	order := make([]ethcommon.Address, 0, 3)
	balanceOf := func(addr ethcommon.Address) *uint256.Int {
		if b, ok := staged[addr]; ok {
			return b
		}
		order = append(order, addr)
		staged[addr] = d.balances.Get(addr)
		return staged[addr]
	}

	staged[from] = new(uint256.Int).Sub(fromBalance, amount)
	order = append(order, from)

	credited, overflow := new(uint256.Int).AddOverflow(balanceOf(to), net)
	if overflow {
		return errors.Wrapf(ErrOverflow, "balance of %s", to)
	}
	staged[to] = credited

	if !fee.IsZero() {
		credited, overflow := new(uint256.Int).AddOverflow(balanceOf(feeCfg.Recipient), fee)
		if overflow {
			return errors.Wrapf(ErrOverflow, "balance of fee recipient %s", feeCfg.Recipient)
		}
		staged[feeCfg.Recipient] = credited
	}

	for _, addr := range order {
		d.balances.Put(addr, staged[addr])
	}

	if err := d.EmitEvent(&EventTransfer{
		From:  from,
		To:    to,
		Value: net.ToBig(),
	}); err != nil {
		return err
	}
	if !fee.IsZero() {
		return d.EmitEvent(&EventTransfer{
			From:  from,
			To:    feeCfg.Recipient,
			Value: fee.ToBig(),
		})
	}
	return nil
}

func (d *DAAP) approve(owner, spender ethcommon.Address, value *uint256.Int) error {
	if owner == (ethcommon.Address{}) {
		return errors.Wrap(ErrZeroAddress, "approve from the zero address")
	}
	if spender == (ethcommon.Address{}) {
		return errors.Wrap(ErrZeroAddress, "approve to the zero address")
	}

	d.allowances.Put(allowanceKey{owner: owner, spender: spender}, value)
	return d.EmitEvent(&EventApproval{
		Owner:   owner,
		Spender: spender,
		Value:   value.ToBig(),
	})
}

func (d *DAAP) nonReentrant(fn func() error) error {
	return d.guard.Do(fn)
}

func toAmount(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return uint256.NewInt(0), nil
	}
	if v.Sign() < 0 {
		return nil, errors.Wrapf(ErrUnderflow, "negative amount %s", v)
	}
	value, overflow := uint256.FromBig(v)
	if overflow {
		return nil, errors.Wrapf(ErrOverflow, "amount %s exceeds uint256", v)
	}
	return value, nil
}
