package token

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/daap-network/daap-ledger/internal/executor/system/access"
)

var _ IToken = (*DAAP)(nil)

// IToken is the call surface of the token contract, every method is reachable through its abi
type IToken interface {
	// Name Returns the name of the token
	Name() string

	// Symbol Returns the symbol of the token
	Symbol() string

	// Decimals Number of decimal this token has
	Decimals() uint8

	// Version Returns the version bound into the permit domain
	Version() string

	// TotalSupply Returns the amount of tokens in existence
	TotalSupply() *big.Int

	// BalanceOf Returns the balance of the account
	BalanceOf(account ethcommon.Address) *big.Int

	// Allowance Returns the amount which `spender` is still allowed to withdraw from `owner`
	// This is zero by default, This value changes when {approve}, {permit} or {transferFrom} are called.
	Allowance(owner, spender ethcommon.Address) *big.Int

	// Transfer moves `amount` from the caller to `to`, the transfer fee is skimmed to the fee recipient
	Transfer(to ethcommon.Address, amount *big.Int) (bool, error)

	// Approve Sets `amount` as the allowance of `spender` over the caller's tokens
	Approve(spender ethcommon.Address, amount *big.Int) (bool, error)

	// TransferFrom moves `amount` from `from` to `to` using the allowance mechanism,
	// `amount` is then deducted from the caller's allowance.
	TransferFrom(from, to ethcommon.Address, amount *big.Int) (bool, error)

	// IncreaseAllowance Atomically increases the allowance granted to `spender` by the caller.
	IncreaseAllowance(spender ethcommon.Address, addedValue *big.Int) (bool, error)

	// DecreaseAllowance Atomically decreases the allowance granted to `spender` by the caller.
	DecreaseAllowance(spender ethcommon.Address, subtractedValue *big.Int) (bool, error)

	// Mint tokens for account, only MINTER
	Mint(to ethcommon.Address, amount *big.Int) error

	// Burn tokens of the caller, only BURNER
	Burn(amount *big.Int) error

	// TransferFeePercentage Returns the percentage skimmed from every transfer
	TransferFeePercentage() *big.Int

	// FeeRecipient Returns the account credited with transfer fees
	FeeRecipient() ethcommon.Address

	SetTransferFeePercentage(percentage *big.Int) error

	SetFeeRecipient(account ethcommon.Address) error

	// Permit sets the allowance of `spender` over `owner`'s tokens from an off-ledger signature
	Permit(owner, spender ethcommon.Address, value, deadline *big.Int, v uint8, r, s [32]byte) error

	// PermitWithSignature is Permit with the 65 byte [R || S || V] signature
	PermitWithSignature(owner, spender ethcommon.Address, value, deadline *big.Int, signature []byte) error

	// Nonces Returns the current permit nonce of owner
	Nonces(owner ethcommon.Address) *big.Int

	DomainSeparator() [32]byte

	// ReleaseTime Returns the unix time before which account can not send tokens, zero means unlocked
	ReleaseTime(account ethcommon.Address) *big.Int

	IsUnlocked(account ethcommon.Address) bool

	SetReleaseTime(account ethcommon.Address, releaseTime *big.Int) error

	HasRole(role access.Role, account ethcommon.Address) bool

	GetRoleMembers(role access.Role) []ethcommon.Address

	GrantRole(role access.Role, account ethcommon.Address) error

	RevokeRole(role access.Role, account ethcommon.Address) error

	RenounceRole(role access.Role, account ethcommon.Address) error
}
