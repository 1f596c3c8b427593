package token

import (
	"github.com/pkg/errors"

	"github.com/daap-network/daap-ledger/internal/executor/system/access"
)

var (
	ErrUnauthorized = access.ErrUnauthorized
	ErrUnknownRole  = access.ErrUnknownRole

	ErrInsufficientBalance         = errors.New("ERC20: transfer amount exceeds balance")
	ErrInsufficientAllowance       = errors.New("ERC20: insufficient allowance")
	ErrDecreasedAllowanceBelowZero = errors.New("ERC20: decreased allowance below zero")
	ErrZeroAddress                 = errors.New("ERC20: zero address")
	ErrInvalidFeePercentage        = errors.New("fee percentage must be between 0 and 100")
	ErrOverflow                    = errors.New("arithmetic overflow")
	ErrUnderflow                   = errors.New("arithmetic underflow")
	ErrExpired                     = errors.New("ERC20Permit: expired deadline")
	ErrInvalidSignature            = errors.New("ERC20Permit: invalid signature")
	ErrVestingLocked               = errors.New("Token not vested yet")
	ErrAlreadyInitialized          = errors.New("token already initialized")
)
