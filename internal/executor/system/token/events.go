package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/daap-network/daap-ledger/pkg/packer"
)

type EventTransfer struct {
	From  ethcommon.Address
	To    ethcommon.Address
	Value *big.Int
}

func (e *EventTransfer) Pack(abi abi.ABI) (*types.Log, error) {
	return packer.PackEvent(e, abi.Events["Transfer"])
}

type EventApproval struct {
	Owner   ethcommon.Address
	Spender ethcommon.Address
	Value   *big.Int
}

func (e *EventApproval) Pack(abi abi.ABI) (*types.Log, error) {
	return packer.PackEvent(e, abi.Events["Approval"])
}

type EventFeeConfigUpdated struct {
	Percentage *big.Int
	Recipient  ethcommon.Address
}

func (e *EventFeeConfigUpdated) Pack(abi abi.ABI) (*types.Log, error) {
	return packer.PackEvent(e, abi.Events["FeeConfigUpdated"])
}

type EventReleaseTimeUpdated struct {
	Account     ethcommon.Address
	ReleaseTime *big.Int
}

func (e *EventReleaseTimeUpdated) Pack(abi abi.ABI) (*types.Log, error) {
	return packer.PackEvent(e, abi.Events["ReleaseTimeUpdated"])
}
