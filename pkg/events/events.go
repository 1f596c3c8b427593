package events

import (
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// ExecutedEvent is posted once for every operation the executor settles, committed or reverted
type ExecutedEvent struct {
	Index     uint64
	From      common.Address
	Method    string
	Success   bool
	Timestamp uint64

	// Logs is empty for reverted operations
	Logs []*ethtypes.Log

	// StateVersion is the state ledger version after the operation
	StateVersion uint64
}
