package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// StateLedger holds account state for the token contracts and journals every
// mutation so a failed operation can be rolled back as a whole.
//
//go:generate mockgen -destination mock_ledger/mock_ledger.go -package mock_ledger -source ledger.go
type StateLedger interface {
	StateAccessor

	// AddLog appends an event log to the current operation
	AddLog(log *ethtypes.Log)

	// GetLogs returns the logs emitted since the last Finalise
	GetLogs() []*ethtypes.Log

	// Finalise commits the dirty state of the current operation and clears the journal
	Finalise()

	// Version returns the number of finalised operations
	Version() uint64
}

// StateAccessor manipulates the state data
type StateAccessor interface {
	// GetOrCreateAccount
	GetOrCreateAccount(common.Address) IAccount

	// GetAccount
	GetAccount(common.Address) IAccount

	// GetState
	GetState(common.Address, []byte) (bool, []byte)

	// SetState
	SetState(common.Address, []byte, []byte)

	// Exist
	Exist(common.Address) bool

	// RevertToSnapshot
	RevertToSnapshot(int)

	// Snapshot
	Snapshot() int
}

type IAccount interface {
	fmt.Stringer

	GetAddress() common.Address

	GetState(key []byte) (bool, []byte)

	GetCommittedState(key []byte) []byte

	SetState(key []byte, value []byte)

	// IterateState visits every live key in lexical order until fn returns false
	IterateState(prefix []byte, fn func(key, value []byte) bool)

	IsEmpty() bool
}
