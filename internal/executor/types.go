package executor

import (
	"context"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"

	"github.com/daap-network/daap-ledger/internal/executor/system/token"
	"github.com/daap-network/daap-ledger/pkg/events"
)

type ReceiptStatus uint8

const (
	ReceiptSUCCESS ReceiptStatus = iota
	ReceiptFAILED
)

func (s ReceiptStatus) String() string {
	if s == ReceiptSUCCESS {
		return "success"
	}
	return "failed"
}

// Operation is one abi encoded call against a system contract
type Operation struct {
	From ethcommon.Address

	// To defaults to the token contract
	To *ethcommon.Address

	Data []byte

	// Timestamp overrides the executor clock when non zero
	Timestamp uint64
}

type Receipt struct {
	Index      uint64
	From       ethcommon.Address
	To         ethcommon.Address
	Method     string
	Status     ReceiptStatus
	Ret        []byte
	RevertData []byte
	Err        error
	Logs       []*ethtypes.Log
	Timestamp  uint64
}

func (r *Receipt) Success() bool {
	return r.Status == ReceiptSUCCESS
}

type Executor interface {
	Start() error

	Stop() error

	// Execute runs op to completion, either every effect of op is committed or none is
	Execute(ctx context.Context, op *Operation) (*Receipt, error)

	// AsyncExecute queues op, its result is delivered to ExecutedEvent subscribers.
	// Every op accepted before Stop is executed before Stop returns.
	AsyncExecute(op *Operation) error

	// Call runs op and discards its effects
	Call(op *Operation) (*Receipt, error)

	// View runs fn against the committed token state
	View(fn func(daap *token.DAAP))

	SubscribeExecutedEvent(chan<- events.ExecutedEvent) event.Subscription

	SubscribeLogsEvent(chan<- []*ethtypes.Log) event.Subscription
}
