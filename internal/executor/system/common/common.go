package common

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/daap-network/daap-ledger/internal/ledger"
	"github.com/daap-network/daap-ledger/pkg/packer"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

const (
	// ZeroAddress is a special address, no one has control
	ZeroAddress = "0x0000000000000000000000000000000000000000"

	// system contract address range 0x1000-0xffff, start from 1000, avoid conflicts with precompiled contracts
	// SystemContractStartAddr is the start address of system contract
	SystemContractStartAddr = "0x0000000000000000000000000000000000001000"

	// DAAPContractAddr is the default address of the DAAP token
	DAAPContractAddr = "0x0000000000000000000000000000000000001010"

	// SystemContractEndAddr is the end address of system contract
	SystemContractEndAddr = "0x000000000000000000000000000000000000ffff"
)

var ErrReentrantCall = errors.New("ReentrancyGuard: reentrant call")

// IsSystemContractAddr reports whether addr falls in the reserved system contract range
func IsSystemContractAddr(addr ethcommon.Address) bool {
	start := ethcommon.HexToAddress(SystemContractStartAddr)
	end := ethcommon.HexToAddress(SystemContractEndAddr)
	return addr.Cmp(start) >= 0 && addr.Cmp(end) <= 0
}

type SystemContractConfig struct {
	Logger logrus.FieldLogger
}

type VMContext struct {
	StateLedger ledger.StateLedger

	// From is the caller of the current operation
	From ethcommon.Address

	// Timestamp is the unix time the operation executes at
	Timestamp uint64
}

func NewVMContext(stateLedger ledger.StateLedger, from ethcommon.Address, timestamp uint64) *VMContext {
	return &VMContext{
		StateLedger: stateLedger,
		From:        from,
		Timestamp:   timestamp,
	}
}

// SystemContract must be implemented by all system contract
type SystemContract interface {
	SetContext(*VMContext)
}

// GenesisContract is a system contract that writes initial state from the genesis config
type GenesisContract interface {
	SystemContract

	GenesisInit(genesis *repo.GenesisConfig) error
}

type VirtualMachine interface {
	// Reset binds the next Run to a state ledger, caller, target contract and block time
	Reset(stateLedger ledger.StateLedger, from ethcommon.Address, to *ethcommon.Address, timestamp uint64)

	// Run executes abi encoded calldata against the bound contract
	Run(data []byte) ([]byte, error)

	IsSystemContract(addr *ethcommon.Address) bool
}

// SystemContractBase carries what every contract needs to touch its own state and emit events
type SystemContractBase struct {
	Logger       logrus.FieldLogger
	Ctx          *VMContext
	Address      ethcommon.Address
	Abi          *abi.ABI
	StateAccount ledger.IAccount
}

func NewSystemContractBase(cfg *SystemContractConfig, address ethcommon.Address, contractABI *abi.ABI) SystemContractBase {
	return SystemContractBase{
		Logger:  cfg.Logger,
		Address: address,
		Abi:     contractABI,
	}
}

func (s *SystemContractBase) SetContext(ctx *VMContext) {
	s.Ctx = ctx
	s.StateAccount = ctx.StateLedger.GetOrCreateAccount(s.Address)
}

// EmitEvent packs event with the contract abi and appends it to the journaled logs
func (s *SystemContractBase) EmitEvent(event packer.Event) error {
	log, err := event.Pack(*s.Abi)
	if err != nil {
		return err
	}
	log.Address = s.Address
	s.Ctx.StateLedger.AddLog(log)
	return nil
}
