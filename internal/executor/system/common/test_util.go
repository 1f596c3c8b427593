package common

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/daap-network/daap-ledger/internal/ledger"
	"github.com/daap-network/daap-ledger/pkg/loggers"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

// TestNVM runs contract calls against an in-memory state ledger the way the executor does
type TestNVM struct {
	t           testing.TB
	Rep         *repo.Repo
	StateLedger ledger.StateLedger
	Timestamp   uint64
}

func NewTestNVM(t testing.TB) *TestNVM {
	rep := repo.MockRepo(t)
	return &TestNVM{
		t:           t,
		Rep:         rep,
		StateLedger: ledger.NewStateLedger(loggers.Logger(loggers.Storage)),
		Timestamp:   1700000000,
	}
}

func (nvm *TestNVM) GenesisInit(contracts ...GenesisContract) {
	for _, contract := range contracts {
		contract.SetContext(NewVMContext(nvm.StateLedger, ethcommon.Address{}, nvm.Timestamp))
		err := contract.GenesisInit(nvm.Rep.GenesisConfig)
		require.Nil(nvm.t, err)
	}
	nvm.StateLedger.Finalise()
}

// RunSingleTX commits the effects of executor when it succeeds and reverts all of them otherwise,
// the logs emitted by a successful run are returned
func (nvm *TestNVM) RunSingleTX(contract SystemContract, from ethcommon.Address, executor func() error) ([]*ethtypes.Log, error) {
	snapshot := nvm.StateLedger.Snapshot()
	contract.SetContext(NewVMContext(nvm.StateLedger, from, nvm.Timestamp))
	if err := executor(); err != nil {
		nvm.StateLedger.RevertToSnapshot(snapshot)
		return nil, err
	}
	logs := nvm.StateLedger.GetLogs()
	nvm.StateLedger.Finalise()
	return logs, nil
}

// Call runs executor and always discards its effects
func (nvm *TestNVM) Call(contract SystemContract, from ethcommon.Address, executor func()) {
	snapshot := nvm.StateLedger.Snapshot()
	contract.SetContext(NewVMContext(nvm.StateLedger, from, nvm.Timestamp))
	executor()
	nvm.StateLedger.RevertToSnapshot(snapshot)
}
