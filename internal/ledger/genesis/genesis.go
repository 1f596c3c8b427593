package genesis

import (
	"encoding/json"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/daap-network/daap-ledger/internal/executor/system"
	"github.com/daap-network/daap-ledger/internal/executor/system/common"
	"github.com/daap-network/daap-ledger/internal/ledger"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

const genesisCfgKey = "genesis_cfg"

var ErrAlreadyInitialized = errors.New("ledger already initialized")

func initializeGenesisConfig(genesis *repo.GenesisConfig, lg ledger.StateLedger) error {
	account := lg.GetOrCreateAccount(ethcommon.HexToAddress(common.ZeroAddress))

	genesisCfg, err := json.Marshal(genesis)
	if err != nil {
		return err
	}
	account.SetState([]byte(genesisCfgKey), genesisCfg)
	return nil
}

// Initialize writes the genesis config and the initial state of every system contract, then commits them
func Initialize(genesis *repo.GenesisConfig, lg ledger.StateLedger, nvm *system.NativeVM) error {
	existing, err := GetGenesisConfig(lg)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInitialized
	}

	snapshot := lg.Snapshot()
	if err := initializeGenesisConfig(genesis, lg); err != nil {
		lg.RevertToSnapshot(snapshot)
		return err
	}
	if err := nvm.InitGenesisData(genesis, lg); err != nil {
		lg.RevertToSnapshot(snapshot)
		return err
	}
	lg.Finalise()
	return nil
}

// GetGenesisConfig retrieves the genesis configuration from the given ledger.
func GetGenesisConfig(lg ledger.StateLedger) (*repo.GenesisConfig, error) {
	account := lg.GetAccount(ethcommon.HexToAddress(common.ZeroAddress))
	if account == nil {
		return nil, nil
	}

	state, bytes := account.GetState([]byte(genesisCfgKey))
	if !state {
		return nil, nil
	}

	genesis := &repo.GenesisConfig{}
	err := json.Unmarshal(bytes, genesis)
	if err != nil {
		return nil, err
	}

	return genesis, nil
}
