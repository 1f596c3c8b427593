package executor

import (
	"context"
	"sync"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/daap-network/daap-ledger/internal/executor/system"
	"github.com/daap-network/daap-ledger/internal/executor/system/common"
	"github.com/daap-network/daap-ledger/internal/executor/system/token"
	"github.com/daap-network/daap-ledger/internal/ledger"
	"github.com/daap-network/daap-ledger/internal/ledger/genesis"
	"github.com/daap-network/daap-ledger/pkg/events"
	"github.com/daap-network/daap-ledger/pkg/loggers"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

const (
	operationChanNumber = 1024
)

var (
	ErrExecutorStopped = errors.New("executor stopped")
	ErrNilOperation    = errors.New("nil operation")
)

var _ Executor = (*LedgerExecutor)(nil)

// LedgerExecutor applies operations to the state ledger one at a time
type LedgerExecutor struct {
	rep         *repo.Repo
	logger      logrus.FieldLogger
	stateLedger ledger.StateLedger
	nvm         *system.NativeVM
	clock       Clock

	opC         chan *Operation
	quitC       chan struct{}
	receiptFeed event.Feed
	logsFeed    event.Feed
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup

	// stopLock guards stopped, senders hold it for reading while they enqueue
	stopLock *sync.RWMutex
	started  bool
	stopped  bool

	lock      *sync.Mutex
	nextIndex uint64
	receipts  []*Receipt
}

// New creates executor instance, an empty state ledger is initialized from the genesis config of rep
func New(rep *repo.Repo, stateLedger ledger.StateLedger) (*LedgerExecutor, error) {
	ctx, cancel := context.WithCancel(context.Background())

	exec := &LedgerExecutor{
		rep:         rep,
		logger:      loggers.Logger(loggers.Executor),
		stateLedger: stateLedger,
		nvm:         system.New(rep.GenesisConfig),
		clock:       wallClock{},
		opC:         make(chan *Operation, operationChanNumber),
		quitC:       make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
		stopLock:    &sync.RWMutex{},
		lock:        &sync.Mutex{},
	}
	if rep.Config.Executor.FixedTimestamp != 0 {
		exec.clock = FixedClock(rep.Config.Executor.FixedTimestamp)
	}

	existing, err := genesis.GetGenesisConfig(stateLedger)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "read genesis config from ledger")
	}
	if existing == nil {
		if err := genesis.Initialize(rep.GenesisConfig, stateLedger, exec.nvm); err != nil {
			cancel()
			return nil, errors.Wrap(err, "initialize genesis state")
		}
		exec.logger.WithFields(logrus.Fields{
			"token":    rep.GenesisConfig.Token.Symbol,
			"contract": rep.GenesisConfig.Token.ContractAddress,
			"accounts": len(rep.GenesisConfig.Accounts),
		}).Info("Genesis state initialized")
	}

	return exec, nil
}

// SetClock replaces the block time source, it must be called before any operation runs
func (exec *LedgerExecutor) SetClock(clock Clock) {
	exec.lock.Lock()
	defer exec.lock.Unlock()
	exec.clock = clock
}

// Start starts executor
func (exec *LedgerExecutor) Start() error {
	exec.stopLock.Lock()
	defer exec.stopLock.Unlock()
	if exec.stopped {
		return ErrExecutorStopped
	}
	if exec.started {
		return nil
	}
	exec.started = true

	exec.wg.Add(1)
	go exec.listenExecuteEvent()

	exec.logger.WithFields(logrus.Fields{
		"contract": exec.rep.GenesisConfig.Token.ContractAddress,
		"version":  exec.stateLedger.Version(),
	}).Infof("LedgerExecutor started")

	return nil
}

// Stop stops executor. Operations already accepted by AsyncExecute are executed
// before Stop returns, later ones are rejected with ErrExecutorStopped.
func (exec *LedgerExecutor) Stop() error {
	// unblock senders waiting on a full queue
	exec.cancel()

	exec.stopLock.Lock()
	if exec.stopped {
		exec.stopLock.Unlock()
		return nil
	}
	exec.stopped = true
	started := exec.started
	exec.stopLock.Unlock()

	close(exec.quitC)
	if started {
		exec.wg.Wait()
	} else {
		exec.drain()
	}

	exec.logger.Info("LedgerExecutor stopped")

	return nil
}

func (exec *LedgerExecutor) Execute(ctx context.Context, op *Operation) (*Receipt, error) {
	if op == nil {
		return nil, ErrNilOperation
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	exec.lock.Lock()
	defer exec.lock.Unlock()

	return exec.applyOperation(op, true), nil
}

func (exec *LedgerExecutor) AsyncExecute(op *Operation) error {
	if op == nil {
		return ErrNilOperation
	}
	exec.stopLock.RLock()
	defer exec.stopLock.RUnlock()
	if exec.stopped || exec.ctx.Err() != nil {
		return ErrExecutorStopped
	}
	select {
	case <-exec.ctx.Done():
		return ErrExecutorStopped
	case exec.opC <- op:
		return nil
	}
}

func (exec *LedgerExecutor) Call(op *Operation) (*Receipt, error) {
	if op == nil {
		return nil, ErrNilOperation
	}
	exec.lock.Lock()
	defer exec.lock.Unlock()

	return exec.applyOperation(op, false), nil
}

func (exec *LedgerExecutor) View(fn func(daap *token.DAAP)) {
	exec.lock.Lock()
	defer exec.lock.Unlock()

	daap := exec.nvm.Token()
	daap.SetContext(common.NewVMContext(exec.stateLedger, exec.rep.GenesisConfig.ContractAddress(), exec.clock.Now()))
	fn(daap)
}

// Receipts returns the receipts kept since the executor was created, failed receipts
// are only kept when the executor config asks for them
func (exec *LedgerExecutor) Receipts() []*Receipt {
	exec.lock.Lock()
	defer exec.lock.Unlock()

	res := make([]*Receipt, len(exec.receipts))
	copy(res, exec.receipts)
	return res
}

// SubscribeExecutedEvent registers a subscription of ExecutedEvent.
func (exec *LedgerExecutor) SubscribeExecutedEvent(ch chan<- events.ExecutedEvent) event.Subscription {
	return exec.receiptFeed.Subscribe(ch)
}

func (exec *LedgerExecutor) SubscribeLogsEvent(ch chan<- []*ethtypes.Log) event.Subscription {
	return exec.logsFeed.Subscribe(ch)
}

func (exec *LedgerExecutor) listenExecuteEvent() {
	defer exec.wg.Done()
	for {
		select {
		case <-exec.quitC:
			exec.drain()
			return
		case op := <-exec.opC:
			exec.processOperation(op)
		}
	}
}

// drain executes what is left in the queue, no sender is active once quitC is closed
func (exec *LedgerExecutor) drain() {
	for {
		select {
		case op := <-exec.opC:
			exec.processOperation(op)
		default:
			return
		}
	}
}

func (exec *LedgerExecutor) processOperation(op *Operation) {
	exec.lock.Lock()
	defer exec.lock.Unlock()
	exec.applyOperation(op, true)
}
