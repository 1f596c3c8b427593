package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
)

var _ StateLedger = (*StateLedgerImpl)(nil)

type revision struct {
	id           int
	changerIndex int
}

// StateLedgerImpl is an in-memory StateLedger. It is not safe for concurrent
// use, the executor serializes access to it.
type StateLedgerImpl struct {
	logger logrus.FieldLogger

	accounts map[common.Address]*SimpleAccount
	logs     []*ethtypes.Log

	changer        *stateChanger
	validRevisions []revision
	nextRevisionId int

	version uint64
}

func NewStateLedger(logger logrus.FieldLogger) *StateLedgerImpl {
	return &StateLedgerImpl{
		logger:   logger,
		accounts: make(map[common.Address]*SimpleAccount),
		changer:  newChanger(),
	}
}

func (l *StateLedgerImpl) GetOrCreateAccount(addr common.Address) IAccount {
	if account, ok := l.accounts[addr]; ok {
		return account
	}

	account := NewAccount(l.logger, addr, l.changer)
	l.accounts[addr] = account
	l.changer.append(createObjectChange{account: &addr})
	l.logger.Debugf("[GetOrCreateAccount] create account, addr: %v", addr)
	return account
}

func (l *StateLedgerImpl) GetAccount(addr common.Address) IAccount {
	account, ok := l.accounts[addr]
	if !ok {
		return nil
	}
	return account
}

func (l *StateLedgerImpl) GetState(addr common.Address, key []byte) (bool, []byte) {
	account, ok := l.accounts[addr]
	if !ok {
		return false, nil
	}
	return account.GetState(key)
}

func (l *StateLedgerImpl) SetState(addr common.Address, key []byte, value []byte) {
	l.GetOrCreateAccount(addr).SetState(key, value)
}

func (l *StateLedgerImpl) Exist(addr common.Address) bool {
	account, ok := l.accounts[addr]
	return ok && !account.IsEmpty()
}

func (l *StateLedgerImpl) AddLog(log *ethtypes.Log) {
	log.Index = uint(len(l.logs))
	l.logs = append(l.logs, log)
	l.changer.append(addLogChange{})
}

func (l *StateLedgerImpl) GetLogs() []*ethtypes.Log {
	return l.logs
}

func (l *StateLedgerImpl) Snapshot() int {
	id := l.nextRevisionId
	l.nextRevisionId++
	l.validRevisions = append(l.validRevisions, revision{id: id, changerIndex: l.changer.length()})
	return id
}

func (l *StateLedgerImpl) RevertToSnapshot(revid int) {
	idx := sort.Search(len(l.validRevisions), func(i int) bool {
		return l.validRevisions[i].id >= revid
	})
	if idx == len(l.validRevisions) || l.validRevisions[idx].id != revid {
		panic(fmt.Errorf("revision id %v cannod be reverted", revid))
	}
	snap := l.validRevisions[idx].changerIndex

	l.changer.revert(l, snap)
	l.validRevisions = l.validRevisions[:idx]
}

func (l *StateLedgerImpl) Finalise() {
	current := time.Now()
	for addr := range l.changer.dirties {
		if account, ok := l.accounts[addr]; ok {
			account.finalise()
		}
	}
	l.changer.reset()
	l.validRevisions = l.validRevisions[:0]
	l.nextRevisionId = 0
	l.logs = nil
	l.version++
	finaliseDuration.Observe(float64(time.Since(current)) / float64(time.Second))
}

func (l *StateLedgerImpl) Version() uint64 {
	return l.version
}
