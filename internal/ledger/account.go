package ledger

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
)

var _ IAccount = (*SimpleAccount)(nil)

type bytesLazyLogger struct {
	bytes []byte
}

func (l *bytesLazyLogger) String() string {
	return hexutil.Encode(l.bytes)
}

type SimpleAccount struct {
	logger logrus.FieldLogger
	Addr   common.Address

	// The confirmed state of the previous operations
	originState map[string][]byte

	// The latest state of the current operation, nil value means deleted
	dirtyState map[string][]byte

	changer *stateChanger
}

func NewAccount(logger logrus.FieldLogger, addr common.Address, changer *stateChanger) *SimpleAccount {
	return &SimpleAccount{
		logger:      logger,
		Addr:        addr,
		originState: make(map[string][]byte),
		dirtyState:  make(map[string][]byte),
		changer:     changer,
	}
}

// NewMockAccount returns a standalone account without journal, used by tests
func NewMockAccount(addr common.Address) *SimpleAccount {
	return NewAccount(logrus.StandardLogger(), addr, newChanger())
}

func (o *SimpleAccount) String() string {
	return fmt.Sprintf("{address: %s, state keys: %d}", o.Addr, len(o.originState)+len(o.dirtyState))
}

func (o *SimpleAccount) GetAddress() common.Address {
	return o.Addr
}

func (o *SimpleAccount) GetState(key []byte) (bool, []byte) {
	if value, exist := o.dirtyState[string(key)]; exist {
		if value == nil {
			return false, nil
		}
		o.logger.Debugf("[GetState] get from dirty, addr: %v, key: %v, state: %v", o.Addr, &bytesLazyLogger{bytes: key}, &bytesLazyLogger{bytes: value})
		return true, value
	}

	value, exist := o.originState[string(key)]
	if !exist {
		return false, nil
	}
	o.logger.Debugf("[GetState] get from origin, addr: %v, key: %v, state: %v", o.Addr, &bytesLazyLogger{bytes: key}, &bytesLazyLogger{bytes: value})
	return true, value
}

func (o *SimpleAccount) GetCommittedState(key []byte) []byte {
	return o.originState[string(key)]
}

func (o *SimpleAccount) SetState(key []byte, value []byte) {
	_, prev := o.GetState(key)
	o.changer.append(storageChange{
		account:  o,
		key:      append([]byte(nil), key...),
		prevalue: prev,
	})
	o.logger.Debugf("[SetState] addr: %v, key: %v, before state: %v, after state: %v", o.Addr, &bytesLazyLogger{bytes: key}, &bytesLazyLogger{bytes: prev}, &bytesLazyLogger{bytes: value})
	o.setState(key, value)
}

func (o *SimpleAccount) setState(key []byte, value []byte) {
	if value == nil {
		o.dirtyState[string(key)] = nil
		return
	}
	o.dirtyState[string(key)] = append([]byte(nil), value...)
}

func (o *SimpleAccount) IterateState(prefix []byte, fn func(key, value []byte) bool) {
	keys := make(map[string]struct{}, len(o.originState)+len(o.dirtyState))
	for k := range o.originState {
		keys[k] = struct{}{}
	}
	for k := range o.dirtyState {
		keys[k] = struct{}{}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		if bytes.HasPrefix([]byte(k), prefix) {
			sorted = append(sorted, k)
		}
	}
	sort.Strings(sorted)

	for _, k := range sorted {
		exist, value := o.GetState([]byte(k))
		if !exist {
			continue
		}
		if !fn([]byte(k), value) {
			return
		}
	}
}

func (o *SimpleAccount) IsEmpty() bool {
	empty := true
	o.IterateState(nil, func(_, _ []byte) bool {
		empty = false
		return false
	})
	return empty
}

// finalise moves the dirty state into the committed state
func (o *SimpleAccount) finalise() {
	for k, v := range o.dirtyState {
		if v == nil {
			delete(o.originState, k)
			continue
		}
		o.originState[k] = v
	}
	o.dirtyState = make(map[string][]byte)
}
