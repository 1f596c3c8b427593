package common

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/daap-network/daap-ledger/internal/ledger"
)

// json entries carry a leading flag byte, a cleared entry is a lone tombstone
const (
	entryTombstone byte = 0
	entryLive      byte = 1
)

var ErrEntryNotFound = errors.New("system contract state entry not found")

func loadEntry[V any](account ledger.IAccount, key []byte) (bool, V, error) {
	var v V
	exist, data := account.GetState(key)
	if !exist || len(data) == 0 || data[0] == entryTombstone {
		return false, v, nil
	}
	if err := json.Unmarshal(data[1:], &v); err != nil {
		return false, v, errors.Wrapf(err, "decode state entry %s of %s", key, account.GetAddress())
	}
	return true, v, nil
}

func storeEntry[V any](account ledger.IAccount, key []byte, v V) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode state entry %s", key)
	}
	account.SetState(key, append([]byte{entryLive}, data...))
	return nil
}

func mustLoadEntry[V any](account ledger.IAccount, key []byte) (V, error) {
	exist, v, err := loadEntry[V](account, key)
	if err != nil {
		return v, err
	}
	if !exist {
		return v, errors.Wrapf(ErrEntryNotFound, "%s of %s", key, account.GetAddress())
	}
	return v, nil
}

// VMMap persists json values under "<mapName>_<key>"
type VMMap[K, V any] struct {
	account     ledger.IAccount
	mapName     string
	keyToString func(key K) string
}

func NewVMMap[K, V any](account ledger.IAccount, mapName string, keyToString func(key K) string) *VMMap[K, V] {
	return &VMMap[K, V]{
		account:     account,
		mapName:     mapName,
		keyToString: keyToString,
	}
}

func (m *VMMap[K, V]) stateKey(key K) []byte {
	return []byte(fmt.Sprintf("%s_%s", m.mapName, m.keyToString(key)))
}

func (m *VMMap[K, V]) Get(k K) (bool, V, error) {
	return loadEntry[V](m.account, m.stateKey(k))
}

// MustGet fails with ErrEntryNotFound when k was never put or has been deleted
func (m *VMMap[K, V]) MustGet(k K) (V, error) {
	return mustLoadEntry[V](m.account, m.stateKey(k))
}

func (m *VMMap[K, V]) Has(k K) bool {
	exist, data := m.account.GetState(m.stateKey(k))
	return exist && len(data) > 0 && data[0] == entryLive
}

func (m *VMMap[K, V]) Put(k K, v V) error {
	return storeEntry(m.account, m.stateKey(k), v)
}

func (m *VMMap[K, V]) Delete(k K) {
	m.account.SetState(m.stateKey(k), []byte{entryTombstone})
}

// VMSlot is a single json value stored under its slot name
type VMSlot[V any] struct {
	account ledger.IAccount
	key     []byte
}

func NewVMSlot[V any](account ledger.IAccount, slotName string) *VMSlot[V] {
	return &VMSlot[V]{
		account: account,
		key:     []byte(slotName),
	}
}

func (s *VMSlot[V]) Get() (bool, V, error) {
	return loadEntry[V](s.account, s.key)
}

func (s *VMSlot[V]) MustGet() (V, error) {
	return mustLoadEntry[V](s.account, s.key)
}

func (s *VMSlot[V]) Has() bool {
	exist, data := s.account.GetState(s.key)
	return exist && len(data) > 0 && data[0] == entryLive
}

func (s *VMSlot[V]) Put(v V) error {
	return storeEntry(s.account, s.key, v)
}

// VMWordMap stores fixed width 256-bit words under "<mapName>-<key>", a missing key reads as zero
type VMWordMap[K any] struct {
	contractAccount ledger.IAccount
	mapName         string
	keyToString     func(key K) string
}

func NewVMWordMap[K any](contractAccount ledger.IAccount, mapName string, keyToString func(key K) string) *VMWordMap[K] {
	return &VMWordMap[K]{
		contractAccount: contractAccount,
		mapName:         mapName,
		keyToString:     keyToString,
	}
}

func (m *VMWordMap[K]) Prefix() []byte {
	return []byte(m.mapName + "-")
}

func (m *VMWordMap[K]) stateKey(key K) []byte {
	return []byte(fmt.Sprintf("%s-%s", m.mapName, m.keyToString(key)))
}

func (m *VMWordMap[K]) Get(k K) *uint256.Int {
	exist, data := m.contractAccount.GetState(m.stateKey(k))
	if !exist {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).SetBytes(data)
}

func (m *VMWordMap[K]) Put(k K, v *uint256.Int) {
	word := v.Bytes32()
	m.contractAccount.SetState(m.stateKey(k), word[:])
}

// Iterate visits every stored word, keys are passed without the map prefix
func (m *VMWordMap[K]) Iterate(fn func(key string, v *uint256.Int) bool) {
	prefix := m.Prefix()
	m.contractAccount.IterateState(prefix, func(key, value []byte) bool {
		return fn(string(key[len(prefix):]), new(uint256.Int).SetBytes(value))
	})
}

// VMWordSlot is a single 256-bit word
type VMWordSlot struct {
	contractAccount ledger.IAccount
	slotName        string
}

func NewVMWordSlot(contractAccount ledger.IAccount, slotName string) *VMWordSlot {
	return &VMWordSlot{
		contractAccount: contractAccount,
		slotName:        slotName,
	}
}

func (s *VMWordSlot) Get() *uint256.Int {
	exist, data := s.contractAccount.GetState([]byte(s.slotName))
	if !exist {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).SetBytes(data)
}

func (s *VMWordSlot) Put(v *uint256.Int) {
	word := v.Bytes32()
	s.contractAccount.SetState([]byte(s.slotName), word[:])
}
