package packer

import (
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrorSelector is the selector of the solidity builtin Error(string)
var ErrorSelector = crypto.Keccak256([]byte("Error(string)"))[:4]

type Event interface {
	Pack(abi abi.ABI) (*types.Log, error)
}

// PackEvent builds a log from an event struct whose exported fields are named after the abi inputs
func PackEvent(eventStruct any, event abi.Event) (*types.Log, error) {
	if rv := reflect.ValueOf(eventStruct); rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, errors.New("event struct is nil")
	}
	// references: https://medium.com/mycrypto/understanding-event-logs-on-the-ethereum-blockchain-f4ae7ba50378
	var noIndexedArgs []any
	topicArgs := [][]any{
		{event.ID},
	}
	v := reflect.ValueOf(eventStruct).Elem()
	for _, input := range event.Inputs {
		field := v.FieldByName(abi.ToCamelCase(input.Name))
		if !field.IsValid() {
			return nil, errors.Errorf("event %s missing field %s", event.Name, abi.ToCamelCase(input.Name))
		}
		if !input.Indexed {
			noIndexedArgs = append(noIndexedArgs, field.Interface())
		} else {
			topicArgs = append(topicArgs, []any{field.Interface()})
		}
	}

	topics, err := abi.MakeTopics(topicArgs...)
	if err != nil {
		return nil, errors.Wrapf(err, "event %s make topics error", event.Name)
	}

	packedData, err := event.Inputs.NonIndexed().Pack(noIndexedArgs...)
	if err != nil {
		return nil, errors.Wrapf(err, "event %s pack args error", event.Name)
	}

	return &types.Log{
		Topics: lo.Map(topics, func(t []common.Hash, i int) common.Hash {
			return t[0]
		}),
		Data:    packedData,
		Removed: false,
	}, nil
}

// UnpackEvent fills eventStruct from a log produced by PackEvent
func UnpackEvent(eventStruct any, event abi.Event, log *types.Log) error {
	if len(log.Topics) == 0 || log.Topics[0] != event.ID {
		return errors.Errorf("log is not a %s event", event.Name)
	}
	if len(log.Data) > 0 {
		values, err := event.Inputs.NonIndexed().Unpack(log.Data)
		if err != nil {
			return errors.Wrapf(err, "event %s unpack data error", event.Name)
		}
		v := reflect.ValueOf(eventStruct).Elem()
		for i, input := range event.Inputs.NonIndexed() {
			field := v.FieldByName(abi.ToCamelCase(input.Name))
			if !field.IsValid() || !reflect.ValueOf(values[i]).Type().AssignableTo(field.Type()) {
				return errors.Errorf("event %s cannot set field %s", event.Name, abi.ToCamelCase(input.Name))
			}
			field.Set(reflect.ValueOf(values[i]))
		}
	}
	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if err := abi.ParseTopics(eventStruct, indexed, log.Topics[1:]); err != nil {
		return errors.Wrapf(err, "event %s parse topics error", event.Name)
	}
	return nil
}

type RevertError struct {
	Err error

	// Data is the abi encoded revert reason
	Data []byte

	// reverted result
	Str string
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("%s errdata %s", e.Err.Error(), e.Str)
}

func (e *RevertError) Unwrap() error {
	return e.Err
}

// PackRevert encodes err as Error(string) so callers get the same revert data a solidity contract returns
func PackRevert(err error) *RevertError {
	reason := err.Error()
	stringTy, _ := abi.NewType("string", "", nil)
	packed, packErr := abi.Arguments{{Type: stringTy}}.Pack(reason)
	if packErr != nil {
		return &RevertError{Err: err, Str: reason}
	}
	return &RevertError{
		Err:  err,
		Data: append(common.CopyBytes(ErrorSelector), packed...),
		Str:  reason,
	}
}
