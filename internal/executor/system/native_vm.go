package system

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/daap-network/daap-ledger/internal/executor/system/common"
	"github.com/daap-network/daap-ledger/internal/executor/system/token"
	"github.com/daap-network/daap-ledger/internal/ledger"
	"github.com/daap-network/daap-ledger/pkg/loggers"
	"github.com/daap-network/daap-ledger/pkg/packer"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

var (
	ErrNotExistSystemContract         = errors.New("not exist this system contract")
	ErrNotExistMethodName             = errors.New("not exist method name of this system contract")
	ErrNotExistSystemContractABI      = errors.New("not exist this system contract abi")
	ErrNotDeploySystemContract        = errors.New("not deploy this system contract")
	ErrNotImplementFuncSystemContract = errors.New("not implement the function for this system contract")
	ErrInvalidArgs                    = errors.New("invalid arguments for system contract method")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

var _ common.VirtualMachine = (*NativeVM)(nil)

// NativeVM handle abi decoding for parameters and abi encoding for return data
type NativeVM struct {
	logger      logrus.FieldLogger
	stateLedger ledger.StateLedger
	from        ethcommon.Address
	to          *ethcommon.Address
	timestamp   uint64

	// contract address mapping to method signature
	contract2MethodSig map[ethcommon.Address]map[string][]byte
	// contract address mapping to contract abi
	contract2ABI map[ethcommon.Address]*abi.ABI
	// contract address mapping to contact instance
	contract2Instance map[ethcommon.Address]common.SystemContract

	token *token.DAAP
}

// New deploys every system contract, the token lives at the address named by the genesis config
func New(genesis *repo.GenesisConfig) *NativeVM {
	nvm := &NativeVM{
		logger:             loggers.Logger(loggers.SystemContract),
		contract2MethodSig: make(map[ethcommon.Address]map[string][]byte),
		contract2ABI:       make(map[ethcommon.Address]*abi.ABI),
		contract2Instance:  make(map[ethcommon.Address]common.SystemContract),
	}

	cfg := &common.SystemContractConfig{
		Logger: nvm.logger,
	}

	tokenAddr := genesis.ContractAddress()
	nvm.token = token.New(cfg, tokenAddr)
	nvm.Deploy(tokenAddr, &token.DAAPABI, token.Method2Sig, nvm.token)

	return nvm
}

func (nvm *NativeVM) Deploy(addr ethcommon.Address, contractABI *abi.ABI, method2Sig map[string]string, instance common.SystemContract) {
	// check system contract range
	if !common.IsSystemContractAddr(addr) {
		panic(fmt.Sprintf("this system contract %s is out of range", addr))
	}

	if _, ok := nvm.contract2Instance[addr]; ok {
		panic("deploy system contract repeated")
	}
	nvm.contract2Instance[addr] = instance
	nvm.contract2ABI[addr] = contractABI

	m2sig := make(map[string][]byte)
	for methodName, methodSig := range method2Sig {
		m2sig[methodName] = crypto.Keccak256([]byte(methodSig))
	}
	nvm.contract2MethodSig[addr] = m2sig
}

func (nvm *NativeVM) Reset(stateLedger ledger.StateLedger, from ethcommon.Address, to *ethcommon.Address, timestamp uint64) {
	nvm.stateLedger = stateLedger
	nvm.from = from
	nvm.to = to
	nvm.timestamp = timestamp
}

// Run dispatches calldata to the contract method named by its selector.
// Errors returned by the contract method are wrapped in a *packer.RevertError.
func (nvm *NativeVM) Run(data []byte) (execResult []byte, execErr error) {
	defer func() {
		if err := recover(); err != nil {
			nvm.logger.Error(err)
			execErr = errors.Errorf("%s", err)
		}
	}()

	if nvm.to == nil {
		return nil, ErrNotExistSystemContract
	}

	// get args and method, call the contract method
	contractAddr := *nvm.to
	contractInstance, ok := nvm.contract2Instance[contractAddr]
	if !ok {
		return nil, ErrNotDeploySystemContract
	}
	methodName, err := nvm.MethodName(contractAddr, data)
	if err != nil {
		return nil, err
	}

	// set context first
	contractInstance.SetContext(common.NewVMContext(nvm.stateLedger, nvm.from, nvm.timestamp))

	funcName := goMethodName(methodName)
	nvm.logger.Debugf("run system contract method name: %s", funcName)
	method := reflect.ValueOf(contractInstance).MethodByName(funcName)
	if !method.IsValid() {
		return nil, ErrNotImplementFuncSystemContract
	}
	args, err := nvm.parseArgs(contractAddr, data, methodName)
	if err != nil {
		return nil, err
	}
	inputs, err := convertInputs(method.Type(), args)
	if err != nil {
		return nil, errors.Wrapf(err, "method %s", methodName)
	}
	results := method.Call(inputs)

	var returnRes []any
	var returnErr error
	for _, result := range results {
		if result.Type().Implements(errorType) {
			if !result.IsNil() {
				returnErr = result.Interface().(error)
			}
			continue
		}
		returnRes = append(returnRes, result.Interface())
	}

	nvm.logger.Debugf("Contract addr: %s, method name: %s, return result: %+v, return error: %v", contractAddr, methodName, returnRes, returnErr)

	if returnErr != nil {
		return nil, packer.PackRevert(returnErr)
	}

	if returnRes != nil {
		return nvm.PackOutputArgs(contractAddr, methodName, returnRes...)
	}
	return nil, nil
}

// goMethodName maps an abi method name to the exported Go method implementing it.
// camelCase names get their first letter capitalized, SCREAMING_SNAKE names such as
// DOMAIN_SEPARATOR become DomainSeparator.
func goMethodName(methodName string) string {
	if methodName == "" {
		return methodName
	}
	if strings.Contains(methodName, "_") && methodName == strings.ToUpper(methodName) {
		words := strings.Split(strings.ToLower(methodName), "_")
		return strings.Join(lo.Map(words, func(w string, _ int) string {
			if w == "" {
				return w
			}
			return strings.ToUpper(w[:1]) + w[1:]
		}), "")
	}
	return fmt.Sprintf("%s%s", strings.ToUpper(methodName[:1]), methodName[1:])
}

// convertInputs matches abi decoded args to the parameters of the contract method,
// named types such as roles are converted from their underlying abi type
func convertInputs(methodType reflect.Type, args []any) ([]reflect.Value, error) {
	if methodType.NumIn() != len(args) {
		return nil, errors.Wrapf(ErrInvalidArgs, "expect %d args, got %d", methodType.NumIn(), len(args))
	}
	inputs := make([]reflect.Value, 0, len(args))
	for i, arg := range args {
		paramType := methodType.In(i)
		v := reflect.ValueOf(arg)
		switch {
		case v.Type().AssignableTo(paramType):
		case v.Type().ConvertibleTo(paramType):
			v = v.Convert(paramType)
		default:
			return nil, errors.Wrapf(ErrInvalidArgs, "arg %d is %s, expect %s", i, v.Type(), paramType)
		}
		inputs = append(inputs, v)
	}
	return inputs, nil
}

// MethodName quickly returns the name of a method of specified contract.
// The method id is the first 4 bytes of the keccak256 hash of the method signature.
func (nvm *NativeVM) MethodName(contractAddr ethcommon.Address, data []byte) (string, error) {
	if len(data) < 4 {
		return "", ErrNotExistMethodName
	}

	method2Sig, ok := nvm.contract2MethodSig[contractAddr]
	if !ok {
		return "", ErrNotExistSystemContract
	}

	for methodName, methodSig := range method2Sig {
		id := methodSig[:4]
		if bytes.Equal(id, data[:4]) {
			return methodName, nil
		}
	}

	return "", ErrNotExistMethodName
}

// parseArgs parse the arguments to specified interface by method name
func (nvm *NativeVM) parseArgs(contractAddr ethcommon.Address, data []byte, methodName string) ([]any, error) {
	if len(data) < 4 {
		return nil, errors.Errorf("msg data length is not improperly formatted: %q - Bytes: %+v", data, data)
	}

	// discard method id
	msgData := data[4:]

	contractABI, ok := nvm.contract2ABI[contractAddr]
	if !ok {
		return nil, ErrNotExistSystemContractABI
	}

	var args abi.Arguments
	if method, ok := contractABI.Methods[methodName]; ok {
		if len(msgData)%32 != 0 {
			return nil, errors.Errorf("system contract abi: improperly formatted input: %q - Bytes: %+v", msgData, msgData)
		}
		args = method.Inputs
	}

	if args == nil {
		return nil, errors.Errorf("system contract abi: could not locate named method: %s", methodName)
	}

	return args.Unpack(msgData)
}

// PackOutputArgs pack the output arguments by method name
func (nvm *NativeVM) PackOutputArgs(contractAddr ethcommon.Address, methodName string, outputArgs ...any) ([]byte, error) {
	contractABI, ok := nvm.contract2ABI[contractAddr]
	if !ok {
		return nil, ErrNotExistSystemContractABI
	}

	method, ok := contractABI.Methods[methodName]
	if !ok {
		return nil, errors.Errorf("system contract abi: could not locate named method: %s", methodName)
	}
	return method.Outputs.Pack(outputArgs...)
}

// UnpackOutputArgs unpack the output arguments by method name
func (nvm *NativeVM) UnpackOutputArgs(contractAddr ethcommon.Address, methodName string, packed []byte) ([]any, error) {
	contractABI, ok := nvm.contract2ABI[contractAddr]
	if !ok {
		return nil, ErrNotExistSystemContractABI
	}

	method, ok := contractABI.Methods[methodName]
	if !ok {
		return nil, errors.Errorf("system contract abi: could not locate named method: %s", methodName)
	}
	return method.Outputs.Unpack(packed)
}

// IsSystemContract judge if it is system contract
// return true if system contract, false if not
func (nvm *NativeVM) IsSystemContract(addr *ethcommon.Address) bool {
	if addr == nil {
		return false
	}

	_, ok := nvm.contract2Instance[*addr]
	return ok
}

// Token returns the deployed token contract, callers must SetContext before use
func (nvm *NativeVM) Token() *token.DAAP {
	return nvm.token
}

// InitGenesisData runs the genesis initialization of every deployed contract in address order
func (nvm *NativeVM) InitGenesisData(genesis *repo.GenesisConfig, lg ledger.StateLedger) error {
	addrs := lo.Keys(nvm.contract2Instance)
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Cmp(addrs[j]) < 0
	})
	for _, addr := range addrs {
		contract, ok := nvm.contract2Instance[addr].(common.GenesisContract)
		if !ok {
			continue
		}
		contract.SetContext(common.NewVMContext(lg, ethcommon.Address{}, 0))
		if err := contract.GenesisInit(genesis); err != nil {
			return errors.Wrapf(err, "init genesis data of system contract %s", addr)
		}
	}
	return nil
}
