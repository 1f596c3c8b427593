package executor

import (
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/daap-network/daap-ledger/pkg/events"
	"github.com/daap-network/daap-ledger/pkg/packer"
)

// applyOperation runs op inside a snapshot. A failed op is rolled back, a successful one is
// finalised when commit is set and rolled back otherwise. Callers hold exec.lock.
func (exec *LedgerExecutor) applyOperation(op *Operation, commit bool) *Receipt {
	current := time.Now()

	to := exec.rep.GenesisConfig.ContractAddress()
	if op.To != nil {
		to = *op.To
	}
	timestamp := op.Timestamp
	if timestamp == 0 {
		timestamp = exec.clock.Now()
	}

	receipt := &Receipt{
		From:      op.From,
		To:        to,
		Timestamp: timestamp,
	}
	if method, err := exec.nvm.MethodName(to, op.Data); err == nil {
		receipt.Method = method
	}

	snapshot := exec.stateLedger.Snapshot()
	exec.nvm.Reset(exec.stateLedger, op.From, &to, timestamp)
	ret, err := exec.nvm.Run(op.Data)
	if err != nil {
		exec.stateLedger.RevertToSnapshot(snapshot)
		receipt.Status = ReceiptFAILED
		receipt.Err = err
		var revertErr *packer.RevertError
		if errors.As(err, &revertErr) {
			receipt.RevertData = revertErr.Data
		}
	} else {
		receipt.Status = ReceiptSUCCESS
		receipt.Ret = ret
		receipt.Logs = copyLogs(exec.stateLedger.GetLogs())
		if commit {
			exec.stateLedger.Finalise()
		} else {
			exec.stateLedger.RevertToSnapshot(snapshot)
		}
	}

	fields := logrus.Fields{
		"from":   op.From.String(),
		"method": receipt.Method,
		"status": receipt.Status.String(),
	}
	if receipt.Err != nil {
		fields["err"] = receipt.Err.Error()
	}

	if !commit {
		exec.logger.WithFields(fields).Debug("Call operation")
		return receipt
	}

	receipt.Index = exec.nextIndex
	exec.nextIndex++
	if receipt.Success() || exec.rep.Config.Executor.KeepFailedReceipts {
		exec.receipts = append(exec.receipts, receipt)
	}

	operationCounter.WithLabelValues(methodLabel(receipt.Method), receipt.Status.String()).Inc()
	executeOperationDuration.Observe(float64(time.Since(current)) / float64(time.Second))
	emittedLogCounter.Add(float64(len(receipt.Logs)))

	fields["index"] = receipt.Index
	fields["logs"] = len(receipt.Logs)
	fields["elapse"] = time.Since(current)
	if receipt.Success() {
		exec.logger.WithFields(fields).Info("Executed operation")
	} else {
		exec.logger.WithFields(fields).Warn("Operation reverted")
	}

	exec.postExecuteEvent(receipt)
	return receipt
}

func (exec *LedgerExecutor) postExecuteEvent(receipt *Receipt) {
	exec.receiptFeed.Send(events.ExecutedEvent{
		Index:        receipt.Index,
		From:         receipt.From,
		Method:       receipt.Method,
		Success:      receipt.Success(),
		Timestamp:    receipt.Timestamp,
		Logs:         receipt.Logs,
		StateVersion: exec.stateLedger.Version(),
	})
	if len(receipt.Logs) > 0 {
		exec.logsFeed.Send(receipt.Logs)
	}
}

func copyLogs(logs []*ethtypes.Log) []*ethtypes.Log {
	res := make([]*ethtypes.Log, 0, len(logs))
	for _, l := range logs {
		cp := *l
		cp.Topics = append([]ethcommon.Hash(nil), l.Topics...)
		cp.Data = ethcommon.CopyBytes(l.Data)
		res = append(res, &cp)
	}
	return res
}

func methodLabel(method string) string {
	if method == "" {
		return "unknown"
	}
	return method
}
