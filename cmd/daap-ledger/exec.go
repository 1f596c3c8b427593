package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/daap-network/daap-ledger/cmd/daap-ledger/common"
	"github.com/daap-network/daap-ledger/internal/executor"
	"github.com/daap-network/daap-ledger/internal/executor/system/token"
	"github.com/daap-network/daap-ledger/internal/ledger"
	"github.com/daap-network/daap-ledger/pkg/loggers"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

const metricsNamespace = "daap_ledger"

var execFileFlagVar string

var execCMD = &cli.Command{
	Name:   "exec",
	Usage:  "Boot the ledger from genesis and execute a batch of operations",
	Action: execBatchAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Batch file(toml) with [[operations]] entries",
			Destination: &execFileFlagVar,
			Required:    true,
		},
	},
}

type batchOperation struct {
	From string `toml:"from"`

	// To defaults to the genesis token contract
	To     string   `toml:"to"`
	Method string   `toml:"method"`
	Args   []string `toml:"args"`

	// Timestamp overrides the executor clock when non zero
	Timestamp uint64 `toml:"timestamp"`
}

type batch struct {
	Operations []*batchOperation `toml:"operations"`
}

type batchResult struct {
	Receipts    []*executor.Receipt
	Balances    map[ethcommon.Address]*big.Int
	TotalSupply *big.Int
}

func loadBatch(path string) (*batch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read batch file %s", path)
	}
	b := &batch{}
	if err := toml.Unmarshal(raw, b); err != nil {
		var decodeError *toml.DecodeError
		if errors.As(err, &decodeError) {
			return nil, errors.Errorf("decode batch file %s failed:\n%s", path, decodeError.String())
		}
		return nil, errors.Wrapf(err, "decode batch file %s failed", path)
	}
	return b, nil
}

func (op *batchOperation) toOperation() (*executor.Operation, error) {
	if !ethcommon.IsHexAddress(op.From) {
		return nil, errors.Errorf("invalid from address %q", op.From)
	}
	data, err := token.EncodeCall(op.Method, op.Args)
	if err != nil {
		return nil, err
	}
	res := &executor.Operation{
		From:      ethcommon.HexToAddress(op.From),
		Data:      data,
		Timestamp: op.Timestamp,
	}
	if op.To != "" {
		if !ethcommon.IsHexAddress(op.To) {
			return nil, errors.Errorf("invalid to address %q", op.To)
		}
		to := ethcommon.HexToAddress(op.To)
		res.To = &to
	}
	return res, nil
}

func execBatchAction(ctx *cli.Context) error {
	r, err := common.PrepareRepo(ctx)
	if err != nil {
		return err
	}
	b, err := loadBatch(execFileFlagVar)
	if err != nil {
		return err
	}

	res, err := runBatch(ctx.Context, r, b)
	if err != nil {
		return err
	}
	printBatchResult(os.Stdout, res)

	if r.Config.Monitor.Enable {
		return dumpMetrics(os.Stdout)
	}
	return nil
}

// runBatch executes every operation of b in order against a fresh ledger built from the genesis of r.
// A reverted operation does not stop the batch.
func runBatch(ctx context.Context, r *repo.Repo, b *batch) (*batchResult, error) {
	logger := loggers.Logger(loggers.CLI).WithField("batch", uuid.NewString())

	ops := make([]*executor.Operation, 0, len(b.Operations))
	for i, op := range b.Operations {
		o, err := op.toOperation()
		if err != nil {
			return nil, errors.Wrapf(err, "operation %d", i)
		}
		ops = append(ops, o)
	}

	stateLedger := ledger.NewStateLedger(loggers.Logger(loggers.Storage))
	exec, err := executor.New(r, stateLedger)
	if err != nil {
		return nil, err
	}
	if err := exec.Start(); err != nil {
		return nil, err
	}
	defer func() {
		_ = exec.Stop()
	}()

	logger.Infof("Execute %d operations", len(ops))
	for _, op := range ops {
		if _, err := exec.Execute(ctx, op); err != nil {
			return nil, err
		}
	}

	res := &batchResult{Receipts: exec.Receipts()}
	exec.View(func(daap *token.DAAP) {
		res.Balances = daap.Balances()
		res.TotalSupply = daap.TotalSupply()
	})
	logger.WithField("receipts", len(res.Receipts)).Info("Batch finished")
	return res, nil
}

func printBatchResult(out io.Writer, res *batchResult) {
	t := tabby.NewCustom(tabwriter.NewWriter(out, 0, 0, 2, ' ', 0))
	t.AddHeader("INDEX", "FROM", "METHOD", "STATUS", "LOGS", "RESULT")
	for _, receipt := range res.Receipts {
		status := color.GreenString(receipt.Status.String())
		result := formatReturn(receipt)
		if !receipt.Success() {
			status = color.RedString(receipt.Status.String())
			result = receipt.Err.Error()
		}
		t.AddLine(receipt.Index, receipt.From.Hex(), receipt.Method, status, len(receipt.Logs), result)
	}
	t.Print()
	fmt.Fprintln(out)

	addrs := lo.Keys(res.Balances)
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Cmp(addrs[j]) < 0
	})
	t = tabby.NewCustom(tabwriter.NewWriter(out, 0, 0, 2, ' ', 0))
	t.AddHeader("ACCOUNT", "BALANCE")
	for _, addr := range addrs {
		t.AddLine(addr.Hex(), res.Balances[addr].String())
	}
	t.AddLine("total supply", res.TotalSupply.String())
	t.Print()
}

func formatReturn(receipt *executor.Receipt) string {
	if len(receipt.Ret) == 0 {
		return ""
	}
	values, err := token.DecodeReturn(receipt.Method, receipt.Ret)
	if err != nil {
		return fmt.Sprintf("0x%x", receipt.Ret)
	}
	return strings.Join(lo.Map(values, func(v any, _ int) string {
		switch val := v.(type) {
		case [32]byte:
			return ethcommon.Hash(val).Hex()
		default:
			return fmt.Sprint(val)
		}
	}), ",")
}

func dumpMetrics(out io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	fmt.Fprintln(out)
	for _, mf := range lo.Filter(families, func(mf *dto.MetricFamily, _ int) bool {
		return strings.HasPrefix(mf.GetName(), metricsNamespace)
	}) {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return errors.Wrapf(err, "write metric %s", mf.GetName())
		}
	}
	return nil
}
