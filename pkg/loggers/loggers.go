package loggers

import (
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/daap-network/daap-ledger/pkg/repo"
)

const (
	App            = "app"
	Executor       = "executor"
	SystemContract = "system_contract"
	Storage        = "storage"
	CLI            = "cli"
)

var w = &LoggerWrapper{
	loggers: map[string]*logrus.Entry{
		App:            NewWithModule(App),
		Executor:       NewWithModule(Executor),
		SystemContract: NewWithModule(SystemContract),
		Storage:        NewWithModule(Storage),
		CLI:            NewWithModule(CLI),
	},
}

type LoggerWrapper struct {
	loggers map[string]*logrus.Entry
}

// NewWithModule returns a standalone logger tagged with module
func NewWithModule(name string) *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})
	return logger.WithField("module", name)
}

func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Initialize rebuilds every module logger from rep.Config.Log, when persist is set the
// output is also written to rotated files under <repo>/logs
func Initialize(rep *repo.Repo, persist bool) error {
	config := rep.Config.Log
	var out io.Writer = os.Stderr
	if persist {
		logDir := filepath.Join(rep.RepoRoot, repo.LogsDirName)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return errors.Wrap(err, "create log dir")
		}
		logPath := filepath.Join(logDir, config.Filename)
		rotation := config.RotationTime.ToDuration()
		if rotation <= 0 {
			rotation = 24 * time.Hour
		}
		writer, err := rotatelogs.New(
			logPath+".%Y%m%d%H%M.log",
			rotatelogs.WithLinkName(logPath+".log"),
			rotatelogs.WithMaxAge(time.Duration(config.MaxAge)*24*time.Hour),
			rotatelogs.WithRotationTime(rotation),
		)
		if err != nil {
			return errors.Wrap(err, "log initialize")
		}
		out = io.MultiWriter(os.Stderr, writer)
	}

	newModule := func(name string, level string) *logrus.Entry {
		logger := logrus.New()
		logger.SetOutput(out)
		logger.SetReportCaller(config.ReportCaller)
		logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:      config.EnableColor,
			DisableColors:    !config.EnableColor,
			DisableTimestamp: config.DisableTimestamp,
			FullTimestamp:    true,
			TimestampFormat:  time.RFC3339Nano,
		})
		logger.SetLevel(ParseLevel(level))
		return logger.WithField("module", name)
	}

	m := make(map[string]*logrus.Entry)
	m[App] = newModule(App, config.Level)
	m[Executor] = newModule(Executor, config.Module.Executor)
	m[SystemContract] = newModule(SystemContract, config.Module.SystemContract)
	m[Storage] = newModule(Storage, config.Module.Storage)
	m[CLI] = newModule(CLI, config.Module.CLI)

	w = &LoggerWrapper{loggers: m}
	return nil
}

func Logger(name string) logrus.FieldLogger {
	return w.loggers[name]
}
