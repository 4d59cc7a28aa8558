package loggers

import (
	"github.com/meshplus/bitxhub-kit/log"
	"github.com/meshplus/txkernel/internal/repo"
	"github.com/sirupsen/logrus"
)

const (
	Kernel   = "kernel"
	Executor = "executor"
	Storage  = "storage"
	API      = "api"
	App      = "app"
	Profile  = "profile"
)

var w = &loggerWrapper{
	loggers: map[string]*logrus.Entry{
		Kernel:   log.NewWithModule(Kernel),
		Executor: log.NewWithModule(Executor),
		Storage:  log.NewWithModule(Storage),
		API:      log.NewWithModule(API),
		App:      log.NewWithModule(App),
		Profile:  log.NewWithModule(Profile),
	},
}

type loggerWrapper struct {
	loggers map[string]*logrus.Entry
}

func Initialize(config *repo.Config) {
	m := make(map[string]*logrus.Entry)
	m[Kernel] = log.NewWithModule(Kernel)
	m[Executor] = log.NewWithModule(Executor)
	m[Storage] = log.NewWithModule(Storage)
	m[API] = log.NewWithModule(API)
	m[App] = log.NewWithModule(App)
	m[Profile] = log.NewWithModule(Profile)

	w = &loggerWrapper{loggers: m}
	ReConfig(config)
}

// ReConfig applies the log levels of config to the existing loggers.
func ReConfig(config *repo.Config) {
	m := w.loggers
	m[Kernel].Logger.SetLevel(log.ParseLevel(config.Log.Module.Kernel))
	m[Executor].Logger.SetLevel(log.ParseLevel(config.Log.Module.Executor))
	m[Storage].Logger.SetLevel(log.ParseLevel(config.Log.Module.Storage))
	m[API].Logger.SetLevel(log.ParseLevel(config.Log.Module.API))
	m[App].Logger.SetLevel(log.ParseLevel(config.Log.Level))
	m[Profile].Logger.SetLevel(log.ParseLevel(config.Log.Module.Profile))
}

func Logger(name string) logrus.FieldLogger {
	return w.loggers[name]
}
