package profile

import (
	"fmt"
	"net/http"

	"github.com/meshplus/txkernel/internal/loggers"
	"github.com/meshplus/txkernel/internal/repo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Monitor struct {
	enable bool
	port   int64
	server *http.Server
	logger logrus.FieldLogger
}

func NewMonitor(config *repo.Config) (*Monitor, error) {
	monitor := &Monitor{
		enable: config.Monitor.Enable,
		port:   config.Port.Monitor,
		logger: loggers.Logger(loggers.Profile),
	}

	monitor.init()

	return monitor, nil
}

func (m *Monitor) init() {
	if !m.enable {
		m.server = nil
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	m.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", m.port),
		Handler: mux,
	}
}

// Start starts the prometheus monitor
func (m *Monitor) Start() error {
	if !m.enable {
		return nil
	}

	m.logger.WithField("port", m.port).Info("Start monitor")
	go func(server *http.Server) {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.WithField("err", err).Error("Monitor server exited")
		}
	}(m.server)

	return nil
}

// Stop stops the prometheus monitor
func (m *Monitor) Stop() error {
	if !m.enable {
		return nil
	}

	m.logger.WithField("port", m.port).Info("Stop monitor")
	return m.server.Close()
}

// ReConfig restarts the monitor when its switch or port changed.
func (m *Monitor) ReConfig(config *repo.Config) error {
	if m.enable == config.Monitor.Enable && m.port == config.Port.Monitor {
		return nil
	}

	if err := m.Stop(); err != nil {
		return err
	}
	m.enable = config.Monitor.Enable
	m.port = config.Port.Monitor
	m.init()

	return m.Start()
}
