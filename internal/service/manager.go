package service

import (
	"fmt"
	"os"
	"time"

	"github.com/kardianos/service"
)

// Manager wraps the OS service facility around the watcher daemon.
type Manager struct {
	service service.Service
	daemon  *Daemon
}

type program struct {
	daemon *Daemon
}

func (p *program) Start(service.Service) error {
	return p.daemon.Start()
}

func (p *program) Stop(service.Service) error {
	return p.daemon.Stop()
}

func NewManager(interval time.Duration, maxAncestorDepth int) (*Manager, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("get executable path: %w", err)
	}

	svcConfig := &service.Config{
		Name:        "umanager",
		DisplayName: "umanager USB Monitor",
		Description: "Watches removable USB storage devices and logs attach/detach events",
		Executable:  execPath,
		Arguments:   []string{"service", "run"},
	}

	daemon := NewDaemon(interval, maxAncestorDepth)
	svc, err := service.New(&program{daemon: daemon}, svcConfig)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	return &Manager{service: svc, daemon: daemon}, nil
}

// Run hands control to the service runtime (blocking). Used by the
// installed service entry point.
func (m *Manager) Run() error {
	return m.service.Run()
}

func (m *Manager) Install() error   { return m.service.Install() }
func (m *Manager) Uninstall() error { return m.service.Uninstall() }
func (m *Manager) Start() error     { return m.service.Start() }
func (m *Manager) Stop() error      { return m.service.Stop() }

// Status reports the service state as a display string.
func (m *Manager) Status() string {
	status, err := m.service.Status()
	if err != nil {
		return "Unknown"
	}
	switch status {
	case service.StatusRunning:
		return "Running"
	case service.StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
