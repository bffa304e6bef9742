package notify

import (
	"context"
	"fmt"
	"slices"

	"github.com/kardianos/service"
)

// ServiceName is the name registered with the OS service manager.
const ServiceName = "clockplan-notify"

// ServiceActions lists the control actions accepted by Control.
var ServiceActions = service.ControlAction[:]

// program adapts a Daemon to service.Interface.
type program struct {
	daemon *Daemon
	cancel context.CancelFunc
	done   chan struct{}
}

// Start implements service.Interface. It must not block.
func (p *program) Start(_ service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		p.daemon.Run(ctx)
	}()
	return nil
}

// Stop implements service.Interface.
func (p *program) Stop(_ service.Service) error {
	if p.cancel == nil {
		return nil
	}
	p.cancel()
	<-p.done
	return nil
}

// NewService wraps daemon as a per-user OS service. args are passed to the
// executable when the service manager starts it.
func NewService(daemon *Daemon, args []string) (service.Service, error) {
	cfg := &service.Config{
		Name:        ServiceName,
		DisplayName: "clockplan notifications",
		Description: "Sends a notification when a clockplan schedule starts.",
		Arguments:   args,
		Option: service.KeyValue{
			"UserService": true,
		},
	}
	svc, err := service.New(&program{daemon: daemon}, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating service: %w", err)
	}
	return svc, nil
}

// Control runs a service manager action: start, stop, restart, install or
// uninstall.
func Control(svc service.Service, action string) error {
	if !slices.Contains(ServiceActions, action) {
		return fmt.Errorf("unknown service action %q (supported: %v)", action, ServiceActions)
	}
	if err := service.Control(svc, action); err != nil {
		return fmt.Errorf("service %s: %w", action, err)
	}
	return nil
}

// StatusText describes the service state.
func StatusText(svc service.Service) (string, error) {
	st, err := svc.Status()
	if err != nil {
		if err == service.ErrNotInstalled {
			return "not installed", nil
		}
		return "", fmt.Errorf("service status: %w", err)
	}
	switch st {
	case service.StatusRunning:
		return "running", nil
	case service.StatusStopped:
		return "stopped", nil
	default:
		return "unknown", nil
	}
}
