// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package services adapts the skipper's long-running components to the
// suture.Service interface so they can be placed under supervision.
package services

import (
	"context"
	"time"
)

const stopTimeout = 5 * time.Second

// StartStopManager is implemented by any component with an explicit
// Start/Stop lifecycle (in cmd/server, the metrics HTTP server). Start should
// return once the component is running; Stop should return once it has
// released its resources.
type StartStopManager interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// StartStopService adapts a StartStopManager to suture.Service: Serve calls
// Start, blocks until the context is canceled, then calls Stop.
type StartStopService struct {
	name    string
	manager StartStopManager
}

// NewStartStopService wraps manager for use with a suture.Supervisor.
func NewStartStopService(name string, manager StartStopManager) *StartStopService {
	return &StartStopService{name: name, manager: manager}
}

// String identifies the service in suture's event logging.
func (s *StartStopService) String() string {
	return s.name
}

// Serve implements suture.Service.
func (s *StartStopService) Serve(ctx context.Context) error {
	if err := s.manager.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return s.manager.Stop(stopCtx)
}
