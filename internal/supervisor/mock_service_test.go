// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex
// SPDX-License-Identifier: AGPL-3.0-or-later

package supervisor

import (
	"context"
	"sync/atomic"
)

// mockService is a suture.Service test double that counts starts and can be
// told to fail a fixed number of times before succeeding.
type mockService struct {
	name       string
	starts     atomic.Int32
	failCount  atomic.Int32
	maxRuntime int
}

func newMockService(name string) *mockService {
	return &mockService{name: name}
}

func (m *mockService) SetFailCount(n int) {
	m.failCount.Store(int32(n))
}

func (m *mockService) StartCount() int {
	return int(m.starts.Load())
}

func (m *mockService) String() string {
	return m.name
}

func (m *mockService) Serve(ctx context.Context) error {
	m.starts.Add(1)
	if m.failCount.Load() > 0 {
		m.failCount.Add(-1)
		return errMockFailure
	}
	<-ctx.Done()
	return ctx.Err()
}

var errMockFailure = mockError("mock service failure")

type mockError string

func (e mockError) Error() string { return string(e) }
