package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/livelink/pkg/runner"
	"github.com/stretchr/testify/mock"
)

// CallLog records the order in which mocks are invoked across the pipeline
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *CallLog) add(call string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

// Calls returns the recorded calls in order
func (l *CallLog) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// MockRunner is a mock implementation of runner.Runner
type MockRunner struct {
	mock.Mock
	Log *CallLog
}

func (m *MockRunner) Run(ctx context.Context, cmd runner.Command) error {
	m.Log.add(cmd.String() + " @ " + cmd.Dir)
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// MockCloner is a mock implementation of git.Cloner
type MockCloner struct {
	mock.Mock
	Log *CallLog
}

func (m *MockCloner) Clone(ctx context.Context, url, dir string) error {
	m.Log.add("clone " + url + " @ " + dir)
	args := m.Called(ctx, url, dir)
	return args.Error(0)
}
