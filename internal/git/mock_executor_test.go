package git

import (
	"context"
)

// MockCommandExecutor records commands without executing anything.
type MockCommandExecutor struct {
	Output              string
	LastCmd             Command
	Commands            []Command
	ExecuteFn           func(ctx context.Context, c Command) error
	ExecuteWithOutputFn func(ctx context.Context, c Command) (string, error)
}

// NewMockCommandExecutor creates a new mock executor.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{}
}

// Execute implements the CommandExecutor interface.
func (m *MockCommandExecutor) Execute(ctx context.Context, c Command) error {
	m.LastCmd = c
	m.Commands = append(m.Commands, c)

	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, c)
	}
	return nil
}

// ExecuteWithOutput implements the CommandExecutor interface.
func (m *MockCommandExecutor) ExecuteWithOutput(ctx context.Context, c Command) (string, error) {
	m.LastCmd = c
	m.Commands = append(m.Commands, c)

	if m.ExecuteWithOutputFn != nil {
		return m.ExecuteWithOutputFn(ctx, c)
	}
	return m.Output, nil
}
