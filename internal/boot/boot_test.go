package boot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/finbase/wallet-service/internal/boot"
)

func step(name string, order *[]string, err error) boot.Step {
	return boot.Step{
		Name: name,
		Connect: func(ctx context.Context) error {
			*order = append(*order, name)
			return err
		},
	}
}

func TestRunnerRunsStepsInOrder(t *testing.T) {
	var order []string
	r := boot.NewRunner(zaptest.NewLogger(t),
		step("postgres", &order, nil),
		step("redis", &order, nil),
		step("event bus", &order, nil),
	)

	require.NoError(t, r.Run(context.Background()))
	require.Equal(t, []string{"postgres", "redis", "event bus"}, order)
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	cause := errors.New("connection refused")
	var order []string
	r := boot.NewRunner(zaptest.NewLogger(t),
		step("postgres", &order, nil),
		step("redis", &order, cause),
		step("event bus", &order, nil),
	)

	err := r.Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "redis")
	require.Equal(t, []string{"postgres", "redis"}, order,
		"steps after the failing one must not be attempted")
}

func TestRunnerWithoutSteps(t *testing.T) {
	r := boot.NewRunner(zaptest.NewLogger(t))
	require.NoError(t, r.Run(context.Background()))
}

func TestDepsCloseWithNothingConnected(t *testing.T) {
	deps := &boot.Deps{}
	deps.Close(zaptest.NewLogger(t))
}

func TestDepsCheckReportsUninitializedDependencies(t *testing.T) {
	checks := (&boot.Deps{}).Check(context.Background())

	require.Len(t, checks, 3)
	for name, err := range checks {
		require.Error(t, err, "dependency %s should report as uninitialized", name)
	}
}
