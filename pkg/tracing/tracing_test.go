package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finbase/wallet-service/pkg/tracing"
)

func TestInitTracerProviderDisabled(t *testing.T) {
	tp, err := tracing.InitTracerProvider(context.Background(), tracing.Config{
		Enabled: false,
	})
	require.NoError(t, err)
	require.NotNil(t, tp)

	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestInitTracerProviderEnabled(t *testing.T) {
	// The OTLP gRPC exporter dials lazily, so init succeeds even without a
	// collector listening.
	tp, err := tracing.InitTracerProvider(context.Background(), tracing.Config{
		Enabled:        true,
		Endpoint:       "localhost:4317",
		ServiceName:    "wallet-service",
		ServiceVersion: "test",
	})
	require.NoError(t, err)
	require.NotNil(t, tp)

	require.NoError(t, tp.Shutdown(context.Background()))
}
