package telemetry

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func TestWithSpan(t *testing.T) {
	recorder := withRecorder(t)

	err := WithSpan(context.Background(), "embed.docs", func(ctx context.Context) error {
		SetAttributes(ctx, attribute.Int("files", 3))
		return nil
	}, attribute.String("provider", "nextjs"))
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "embed.docs", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("provider", "nextjs"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("files", 3))
}

func TestWithSpanError(t *testing.T) {
	recorder := withRecorder(t)

	err := WithSpan(context.Background(), "embed.skills", func(context.Context) error {
		return errors.New("no skills found")
	})
	require.EqualError(t, err, "no skills found")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "no skills found", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestInitTracerDisabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(Config{}).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(Config{SamplerType: "never"}).Description())
	assert.Contains(t, sampler(Config{SamplerType: "ratio", SamplerRatio: 0.5}).Description(), "ParentBased")
}
