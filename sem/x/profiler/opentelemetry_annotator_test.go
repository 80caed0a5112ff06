// Copyright © 2024 The libadalang-go authors

package profiler_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Pateldisolution/libadalang/sem"
	"github.com/Pateldisolution/libadalang/sem/x/profiler"
)

const tinySpec = `package Tiny is
   procedure Op;
end Tiny;
`

const tinyBody = `package body Tiny is
   procedure Op is
   begin
      null;
   end Op;
end Tiny;
`

// newTinyContext builds a context over a spec/body pair whose queries the
// annotator under test observes.
func newTinyContext(t *testing.T, p sem.Profiler) *sem.Context {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.ads"), []byte(tinySpec), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.adb"), []byte(tinyBody), 0600))
	return sem.NewContext(sem.WithSourceDirs(dir), sem.WithProfiler(p))
}

// runBodyEnvQuery loads the body unit and asks for its package
// environment, which chains into a correspondence query and the spec
// unit's environments.
func runBodyEnvQuery(t *testing.T, ctx *sem.Context) {
	t.Helper()
	u := ctx.FetchUnit(nil, "Tiny", sem.UnitBody, true)
	require.NotNil(t, u)
	env := ctx.EnvOf(u.LibraryItem())
	assert.False(t, env.IsNoEnv())
}

func TestNewOpenTelemetryAnnotator(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)

	ctx := newTinyContext(t, profiler.NewOpenTelemetryAnnotator(context.Background()))
	runBodyEnvQuery(t, ctx)

	spans := exporter.GetSpans()
	assert.GreaterOrEqual(t, len(spans), 2, "Expected at least two spans")
	var names []string
	var nested bool
	for _, s := range spans {
		names = append(names, s.Name)
		if s.Parent.IsValid() {
			nested = true
		}
	}
	assert.Contains(t, names, "env:tiny")
	assert.True(t, nested, "Expected chained queries to nest their spans")
}

func TestNewOpenTelemetryAnnotatorSkip(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)

	ppa := profiler.NewOpenTelemetryAnnotator(context.Background(),
		profiler.WithSkipFilter(func(name string) bool {
			return strings.HasPrefix(name, "correspond:")
		}))
	ctx := newTinyContext(t, ppa)
	runBodyEnvQuery(t, ctx)

	for _, s := range exporter.GetSpans() {
		assert.False(t, strings.HasPrefix(s.Name, "correspond:"), "Filtered span %q exported", s.Name)
	}
}
