// Copyright © 2024 The libadalang-go authors

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Pateldisolution/libadalang/sem"
	"github.com/Pateldisolution/libadalang/sem/x/profiler"
)

// newContext builds an analysis context from the resolved configuration.
func newContext() (*sem.Context, error) {
	dialect, err := sem.ParseVersion(viper.GetString("dialect"))
	if err != nil {
		return nil, err
	}
	dirs := viper.GetStringSlice("source-path")
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	opts := []sem.Option{
		sem.WithDialect(dialect),
		sem.WithSourceDirs(dirs...),
	}
	switch profile := viper.GetString("profile"); profile {
	case "":
	case "otel":
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		opts = append(opts, sem.WithProfiler(profiler.NewOpenTelemetryAnnotator(context.Background())))
	case "opencensus":
		opts = append(opts, sem.WithProfiler(profiler.NewOpenCensusAnnotator(context.Background())))
	case "pprof":
		opts = append(opts, sem.WithProfiler(profiler.NewPprofAnnotator(context.Background())))
	default:
		return nil, fmt.Errorf("unknown profile backend %q", profile)
	}
	return sem.NewContext(opts...), nil
}
