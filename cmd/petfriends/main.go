/*
Copyright 2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Viktoria-kramar/petfriends/pkg/cli"
	"github.com/Viktoria-kramar/petfriends/pkg/constants"
)

func main() {
	var options cli.Options

	options.AddFlags(pflag.CommandLine)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] COMMAND [ARGS]\n\n%s\nFlags:\n", constants.Application, cli.Usage)
		pflag.PrintDefaults()
	}

	pflag.Parse()

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)

	if options.Verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	defer func() {
		_ = zapLogger.Sync()
	}()

	logger := zapr.NewLogger(zapLogger).WithName("init")
	logger.V(1).Info("starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Run(ctx, &options, pflag.Args(), os.Stdout, zapr.NewLogger(zapLogger)); err != nil {
		fmt.Fprintln(os.Stderr, err)

		if errors.Is(err, cli.ErrUsage) {
			pflag.Usage()
		}

		stop()
		os.Exit(1) //nolint:gocritic
	}
}
