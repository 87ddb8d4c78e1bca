/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/google/tabula/core/csvimport"
	"github.com/google/tabula/core/server"
)

type serveParams struct {
	commonParams
	addr  string
	csv   string
	watch bool
}

func init() {
	RootCommand.AddCommand(newServeCommand())
}

func newServeCommand() *cobra.Command {
	var params serveParams
	serveCommand := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo grids over HTTP",
		Long: `Start an HTTP server with one grid per dataset and browser session.

A CSV file given with --csv is served as an extra dataset named after the
file. With --watch the dataset is reloaded into every open grid whenever the
file changes.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if params.watch && params.csv == "" {
				return errors.New("--watch requires --csv")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, &params)
		},
	}
	params.addFlags(serveCommand)
	fs := serveCommand.Flags()
	fs.StringVarP(&params.addr, "addr", "a", "", "set listening address of the server (overrides server.addr)")
	fs.StringVar(&params.csv, "csv", "", "serve the CSV file at this path as an extra dataset")
	fs.BoolVarP(&params.watch, "watch", "w", false, "reload the --csv dataset when the file changes")
	return serveCommand
}

func runServe(ctx context.Context, cmd *cobra.Command, params *serveParams) error {
	cfg, err := params.load()
	if err != nil {
		return err
	}
	if params.addr != "" {
		cfg.Server.Addr = params.addr
	}
	logger := cfg.Log.Logger()

	var extra []server.Dataset
	csvName := ""
	if params.csv != "" {
		csvName = strings.TrimSuffix(filepath.Base(params.csv), filepath.Ext(params.csv))
		d, err := server.LoadCSVDataset(csvName, params.csv, csvimport.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", params.csv, err)
		}
		extra = append(extra, d)
	}
	product, err := params.buildProduct(extra...)
	if err != nil {
		return err
	}

	s, err := server.NewServer(product, server.Options{
		SessionCacheSize: cfg.Server.SessionCacheSize,
		ActionsPerSecond: cfg.Server.ActionsPerSecond,
		Burst:            cfg.Server.Burst,
		Env:              envFromConfig(cfg, logger),
	})
	if err != nil {
		return err
	}
	defer s.Close()

	if params.watch {
		go func() {
			if err := s.WatchCSV(ctx, csvName); err != nil {
				logger.Errorf("Stopped watching %s: %v", params.csv, err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.ListenAndServe()
	}()
	logger.WithField("addr", cfg.Server.Addr).Infof("Serving %d datasets", len(product.GetDatasets()))
	fmt.Fprintf(cmd.OutOrStdout(), "Tabula listening on %s\n", cfg.Server.Addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Infof("Shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
