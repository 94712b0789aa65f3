/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"payments-engine-go/internal/common"
	"payments-engine-go/internal/config"
	"payments-engine-go/internal/csvio"
	"payments-engine-go/internal/ledger"
)

func main() {
	debug := flag.Bool("debug", false, "Log every rejected record to stderr and print a processing summary")
	auditDb := flag.String("audit-db", "", "Optional SQLite file recording applied transactions, rejections and the final snapshot (overrides AUDIT_DB_PATH)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: engine [--debug] [--audit-db file] transactions.csv")
		os.Exit(2)
	}
	inputFile := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Engine.Debug = true
	}
	if *auditDb != "" {
		cfg.Audit.Path = *auditDb
	}

	logger, loggerCleanup := common.InitializeLogger(cfg.Engine.Debug)
	defer loggerCleanup()

	ctx := context.Background()

	audit, auditCleanup, err := common.OpenAuditSink(ctx, cfg.Audit)
	if err != nil {
		zap.L().Fatal("Failed to open audit database", zap.Error(err))
	}
	defer auditCleanup()

	input, err := os.Open(inputFile)
	if err != nil {
		zap.L().Fatal("Failed to open transactions file",
			zap.String("file", inputFile),
			zap.Error(err))
	}
	defer input.Close()

	var reporter ledger.Reporter = ledger.NopReporter{}
	if cfg.Engine.Debug {
		reporter = common.NewLogReporter(logger)
	}

	engine := ledger.NewEngine(ledger.EngineConfig{
		Reporter: reporter,
		Audit:    audit,
	})

	snapshot, err := engine.Run(ctx, csvio.NewReader(input))
	if err != nil {
		zap.L().Fatal("Processing failed",
			zap.String("file", inputFile),
			zap.Error(err))
	}

	if err := csvio.WriteSnapshot(os.Stdout, snapshot); err != nil {
		zap.L().Fatal("Failed to write snapshot", zap.Error(err))
	}

	if cfg.Engine.Debug {
		common.WriteRunSummary(os.Stderr, engine.Stats())
	}
}
