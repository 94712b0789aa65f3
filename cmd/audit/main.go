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
	"payments-engine-go/internal/database"
	"payments-engine-go/internal/store"
)

func printRun(run store.RunInfo, isLast bool) {
	fmt.Printf("%s%s  started: %s  read: %d  applied: %d  rejected: %d\n",
		common.BoxPrefix(isLast),
		run.Id,
		run.StartedAt.Format("2006-01-02 15:04:05"),
		run.Stats.Read,
		run.Stats.Applied,
		run.Stats.Rejected)
}

func listRuns(ctx context.Context, service *database.Service) error {
	runs, err := service.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	common.WriteHeader(os.Stdout, fmt.Sprintf("Recorded runs: %d", len(runs)), common.DefaultWidth)
	for i, run := range runs {
		printRun(run, i == len(runs)-1)
	}
	return nil
}

func showRun(ctx context.Context, service *database.Service, runId string) error {
	snapshot, err := service.GetRunSnapshot(ctx, runId)
	if err != nil {
		return err
	}
	rejections, err := service.GetRunRejections(ctx, runId)
	if err != nil {
		return err
	}

	common.WriteHeader(os.Stdout, fmt.Sprintf("Run %s", runId), common.DefaultWidth)

	fmt.Printf("\nFinal snapshot (%d accounts):\n", len(snapshot))
	for i, row := range snapshot {
		fmt.Printf("%sclient %-6d available: %14s  held: %14s  total: %14s  locked: %t\n",
			common.BoxPrefix(i == len(snapshot)-1),
			row.Client,
			row.Available.StringFixed(4),
			row.Held.StringFixed(4),
			row.Total.StringFixed(4),
			row.Locked)
	}

	if len(rejections) > 0 {
		fmt.Printf("\nRejections (%d):\n", len(rejections))
		for i, rej := range rejections {
			fmt.Printf("%sline %-6d %-10s client %-6d tx %-10d %s\n",
				common.BoxPrefix(i == len(rejections)-1),
				rej.Record.Line,
				rej.Record.Type,
				rej.Record.Client,
				rej.Record.Tx,
				rej.Reason)
		}
	}
	return nil
}

func main() {
	dbFile := flag.String("db", "", "Path to the audit database (required; falls back to AUDIT_DB_PATH)")
	runId := flag.String("run", "", "Show one run's snapshot and rejections instead of listing runs")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *dbFile != "" {
		cfg.Audit.Path = *dbFile
	}
	if cfg.Audit.Path == "" {
		fmt.Fprintln(os.Stderr, "usage: audit --db audit.db [--run id]")
		os.Exit(2)
	}

	_, loggerCleanup := common.InitializeLogger(false)
	defer loggerCleanup()

	ctx := context.Background()

	service, err := database.NewService(ctx, cfg.Audit)
	if err != nil {
		zap.L().Fatal("Failed to open audit database", zap.Error(err))
	}
	defer service.Close()

	if *runId != "" {
		err = showRun(ctx, service, *runId)
	} else {
		err = listRuns(ctx, service)
	}
	if err != nil {
		zap.L().Fatal("Audit query failed", zap.Error(err))
	}
}
