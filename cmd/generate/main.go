package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"payments-engine-go/internal/common"
	"payments-engine-go/internal/csvio"
	"payments-engine-go/internal/scenario"
)

func main() {
	scenarioFile := flag.String("scenario", "", "Path to a scenario YAML file (required)")
	outFile := flag.String("out", "", "Output file (default: stdout)")
	flag.Parse()

	if *scenarioFile == "" {
		fmt.Fprintln(os.Stderr, "usage: generate --scenario scenario.yaml [--out transactions.csv]")
		os.Exit(2)
	}

	_, loggerCleanup := common.InitializeLogger(false)
	defer loggerCleanup()

	s, err := scenario.Load(*scenarioFile)
	if err != nil {
		zap.L().Fatal("Failed to load scenario", zap.Error(err))
	}

	records := s.Generate()

	var out io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			zap.L().Fatal("Failed to create output file",
				zap.String("file", *outFile),
				zap.Error(err))
		}
		defer f.Close()
		out = f
	}

	if err := csvio.WriteRecords(out, records); err != nil {
		zap.L().Fatal("Failed to write records", zap.Error(err))
	}
}
