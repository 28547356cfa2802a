package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"modeleval/adapters/excel"
	"modeleval/adapters/plot"
	"modeleval/adapters/report"
	"modeleval/adapters/stats/engines"
	"modeleval/app"
	"modeleval/domain/core"
	"modeleval/internal"
	"modeleval/internal/testkit"
	"modeleval/ports"

	"github.com/joho/godotenv"
)

func main() {
	var (
		file      = flag.String("file", "", "xlsx or csv file with paired columns")
		predictor = flag.String("predictor", "predictor", "predictor column name")
		target    = flag.String("target", "target", "target column name")
		buy       = flag.Float64("buy", 0.0, "buy threshold on the target")
		sell      = flag.Float64("sell", 0.0, "sell threshold on the target")
		theta     = flag.Float64("theta", 0.0, "confusion matrix threshold")
		plotDir   = flag.String("plot-dir", "", "directory for plottable CSV series (optional)")
		markdown  = flag.Bool("markdown", false, "emit a markdown report instead of the console table")
		parallel  = flag.Int64("parallel", 8, "max parallel ECDF workers")
	)
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: cli -file data.xlsx [-predictor col] [-target col]")
		os.Exit(2)
	}

	logger := internal.NewDefaultLogger()
	engine := engines.NewMetricsEngine(*parallel)

	var reporter ports.Reporter = report.NewConsoleReporter(os.Stdout)
	if *markdown {
		reporter = report.NewMarkdownReporter(os.Stdout, false)
	}

	var plotter ports.Plotter
	var closers []*os.File
	if *plotDir != "" {
		ecdfFile, err := os.Create(filepath.Join(*plotDir, "ecdf.csv"))
		if err != nil {
			log.Fatalf("Failed to create ECDF series file: %v", err)
		}
		liftFile, err := os.Create(filepath.Join(*plotDir, "lift.csv"))
		if err != nil {
			log.Fatalf("Failed to create lift series file: %v", err)
		}
		closers = append(closers, ecdfFile, liftFile)
		plotter = plot.NewSeriesExporter(ecdfFile, liftFile)
	}
	defer func() {
		for _, f := range closers {
			f.Close()
		}
	}()

	service := app.NewEvaluationService(engine, testkit.NewInMemoryEvaluationRepository(), reporter, plotter, logger)
	reader := excel.NewPairReader(*file)

	_, err := service.EvaluateFromReader(
		context.Background(),
		reader,
		core.VariableKey(*predictor),
		core.VariableKey(*target),
		engines.Options{BuyThreshold: *buy, SellThreshold: *sell, Theta: *theta},
	)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}
}
