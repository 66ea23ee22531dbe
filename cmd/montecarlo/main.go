package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"market-sim-go/config"
	"market-sim-go/report"
	"market-sim-go/sim"
)

// 蒙特卡洛批量回测：并行跑 N 条独立轨迹（每条独立随机源），
// 汇总终值 PnL 分布，可写 per-run CSV 供离线分析。
//
// 用法：
//
//	go run ./cmd/montecarlo -config configs/config.yaml -runs 500 -out runs.csv
func main() {
	cfgPath := flag.String("config", "", "config file path (optional)")
	runs := flag.Int("runs", 0, "number of Monte-Carlo runs (0 keeps config/default)")
	workers := flag.Int("workers", 0, "parallel workers (0 = NumCPU)")
	seed := flag.Int64("seed", 0, "base seed; run i uses seed+i (0 = wall clock)")
	outPath := flag.String("out", "", "write per-run summary CSV to this path")
	flag.Parse()

	_ = godotenv.Load()

	params := sim.DefaultParameters()
	batch := sim.DefaultBatchConfig()
	if *cfgPath != "" {
		cfg, err := config.LoadWithEnvOverrides(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		params = cfg.Sim
		batch = cfg.Batch
	}
	if *runs > 0 {
		batch.Runs = *runs
	}
	if *workers > 0 {
		batch.Workers = *workers
	}
	if *seed != 0 {
		params.Seed = *seed
	}

	result, err := sim.RunBatch(context.Background(), params, batch)
	if err != nil {
		log.Fatalf("batch failed: %v", err)
	}

	sum := report.SummarizeBatch(result)
	log.Printf("runs=%d meanPnL=%.4f stdPnL=%.4f worst=%.4f best=%.4f",
		sum.Runs, sum.MeanPnL, sum.StdPnL, sum.WorstPnL, sum.BestPnL)

	if *outPath != "" {
		sums := make([]report.RunSummary, 0, len(result.Trajectories))
		for _, t := range result.Trajectories {
			sums = append(sums, report.Summarize(t))
		}
		if err := report.WriteRunSummaryCSV(*outPath, sums); err != nil {
			log.Fatalf("write summary CSV: %v", err)
		}
		log.Printf("per-run summary written to %s", *outPath)
	}
}
