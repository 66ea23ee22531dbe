package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"market-sim-go/config"
	"market-sim-go/report"
	"market-sim-go/sim"
)

// 单次模拟：加载配置（或纯命令行参数），跑完一条轨迹并打印汇总。
// 可选 -out 把整条轨迹写成 CSV，交给外部绘图工具。
func main() {
	cfgPath := flag.String("config", "", "config file path (optional; flags override)")
	steps := flag.Int("steps", 0, "simulation steps (0 keeps config/default)")
	seed := flag.Int64("seed", 0, "random seed (0 = derive from wall clock)")
	vol := flag.Float64("vol", -1, "per-step volatility (<0 keeps config/default)")
	outPath := flag.String("out", "", "write trajectory CSV to this path")
	flag.Parse()

	_ = godotenv.Load()

	params := sim.DefaultParameters()
	if *cfgPath != "" {
		cfg, err := config.LoadWithEnvOverrides(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		params = cfg.Sim
	}
	if *steps > 0 {
		params.SimulationSteps = *steps
	}
	if *seed != 0 {
		params.Seed = *seed
	}
	if *vol >= 0 {
		params.Volatility = *vol
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	traj, err := sim.Run(ctx, params)
	if err != nil {
		var tickErr *sim.TickError
		if errors.As(err, &tickErr) {
			log.Fatalf("run aborted at tick %d (%d ticks completed): %v",
				tickErr.Tick, len(tickErr.Partial), tickErr.Cause)
		}
		log.Fatalf("run failed: %v", err)
	}

	sum := report.Summarize(traj)
	fmt.Printf("run %s: steps=%d finalMid=%.4f finalPnL=%.4f inventory=%.0f fills=%d/%d sharpe=%.4f maxDD=%.2f%%\n",
		sum.RunID, sum.Steps, sum.FinalMid, sum.FinalPnL, sum.FinalInventory,
		sum.BidFills, sum.AskFills, sum.Sharpe, sum.MaxDrawdownPct)

	if *outPath != "" {
		if err := report.WriteTrajectoryCSV(*outPath, traj); err != nil {
			log.Fatalf("write trajectory CSV: %v", err)
		}
		fmt.Printf("trajectory written to %s\n", *outPath)
	}
}
