package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/joho/godotenv"

	"market-sim-go/config"
	"market-sim-go/infrastructure/logger"
	"market-sim-go/metrics"
	"market-sim-go/monitor/logschema"
	"market-sim-go/report"
	"market-sim-go/sim"
	"market-sim-go/stream"
)

// 常驻模拟服务：按固定间隔跑一条轨迹，结果进指标与日志；
// 配置文件热更新（fsnotify），轨迹快照可经 websocket 实时推送。
func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Close()

	if cfg.MetricsAddr != "" {
		metrics.StartMetricsServer(cfg.MetricsAddr)
	}

	var hub *stream.Hub
	if cfg.StreamAddr != "" {
		hub = stream.NewHub()
		mux := http.NewServeMux()
		mux.Handle("/stream", hub)
		go func() {
			if err := http.ListenAndServe(cfg.StreamAddr, mux); err != nil {
				lg.LogError(err, map[string]interface{}{"component": "stream"})
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// current 持有最新配置，热更新在两次运行之间生效，绝不打断运行中的轨迹。
	var mu sync.RWMutex
	current := cfg
	go func() {
		w := config.Watcher{Path: *cfgPath}
		err := w.Start(ctx, func(next config.AppConfig) {
			mu.Lock()
			current = next
			mu.Unlock()
			lg.Info("config reloaded")
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			lg.LogError(err, map[string]interface{}{"component": "config_watch"})
		}
	}()

	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)

	for {
		mu.RLock()
		runCfg := current
		mu.RUnlock()

		runOnce(ctx, runCfg, lg, hub)

		_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)

		interval := time.Duration(runCfg.RunIntervalSec) * time.Second
		select {
		case <-ctx.Done():
			lg.Info("shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func runOnce(ctx context.Context, cfg config.AppConfig, lg *logger.Logger, hub *stream.Hub) {
	params := cfg.Sim
	runner, err := sim.NewRunner(params)
	if err != nil {
		lg.LogError(err, map[string]interface{}{"component": "runner"})
		return
	}

	// Close 让 hub.Run 的消费协程随本次运行一起退出，避免常驻进程泄漏。
	pub := stream.NewPublisher()
	defer pub.Close()
	runner.Observer = pub
	if hub != nil {
		go hub.Run(pub.Subscribe(256))
	}

	metrics.RunsStarted.Inc()
	startFields := map[string]interface{}{
		"steps":        params.SimulationSteps,
		"initialPrice": params.InitialPrice,
		"seed":         params.Seed,
		"run_id":       "",
	}
	if err := logschema.Validate("run_start", startFields); err == nil {
		lg.LogRun("run_start", "", startFields)
	}

	started := time.Now()
	traj, err := runner.Run(ctx)
	if err != nil {
		metrics.RunsFailed.Inc()
		var tickErr *sim.TickError
		fields := map[string]interface{}{"run_id": "", "tick": -1, "error": err.Error()}
		if errors.As(err, &tickErr) {
			fields["tick"] = tickErr.Tick
		}
		lg.LogRun("run_failed", "", fields)
		return
	}

	for _, s := range traj.Snapshots {
		if s.BidFilled {
			metrics.IncrementFills("bid")
		}
		if s.AskFilled {
			metrics.IncrementFills("ask")
		}
	}
	metrics.ObserveRunComplete(traj.FinalPnL, traj.FinalInventory, time.Since(started).Seconds())

	sum := report.Summarize(traj)
	lg.LogRun("run_complete", traj.RunID, map[string]interface{}{
		"finalPnl":       sum.FinalPnL,
		"finalInventory": sum.FinalInventory,
		"sharpe":         sum.Sharpe,
		"bidFills":       sum.BidFills,
		"askFills":       sum.AskFills,
	})
}
