package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	colocate "github.com/Academic-Paper-Implementations/Efficient-Co-location-Pattern-Mining-in-Large-Spatial-Datasets-with-Rare-Features"
	"github.com/Academic-Paper-Implementations/Efficient-Co-location-Pattern-Mining-in-Large-Spatial-Datasets-with-Rare-Features/internal/config"
	"github.com/Academic-Paper-Implementations/Efficient-Co-location-Pattern-Mining-in-Large-Spatial-Datasets-with-Rare-Features/internal/loader"
	"github.com/Academic-Paper-Implementations/Efficient-Co-location-Pattern-Mining-in-Large-Spatial-Datasets-with-Rare-Features/internal/memprobe"
	"github.com/Academic-Paper-Implementations/Efficient-Co-location-Pattern-Mining-in-Large-Spatial-Datasets-with-Rare-Features/internal/report"
)

var outputFormat string

var rootCmd = &cobra.Command{
	Use:   "colominer [config-path]",
	Short: "Mine rare-feature-weighted spatial co-location patterns",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&outputFormat, "format", "table", `output format: "table", "msgpack", or "dot"`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	runID := uuid.New()

	path := "./config/config.txt"
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer zap.L().Sync()

	zap.L().Info("colominer: run starting", zap.String("runId", runID.String()), zap.String("datasetPath", cfg.DatasetPath))

	probe, err := memprobe.NewProbe()
	if err != nil {
		return fmt.Errorf("start memory probe: %w", err)
	}

	start := time.Now()

	set, err := loader.Load(cfg.DatasetPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if _, err := probe.Sample(); err != nil {
		zap.L().Warn("colominer: memory sample failed", zap.Error(err))
	}

	minerCfg := colocate.MinerConfig{
		NeighborDistance: cfg.NeighborDistance,
		MinPrev:          cfg.MinPrev,
		Workers:          cfg.Workers,
		Progress: func(stats colocate.LevelStats) {
			zap.L().Info("colominer: level complete",
				zap.String("runId", runID.String()),
				zap.Int("k", stats.K),
				zap.Int("candidates", stats.CandidateCount),
				zap.Int("filtered", stats.FilteredCount),
				zap.Int("tableRows", stats.TableRows),
				zap.Int("prevalent", stats.PrevalentCount),
			)
		},
	}

	mined, err := colocate.Mine(set, minerCfg)
	if err != nil {
		return fmt.Errorf("mine patterns: %w", err)
	}
	if _, err := probe.Sample(); err != nil {
		zap.L().Warn("colominer: memory sample failed", zap.Error(err))
	}

	elapsed := time.Since(start)
	result := report.FromMinerResult(cfg.DatasetPath, cfg.NeighborDistance, cfg.MinPrev, set.Len(), mined, elapsed, probe.Peak())

	switch outputFormat {
	case "msgpack":
		data, err := report.EncodeMsgpack(result)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case "dot":
		dot, err := report.RenderLattice(mined.Prevalent)
		if err != nil {
			return fmt.Errorf("render lattice: %w", err)
		}
		fmt.Println(dot)
	default:
		fmt.Println(report.RenderTable(result))
	}

	zap.L().Info("colominer: run complete", zap.String("runId", runID.String()), zap.Duration("elapsed", elapsed))
	return nil
}
