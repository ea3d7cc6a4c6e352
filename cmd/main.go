package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lesion-features/config"
	telegram "lesion-features/internal/api"
	app "lesion-features/internal/application"
	"lesion-features/internal/container"
	"lesion-features/internal/domain/port"
)

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lesion-features",
	Short: "Radiomics feature extraction for lesion masks",
	Long: `lesion-features walks a dataset of patients, computes eight radiomics
features for every lesion mask against the patient's DICOM series and
writes one CSV row per lesion.

Dataset layout: <data>/<patient>/dcm holds the image series,
<data>/<patient>/<lesion> holds the lesion mask.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <data-dir> <output.csv> [params.yaml]",
	Short: "Extract lesion features into a CSV table",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runExtract,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(extractCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("run failed", zap.Error(err))
			_ = logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	paths, err := absPaths(args)
	if err != nil {
		return err
	}
	req := app.RunRequest{
		DataDir:    paths[0],
		OutputPath: paths[1],
	}
	if len(paths) == 3 {
		req.ParamsPath = paths[2]
	}

	c := container.New(rootFS(), newNotifier(), cmd.OutOrStdout(), logger)

	report, err := c.ExtractionService.Run(ctx, req)
	if err != nil {
		return err
	}

	logger.Info("extraction finished",
		zap.Int("patients", report.Patients),
		zap.Int("lesions", report.Lesions),
		zap.Duration("duration", report.Duration),
	)
	return nil
}

// rootFS файловая система от корня ОС; пути в неё передаются абсолютными.
func rootFS() billy.Filesystem {
	return osfs.New(string(filepath.Separator))
}

// absPaths переводит аргументы командной строки в абсолютные пути.
func absPaths(args []string) ([]string, error) {
	out := make([]string, len(args))
	for i, arg := range args {
		p, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", arg, err)
		}
		out[i] = p
	}
	return out, nil
}

// newNotifier без токена и чата уведомления не отправляются
func newNotifier() port.RunNotifier {
	if !cfg.NotifierEnabled() {
		return telegram.NopNotifier{}
	}

	notifier, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, logger.Named("telegram"))
	if err != nil {
		logger.Warn("telegram notifier disabled", zap.Error(err))
		return telegram.NopNotifier{}
	}
	return notifier
}
