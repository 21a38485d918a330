package main

import (
	"context"
	"fmt"
	"os"

	"HandWash/internal/config"
	"HandWash/internal/sound"
	"HandWash/internal/storage"
	"HandWash/internal/ui"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	seconds    int
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "handwash",
	Short: "Hand washing countdown timer",
	Long: `handwash shows a countdown with a progress bar that tells you how long
to keep washing your hands, plus a short how-to guide.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow(cmd.Context())
	},
}

var newLogger = func(verbose bool) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zapConfig.Build()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.handwash/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().IntVar(&seconds, "seconds", 0, "override timer.total_seconds")
	rootCmd.AddCommand(statsCmd)
}

// loadConfig 加载配置, --seconds 只覆盖本次运行, 不写回文件
func loadConfig() (*config.Manager, *config.Config, error) {
	manager, err := config.NewManager(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	cfg := applyOverrides(manager.GetConfig())
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return manager, cfg, nil
}

func applyOverrides(cfg *config.Config) *config.Config {
	next := *cfg
	if seconds != 0 {
		next.Timer.TotalSeconds = seconds
	}
	return &next
}

func newPlayer(cfg config.SoundConfig) sound.Player {
	if !cfg.Enabled {
		return sound.Nop{}
	}
	p, err := sound.NewPlayer(cfg.Path, cfg.Volume)
	if err != nil {
		logger.Warn("completion sound disabled", zap.String("path", cfg.Path), zap.Error(err))
		return sound.Nop{}
	}
	return p
}

func runWindow(ctx context.Context) error {
	manager, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Debug("config loaded", zap.String("path", manager.Path()), zap.Int("total_seconds", cfg.Timer.TotalSeconds))

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	myApp := app.New()
	mainWindow, err := ui.NewMainWindow(myApp, cfg, db, newPlayer(cfg.Sound), logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	err = manager.Watch(ctx, logger, func(next *config.Config) {
		if err := mainWindow.ApplyConfig(applyOverrides(next)); err != nil {
			logger.Warn("apply config failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Warn("config watch disabled", zap.Error(err))
	}

	mainWindow.Show()
	return nil
}

// execute 运行命令, 无论成功与否都刷新日志
func execute(args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
