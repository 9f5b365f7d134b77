// cityrun is a three-level side-scrolling platformer.
//
// Usage:
//
//	cityrun                  - play from level 1
//	cityrun play --level 2   - start on another level
//	cityrun levels           - list the levels and what each needs to finish
//
// Global flags:
//
//	--config <path>     - TOML settings (default: config/cityrun.toml)
//	--log-level <lvl>   - override the configured log level
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milk9111/cityrun/audio"
	"github.com/milk9111/cityrun/config"
	"github.com/milk9111/cityrun/ecs/system"
	"github.com/milk9111/cityrun/game"
	"github.com/milk9111/cityrun/levels"
	"github.com/milk9111/cityrun/prefabs"
)

var (
	flagConfig   string
	flagLogLevel string

	flagLevel string
	flagDebug bool
	flagWatch bool
	flagMute  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "cityrun",
	Short:         "A three-level side-scrolling platformer",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game window.

Controls:
  A/D, arrows     - Walk
  W, Up, Space    - Jump
  Left click, J   - Shoot (after picking up the gun)
  Esc, P          - Pause menu
  F3              - Physics outlines
  R               - Restart once the game has ended`,
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath, "Path to TOML settings")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	for _, cmd := range []*cobra.Command{rootCmd, playCmd} {
		cmd.Flags().StringVar(&flagLevel, "level", "", "Level to start on (1, 2, 3 or level2)")
		cmd.Flags().BoolVar(&flagDebug, "debug", false, "Draw physics outlines and frame stats")
		cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload prefab and level YAML edited on disk")
		cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
}

// loadConfig applies the config file and global flag overrides shared by
// every command.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	prefabs.SetDiskDir(cfg.Content.PrefabDir)
	levels.SetDiskDir(cfg.Content.LevelDir)
	return cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	start := game.Level1
	if name := firstNonEmpty(flagLevel, cfg.Debug.StartLevel); name != "" {
		if start, err = game.ParseLevelID(name); err != nil {
			return err
		}
	}

	var cues system.CuePlayer
	if cfg.Audio.Enabled && !flagMute {
		cues = audio.NewOutput(audio.NewLibrary(cfg.Audio.SampleRate, cfg.Audio.Volume))
	}

	g, err := NewGame(cfg, log, start, cues, flagDebug || cfg.Debug.ShowBodies)
	if err != nil {
		return err
	}

	if flagWatch || cfg.Content.Watch {
		w, err := prefabs.NewWatcher(log.Named("watch"), cfg.Content.PrefabDir, cfg.Content.LevelDir)
		if err != nil {
			log.Warn("content watch disabled", zap.Error(err))
		} else {
			defer w.Close()
			g.Watch(w)
		}
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	log.Info("starting",
		zap.Stringer("level", start),
		zap.Bool("audio", cues != nil),
		zap.String("config", flagConfig),
	)
	if err := ebiten.RunGame(g); err != nil {
		log.Error("game stopped", zap.Error(err))
		return err
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
