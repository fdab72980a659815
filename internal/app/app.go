package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/raceshot-upload/internal/config"
	"github.com/five82/raceshot-upload/internal/credential"
	"github.com/five82/raceshot-upload/internal/prefs"
	"github.com/five82/raceshot-upload/internal/raceshot"
	"github.com/five82/raceshot-upload/internal/ui"
	"github.com/five82/raceshot-upload/internal/upload"
)

// Options configure both clients.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/raceshot/prefs.toml
	EnvFile    string // empty uses ./.env
	LogPath    string // overrides log_file from the config
}

// LoadConfig layers the config file, the .env file and the environment.
func LoadConfig(opts Options) (config.Config, error) {
	if err := config.LoadDotenv(opts.EnvFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	if opts.LogPath != "" {
		cfg.LogFile = opts.LogPath
	}
	return cfg, nil
}

// Run boots the interactive uploader until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := OpenLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := raceshot.NewClient(cfg.Endpoint, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init raceshot client: %w", err)
	}

	store := credential.Store{Path: cfg.TokenFile, Logger: logger}
	token := store.Load()
	if token == "" && !cfg.HasPlaceholderToken() {
		token = cfg.Token
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger.Info("interactive session started", "endpoint", client.Endpoint())
	err = ui.Run(ui.Options{
		Context:     ctx,
		Uploader:    upload.New(client, logger),
		Credentials: store,
		Credential:  token,
		Prefs:       userPrefs,
		PrefsPath:   opts.PrefsPath,
		LogPath:     cfg.LogFile,
		Logger:      logger,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
