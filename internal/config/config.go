package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/raceshot-upload/internal/credential"
	"github.com/five82/raceshot-upload/internal/raceshot"
	"github.com/five82/raceshot-upload/internal/upload"
)

// Config is everything a client needs to submit a batch.
type Config struct {
	Endpoint  string
	Token     string
	TokenFile string
	Timeout   time.Duration
	LogFile   string
	Photo     Photo
}

// Photo holds the metadata and images the CLI submits when no flags
// override them.
type Photo struct {
	EventID   string
	BibNumber string
	Location  string
	Price     int
	Images    []string
}

// PlaceholderToken ships in the sample config and must be replaced.
const PlaceholderToken = "YOUR_API_TOKEN"

// Environment variables that override the file.
const (
	EnvToken    = "RACESHOT_API_TOKEN"
	EnvEndpoint = "RACESHOT_ENDPOINT"
)

const (
	defaultConfigPath = "~/.config/raceshot/config.toml"
	defaultLogFile    = "~/.local/state/raceshot/upload.log"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Endpoint  string `toml:"endpoint"`
		APIToken  string `toml:"api_token"`
		TokenFile string `toml:"token_file"`
		Timeout   string `toml:"timeout"`
		LogFile   string `toml:"log_file"`
		Photo     struct {
			EventID   string   `toml:"event_id"`
			BibNumber string   `toml:"bib_number"`
			Location  string   `toml:"location"`
			Price     int      `toml:"price"`
			Images    []string `toml:"images"`
		} `toml:"photo"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	cfg.Token = strings.TrimSpace(raw.APIToken)
	if v := strings.TrimSpace(raw.TokenFile); v != "" {
		cfg.TokenFile = v
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: timeout: %w", err)
		}
		if timeout < 0 {
			return Config{}, errors.New("parse config: timeout must not be negative")
		}
		cfg.Timeout = timeout
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	cfg.Photo = Photo{
		EventID:   strings.TrimSpace(raw.Photo.EventID),
		BibNumber: strings.TrimSpace(raw.Photo.BibNumber),
		Location:  strings.TrimSpace(raw.Photo.Location),
		Price:     raw.Photo.Price,
	}
	for _, img := range raw.Photo.Images {
		if img = strings.TrimSpace(img); img != "" {
			cfg.Photo.Images = append(cfg.Photo.Images, img)
		}
	}

	return cfg, nil
}

// LoadDotenv loads KEY=value pairs from a .env file into the process
// environment without replacing variables that are already set. A missing
// file is not an error.
func LoadDotenv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides the token and endpoint from the environment. lookup is
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvToken); ok && strings.TrimSpace(v) != "" {
		c.Token = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvEndpoint); ok && strings.TrimSpace(v) != "" {
		c.Endpoint = strings.TrimSpace(v)
	}
}

// HasPlaceholderToken reports whether the token was never filled in.
func (c Config) HasPlaceholderToken() bool {
	return strings.TrimSpace(c.Token) == PlaceholderToken
}

// Batch builds the upload batch described by the config. A zero price is
// left blank so validation reports it.
func (c Config) Batch() upload.Batch {
	price := ""
	if c.Photo.Price != 0 {
		price = strconv.Itoa(c.Photo.Price)
	}
	return upload.Batch{
		Credential: c.Token,
		Files:      append([]string(nil), c.Photo.Images...),
		EventID:    c.Photo.EventID,
		BibNumber:  c.Photo.BibNumber,
		Location:   c.Photo.Location,
		Price:      price,
	}
}

func defaults() Config {
	return Config{
		Endpoint:  raceshot.DefaultEndpoint,
		TokenFile: credential.DefaultPath,
		LogFile:   mustExpand(defaultLogFile),
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
