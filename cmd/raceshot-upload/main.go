package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/raceshot-upload/internal/app"
	"github.com/five82/raceshot-upload/internal/upload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		// Report lines were already printed for these.
		var vErr *upload.ValidationError
		if !errors.Is(err, app.ErrBatchFailed) && !errors.As(err, &vErr) {
			fmt.Fprintf(os.Stderr, "raceshot-upload: %v\n", err)
		}
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	envFile    string
	verbose    bool
	overrides  app.Overrides
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "raceshot-upload [image...]",
		Short: "Upload race photos to RaceShot",
		Long: `raceshot-upload sends each image, one at a time, to the RaceShot photographer
upload API with the event, bib, location and price from the config file,
the environment (RACESHOT_API_TOKEN, RACESHOT_ENDPOINT) or flags.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, &flags, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/raceshot/config.toml)")
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file to load (default ./.env)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log each request to stderr")
	pf.StringVar(&flags.overrides.Token, "token", "", "API token")
	pf.StringVar(&flags.overrides.Endpoint, "endpoint", "", "upload endpoint URL")
	pf.StringVar(&flags.overrides.EventID, "event", "", "event ID")
	pf.StringVar(&flags.overrides.BibNumber, "bib", "", "bib number")
	pf.StringVar(&flags.overrides.Location, "location", "", "photo location")
	pf.StringVar(&flags.overrides.Price, "price", "", "price, must be greater than 60")

	cmd.AddCommand(
		newUploadCmd(&flags),
		newCheckCmd(&flags),
	)
	return cmd
}

func newUploadCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "upload [image...]",
		Short: "Upload images (the default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, flags, args)
		},
	}
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [image...]",
		Short: "Validate the configuration without uploading",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(app.Options{ConfigPath: flags.configPath, EnvFile: flags.envFile})
			if err != nil {
				return err
			}
			o := flags.overrides
			o.Images = args
			return app.Check(cfg, o, cmd.OutOrStdout())
		},
	}
}

func runUpload(cmd *cobra.Command, flags *rootFlags, args []string) error {
	cfg, err := app.LoadConfig(app.Options{ConfigPath: flags.configPath, EnvFile: flags.envFile})
	if err != nil {
		return err
	}
	o := flags.overrides
	o.Images = args
	logger := app.ConsoleLogger(cmd.ErrOrStderr(), flags.verbose)
	return app.Upload(cmd.Context(), cfg, o, cmd.OutOrStdout(), logger)
}
