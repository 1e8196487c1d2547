package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vango-dev/fileroutes/internal/config"
	"github.com/vango-dev/fileroutes/internal/errors"
	"github.com/vango-dev/fileroutes/pkg/listing"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	s3Bucket   string
	s3Prefix   string
	verbose    bool
	noColor    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "fileroutes",
		Short: "Compile route files into a nested route tree",
		Long: `fileroutes turns a directory of route files into a nested route tree.

File names follow a small set of conventions:

  index.go          renders at the parent path
  about.go          static segment /about
  $id.go            dynamic segment /:id
  $.go              catch-all for the rest of the path
  _layout.go        wraps its siblings without adding a segment
  users.$id.go      "." nests like "/" does

Route files can be listed from a local directory or an S3 bucket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to fileroutes.json (default: search from the working directory)")
	pf.StringVar(&flags.s3Bucket, "s3-bucket", "", "List route files from this S3 bucket")
	pf.StringVar(&flags.s3Prefix, "s3-prefix", "", "Key prefix of the route files in the S3 bucket")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		compileCmd(flags),
		checkCmd(flags),
		routesCmd(flags),
		serveCmd(flags),
		versionCmd(),
	)

	return rootCmd
}

// project is the resolved configuration of one command invocation.
type project struct {
	config   *config.Config
	logger   *slog.Logger
	provider listing.Provider
}

// loadProject loads the configuration, applies global flags and the
// optional routes directory argument, and builds the listing provider.
func loadProject(ctx context.Context, cmd *cobra.Command, flags *globalFlags, args []string) (*project, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flags.s3Bucket != "" {
		cfg.Source.Type = config.SourceS3
		cfg.Source.Bucket = flags.s3Bucket
	}
	if flags.s3Prefix != "" {
		cfg.Source.Prefix = flags.s3Prefix
	}
	if len(args) > 0 {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return nil, errors.New("C003").Wrap(err)
		}
		cfg.Source.Type = config.SourceDir
		cfg.Routes = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &project{config: cfg, logger: logger, provider: provider}, nil
}

// loadConfig loads an explicit config file, or searches upward from the
// working directory and falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.New("C001").Wrap(err)
	}
	if root, err := config.FindProjectRoot(wd); err == nil {
		return config.Load(root)
	}
	return config.LoadOrDefault(wd)
}

func newProvider(ctx context.Context, cfg *config.Config) (listing.Provider, error) {
	if cfg.Source.Type != config.SourceS3 {
		return listing.NewDir(cfg.RoutesPath(), cfg.Extensions), nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Source.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Source.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("L001").
			WithDetail("Could not load AWS configuration").
			Wrap(err)
	}
	client := s3.NewFromConfig(awsCfg)
	return listing.NewS3(client, cfg.Source.Bucket, cfg.Source.Prefix, cfg.Extensions), nil
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", yellow("⚠"), fmt.Sprintf(format, args...))
}
