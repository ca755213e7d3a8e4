package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/okian/territoriali/internal/adapters/scores"
	service "github.com/okian/territoriali/internal/app"
	"github.com/okian/territoriali/internal/config"
	"github.com/okian/territoriali/internal/report"
	"github.com/okian/territoriali/pkg/logger"
	"github.com/okian/territoriali/pkg/metrics"
)

const appName = "territoriali"

// Flag names.
const (
	flagConfig      = "config"
	flagMode        = "mode"
	flagColor       = "color"
	flagDecimals    = "decimals"
	flagEndpoint    = "endpoint"
	flagTimeout     = "timeout"
	flagMetricsFile = "metrics-file"
	flagLogLevel    = "log-level"
	flagVerbose     = "verbose"
)

// Run executes the command line args (without the program name), writing the
// report to stdout and diagnostics to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return NewApp(stdout, stderr).RunContext(ctx, append([]string{appName}, args...))
}

// NewApp builds the command. Errors are returned to the caller, never handled
// by exiting the process.
func NewApp(stdout, stderr io.Writer) *urfave.App {
	return &urfave.App{
		Name:      appName,
		Usage:     "show olympiad scores of one or more users",
		ArgsUsage: "USERNAME...",
		Description: "Fetches every user's task scores and prints them against the maximum\n" +
			"attainable scores. Full scores are green, zero scores red, anything else yellow.\n\n" +
			"Settings are read from defaults, the YAML file given by --config or\n" +
			"$" + config.EnvFile + ", " + config.EnvPrefix + "* environment variables and flags,\n" +
			"in increasing order of precedence.",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags:           flags(),
		ExitErrHandler:  func(*urfave.Context, error) {},
		OnUsageError: func(_ *urfave.Context, err error, _ bool) error {
			return usageError(err)
		},
		Action: func(c *urfave.Context) error {
			return run(c, stdout, stderr)
		},
	}
}

func flags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.PathFlag{
			Name:  flagConfig,
			Usage: "YAML configuration file",
		},
		&urfave.StringFlag{
			Name:    flagMode,
			Aliases: []string{"m"},
			Usage:   "report layout: table or list",
			Value:   string(report.ModeTable),
		},
		&urfave.StringFlag{
			Name:  flagColor,
			Usage: "color scores: auto, always or never",
			Value: report.ColorAuto,
		},
		&urfave.IntFlag{
			Name:  flagDecimals,
			Usage: "decimals printed for scores, negative for full precision",
		},
		&urfave.StringFlag{
			Name:  flagEndpoint,
			Usage: "scores URL template containing " + scores.UsernamePlaceholder,
			Value: scores.DefaultEndpoint,
		},
		&urfave.DurationFlag{
			Name:  flagTimeout,
			Usage: "per-request timeout, 0 for none",
		},
		&urfave.PathFlag{
			Name:  flagMetricsFile,
			Usage: "write Prometheus metrics to this file on exit",
		},
		&urfave.StringFlag{
			Name:  flagLogLevel,
			Usage: "diagnostics level on stderr: debug, info, warn, error",
			Value: "warn",
		},
		&urfave.BoolFlag{
			Name:    flagVerbose,
			Aliases: []string{"v"},
			Usage:   "log requests on stderr (same as --log-level debug)",
		},
	}
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(c *urfave.Context, cfg *config.Config) {
	if c.IsSet(flagMode) {
		cfg.Mode = c.String(flagMode)
	}
	if c.IsSet(flagColor) {
		cfg.Color = c.String(flagColor)
	}
	if c.IsSet(flagDecimals) {
		cfg.Decimals = c.Int(flagDecimals)
	}
	if c.IsSet(flagEndpoint) {
		cfg.Endpoint = c.String(flagEndpoint)
	}
	if c.IsSet(flagTimeout) {
		cfg.TimeoutMS = int(c.Duration(flagTimeout) / time.Millisecond)
	}
	if c.IsSet(flagMetricsFile) {
		cfg.MetricsFile = c.Path(flagMetricsFile)
	}
	if c.IsSet(flagLogLevel) {
		cfg.LogLevel = c.String(flagLogLevel)
	}
	if c.Bool(flagVerbose) {
		cfg.LogLevel = "debug"
	}
}

// usernames returns the positional arguments, rejecting anything that looks
// like a flag.
func usernames(c *urfave.Context) ([]string, error) {
	args := c.Args().Slice()
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			return nil, fmt.Errorf("%w: %s", ErrMisplacedFlag, arg)
		}
	}
	return args, nil
}

func run(c *urfave.Context, stdout, stderr io.Writer) error {
	ctx := c.Context

	names, err := usernames(c)
	if err != nil {
		return usageError(err)
	}

	cfg, err := config.Load(ctx, c.Path(flagConfig))
	if err != nil {
		return usageError(err)
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return usageError(err)
	}

	if err := logger.Init(stderr); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return usageError(err)
	}
	log := logger.Get()

	m := metrics.NewManager(metrics.WithNamespace(cfg.MetricsNamespace))
	defer func() {
		if werr := m.WriteTextfile(cfg.MetricsFile); werr != nil {
			log.Warn(ctx, "failed to write metrics", logger.String("path", cfg.MetricsFile), logger.Error(werr))
		}
	}()

	mode, err := report.ParseMode(cfg.Mode)
	if err != nil {
		return usageError(err)
	}
	painter, err := report.NewPainter(cfg.Color)
	if err != nil {
		return usageError(err)
	}

	client := scores.New(
		scores.WithEndpoint(cfg.Endpoint),
		scores.WithTimeout(time.Duration(cfg.TimeoutMS)*time.Millisecond),
		scores.WithLogger(logger.Named("scores")),
		scores.WithMetrics(m),
	)
	reporter := report.New(
		report.WithMode(mode),
		report.WithCellWidth(cfg.CellWidth),
		report.WithNameWidth(cfg.NameWidth),
		report.WithDecimals(cfg.Decimals),
		report.WithPainter(painter),
	)
	svc := service.New(client, reporter,
		service.WithOutput(stdout),
		service.WithLogger(log),
		service.WithMetrics(m),
	)

	if err := svc.Run(ctx, names); err != nil {
		if errors.Is(err, service.ErrNoUsernames) {
			return usageError(err)
		}
		return &ExitError{Code: ExitFailure, Err: err}
	}
	return nil
}
