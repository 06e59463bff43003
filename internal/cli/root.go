// Package cli is the digest command line.
package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meeting-digest/internal/app"
	"github.com/nguyentantai21042004/meeting-digest/internal/config"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/output"
	"github.com/nguyentantai21042004/meeting-digest/pkg/executor"
)

// AppFactory builds the component graph once configuration is loaded.
type AppFactory func(cfg *config.Config, log logger.Logger, reg prometheus.Registerer) (*app.App, error)

// Dependencies are the process-level inputs of the command tree.
type Dependencies struct {
	In  io.Reader
	Out io.Writer
	// Err receives log output.
	Err io.Writer

	Sources  []config.SecretSource
	NewApp   AppFactory
	Executor executor.Executor
}

const defaultConfigPath = "config.yaml"

type globalFlags struct {
	configPath  string
	logLevel    string
	metricsAddr string
}

// runtime is the loaded state shared by a command invocation.
type runtime struct {
	cfg      *config.Config
	log      logger.Logger
	app      *app.App
	out      *output.Formatter
	in       *bufio.Reader
	registry *prometheus.Registry
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Err == nil {
		deps.Err = os.Stderr
	}
	if deps.Sources == nil {
		deps.Sources = []config.SecretSource{config.EnvSource, config.KeyringSource}
	}
	if deps.NewApp == nil {
		deps.NewApp = app.New
	}
	if deps.Executor == nil {
		deps.Executor = executor.New()
	}

	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "digest",
		Short:         "Summarize meeting recordings and email the digest",
		Long:          "Transcribes a meeting video (or reads a .docx/.vtt transcript), summarizes it with a language model, and emails the summary to a BCC recipient list.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", defaultConfigPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")

	rootCmd.AddCommand(NewRunCmd(deps, flags))
	rootCmd.AddCommand(NewRemoteCmd(deps, flags))
	rootCmd.AddCommand(NewWatchCmd(deps, flags))
	rootCmd.AddCommand(NewDoctorCmd(deps, flags))

	return rootCmd
}

// resolvedConfigPath drops the default path when no such file exists, so
// the built-in defaults apply.
func (g *globalFlags) resolvedConfigPath() string {
	if g.configPath != defaultConfigPath {
		return g.configPath
	}
	if _, err := os.Stat(g.configPath); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return g.configPath
}

// bootstrap loads and validates configuration and builds the App.
func bootstrap(ctx context.Context, deps *Dependencies, flags *globalFlags) (*runtime, error) {
	cfg, err := config.LoadWith(flags.resolvedConfigPath(), deps.Sources...)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}

	log := logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, deps.Err)
	reg := prometheus.NewRegistry()

	a, err := deps.NewApp(cfg, log, reg)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:      cfg,
		log:      log,
		app:      a,
		out:      output.NewFormatter(deps.Out),
		in:       bufio.NewReader(deps.In),
		registry: reg,
	}

	if flags.metricsAddr != "" {
		rt.serveMetrics(ctx, flags.metricsAddr)
	}
	return rt, nil
}

func (rt *runtime) serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		rt.log.Info(ctx, "Serving metrics on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.log.Error(ctx, "Metrics server: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
}

// ask prints msg and reads one line of input.
func (rt *runtime) ask(msg string) string {
	rt.out.Prompt(msg)
	line, _ := rt.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// confirm asks a yes/no question; anything but y/yes is no.
func (rt *runtime) confirm(msg string) bool {
	switch strings.ToLower(rt.ask(msg + " [y/N]")) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
