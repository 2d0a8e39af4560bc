package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/lego/config"
	"github.com/kbukum/lego/errors"
	"github.com/kbukum/lego/logger"
	"github.com/kbukum/lego/observability"
	"github.com/kbukum/lego/plan"
	"github.com/kbukum/lego/query"
	"github.com/kbukum/lego/source"
	"github.com/kbukum/lego/version"
)

const serviceName = "lego"

// app holds state shared by the commands of one invocation.
type app struct {
	configFile string
	logLevel   string
	jsonErrors bool

	cfg       config.ServiceConfig
	formatter *plan.Registry
	shutdown  []func(context.Context) error
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	a := &app{formatter: plan.DefaultRegistry()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	a.close()
	if err == nil {
		return errors.ExitOK
	}

	// Anything that is not an AppError comes from flag parsing.
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.InvalidInput("", err.Error())
	}
	if a.jsonErrors {
		enc := json.NewEncoder(stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(appErr.ToResponse())
	} else {
		fmt.Fprintln(stderr, "error:", err)
	}
	return appErr.ExitCode()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Declarative queries over in-memory record collections",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: lego.yml or config.yml in standard locations)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level")
	root.PersistentFlags().BoolVar(&a.jsonErrors, "json-errors", false, "write errors as JSON")

	root.AddCommand(a.runCmd(), a.explainCmd(), a.formattersCmd(), a.versionCmd())
	return root
}

// setup loads configuration and initialises logging and telemetry.
func (a *app) setup(ctx context.Context) error {
	opts := []config.LoaderOption{config.WithEnvPrefix("LEGO")}
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if err := config.LoadConfig(serviceName, &a.cfg, opts...); err != nil {
		return errors.InvalidInput("config", err.Error()).WithCause(err)
	}
	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
	}
	if a.cfg.Version == "" {
		a.cfg.Version = version.Get().Short()
	}
	a.cfg.ApplyDefaults()
	if err := a.cfg.Validate(); err != nil {
		return errors.InvalidInput("config", err.Error()).WithCause(err)
	}

	logger.Init(&a.cfg.Logging)

	obs := a.cfg.Observability
	tp, err := observability.InitTracer(ctx, obs.Tracer(a.cfg.Name, a.cfg.Version, a.cfg.Environment))
	if err != nil {
		return errors.Internal(err)
	}
	a.shutdown = append(a.shutdown, tp.Shutdown)

	mp, err := observability.InitMeter(ctx, obs.Meter(a.cfg.Name, a.cfg.Version, a.cfg.Environment))
	if err != nil {
		return errors.Internal(err)
	}
	a.shutdown = append(a.shutdown, mp.Shutdown)
	return nil
}

func (a *app) close() {
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		if err := a.shutdown[i](context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", logger.Fields("error", err.Error()))
		}
	}
	a.shutdown = nil
}

func (a *app) loadPlan(ctx context.Context, name string) (*plan.Plan, []query.Transformation, error) {
	p, err := plan.NewFileLoader(a.cfg.Query.PlanDirs...).Load(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	fns, err := plan.Build(p, a.formatter, a.cfg.Query)
	if err != nil {
		return nil, nil, err
	}
	return p, fns, nil
}

func (a *app) runCmd() *cobra.Command {
	var (
		dataPath string
		planName string
		format   string
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a plan over a data file and print the result as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			p, fns, err := a.loadPlan(ctx, planName)
			if err != nil {
				return err
			}

			data, err := a.readData(cmd.InOrStdin(), dataPath, format)
			if err != nil {
				return err
			}

			log := logger.Get("cli").WithFields(logger.Fields(logger.FieldPlan, p.Name))
			log.Debug("running plan", logger.Fields(logger.FieldRecordsIn, data.Len()))

			out, err := query.NewRunner().Run(ctx, data, fns...)
			if err != nil {
				return err
			}
			return source.Encode(cmd.OutOrStdout(), out, pretty)
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "data file (.json, .yaml, .yml) or - for stdin")
	cmd.Flags().StringVar(&planName, "plan", "", "plan file or plan name looked up in query.plan_dirs")
	cmd.Flags().StringVar(&format, "format", string(source.FormatJSON), "stdin data format (json or yaml)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func (a *app) readData(stdin io.Reader, path, format string) (query.Collection, error) {
	opts := []source.Option{source.WithStrict(a.cfg.Query.StrictSchema)}
	if path == "-" {
		return source.Decode(stdin, source.Format(format), opts...)
	}
	return source.ReadFile(path, opts...)
}

func (a *app) explainCmd() *cobra.Command {
	var planName string

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Print the order in which a plan's steps run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, fns, err := a.loadPlan(cmd.Context(), planName)
			if err != nil {
				return err
			}
			runner := query.NewRunner(query.WithMetrics(nil))
			kinds, err := runner.Plan(fns...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "plan %s: %d steps\n", p.Name, len(kinds))
			for i, k := range kinds {
				rank, _ := runner.Rank(k)
				fmt.Fprintf(w, "%2d. %-8s (rank %d)\n", i+1, k, rank)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&planName, "plan", "", "plan file or plan name looked up in query.plan_dirs")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func (a *app) formattersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formatters",
		Short: "List the formatters format steps can use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range a.formatter.List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	var asJSON, deps bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			if !deps {
				info.Deps = nil
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(w, "lego %s\n", info)
			for _, d := range info.Deps {
				fmt.Fprintf(w, "  %s %s\n", d.Path, d.Version)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&deps, "deps", false, "include linked modules")
	return cmd
}
