package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/arrgh/internal/config"
	"github.com/okra-platform/arrgh/internal/query"
	"github.com/okra-platform/arrgh/internal/render"
)

// QueryOptions are the command line inputs shared by query and watch
type QueryOptions struct {
	// Name selects a query stored in arrgh.json
	Name       string
	ConfigPath string
	DataPath   string
	Format     string
	Output     string
	Where      []string
	OrderBy    []string
	Select     []string
	Distinct   bool
	Limit      int
}

// ConfigLoader finds and reads arrgh.json
type ConfigLoader interface {
	LoadConfig() (*config.Config, string, error)
	LoadConfigFromPath(path string) (*config.Config, error)
}

type defaultConfigLoader struct{}

func (l *defaultConfigLoader) LoadConfig() (*config.Config, string, error) {
	return config.LoadConfig()
}

func (l *defaultConfigLoader) LoadConfigFromPath(path string) (*config.Config, error) {
	return config.LoadConfigFromPath(path)
}

// QueryDependencies for the query command
type QueryDependencies struct {
	ConfigLoader ConfigLoader
	Stdout       io.Writer
	Logger       zerolog.Logger
}

// QueryCommand loads records, evaluates a query and renders the result
type QueryCommand struct {
	deps QueryDependencies
}

// NewQueryCommand creates a new query command with default dependencies
func NewQueryCommand() *QueryCommand {
	return &QueryCommand{
		deps: QueryDependencies{
			ConfigLoader: &defaultConfigLoader{},
			Stdout:       os.Stdout,
			Logger:       log.Logger,
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (qc *QueryCommand) WithDependencies(deps QueryDependencies) *QueryCommand {
	qc.deps = deps
	return qc
}

// queryPlan is a fully resolved query invocation
type queryPlan struct {
	configPath string // empty when no arrgh.json is in use
	dataPath   string
	format     string
	output     string
	debounce   time.Duration
	definition query.Definition
}

// Execute runs the query command
func (qc *QueryCommand) Execute(ctx context.Context, opts QueryOptions) error {
	plan, err := qc.resolve(opts)
	if err != nil {
		return err
	}
	return qc.run(plan)
}

// resolve merges arrgh.json with the command line. Conditions from both are
// combined; order, select and limit flags replace the stored values.
func (qc *QueryCommand) resolve(opts QueryOptions) (*queryPlan, error) {
	cfg, projectDir, err := qc.loadConfig(opts)
	if err != nil {
		return nil, err
	}

	plan := &queryPlan{
		dataPath: opts.DataPath,
		format:   opts.Format,
		output:   opts.Output,
		debounce: defaultDebounce,
	}

	if cfg != nil {
		plan.configPath = filepath.Join(projectDir, config.FileName)
		if opts.ConfigPath != "" {
			plan.configPath = opts.ConfigPath
		}
		if plan.dataPath == "" {
			plan.dataPath = cfg.DataPath(projectDir)
		}
		if plan.format == "" {
			plan.format = cfg.Format
		}
		if plan.output == "" {
			plan.output = cfg.Output
		}
		if cfg.Watch.Debounce != "" {
			if plan.debounce, err = cfg.DebounceDuration(); err != nil {
				return nil, err
			}
		}

		if opts.Name != "" {
			stored, err := cfg.Query(opts.Name)
			if err != nil {
				return nil, err
			}
			plan.definition = query.Definition{
				Where:    stored.Where,
				OrderBy:  stored.OrderBy,
				Select:   stored.Select,
				Distinct: stored.Distinct,
				Limit:    stored.Limit,
			}
		}
	}

	if plan.dataPath == "" {
		return nil, fmt.Errorf("no data file: pass --data or create %s", config.FileName)
	}
	if plan.output == "" {
		plan.output = render.FormatJSON
	}

	def := &plan.definition
	def.Where = append(append([]string{}, def.Where...), opts.Where...)
	if len(opts.OrderBy) > 0 {
		def.OrderBy = opts.OrderBy
	}
	if len(opts.Select) > 0 {
		def.Select = opts.Select
	}
	if opts.Distinct {
		def.Distinct = true
	}
	if opts.Limit > 0 {
		def.Limit = opts.Limit
	}

	qc.deps.Logger.Debug().
		Str("data", plan.dataPath).
		Str("config", plan.configPath).
		Strs("where", def.Where).
		Strs("orderBy", def.OrderBy).
		Msg("resolved query")

	return plan, nil
}

// loadConfig returns a nil config when none is requested and none is found
func (qc *QueryCommand) loadConfig(opts QueryOptions) (*config.Config, string, error) {
	if opts.ConfigPath != "" {
		cfg, err := qc.deps.ConfigLoader.LoadConfigFromPath(opts.ConfigPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load project config: %w", err)
		}
		return cfg, filepath.Dir(opts.ConfigPath), nil
	}

	cfg, projectDir, err := qc.deps.ConfigLoader.LoadConfig()
	if err != nil {
		if opts.Name != "" {
			return nil, "", fmt.Errorf("failed to load project config: %w", err)
		}
		qc.deps.Logger.Debug().Err(err).Msg("running without project config")
		return nil, "", nil
	}
	return cfg, projectDir, nil
}

func (qc *QueryCommand) run(plan *queryPlan) error {
	records, err := query.LoadRecords(plan.dataPath, plan.format)
	if err != nil {
		return err
	}

	q, err := query.Compile(plan.definition, qc.deps.Logger)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	result, err := q.Run(records)
	if err != nil {
		return err
	}

	return render.Render(qc.deps.Stdout, plan.output, result, q.Fields())
}
