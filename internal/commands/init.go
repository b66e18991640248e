package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/okra-platform/arrgh/internal/config"
	"github.com/okra-platform/arrgh/internal/query"
	"github.com/okra-platform/arrgh/internal/render"
)

type InitOptions struct {
	ProjectName string
	DataPath    string
	Output      string
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Getwd() (string, error)
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (fs *osFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

type InitCommand struct {
	filesystem FileSystem
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand() *InitCommand {
	return &InitCommand{
		filesystem: &osFileSystem{},
	}
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	dir, err := ic.filesystem.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(dir, config.FileName)
	if _, err := ic.filesystem.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	var options *InitOptions

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(filepath.Base(dir), opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	if err := validateProjectName(options.ProjectName); err != nil {
		return err
	}
	if err := validateDataPath(options.DataPath); err != nil {
		return err
	}

	cfg := config.Default(options.ProjectName)
	cfg.Data = options.DataPath
	if options.Output != "" {
		cfg.Output = options.Output
	}
	cfg.Queries["all"] = config.QueryConfig{}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := ic.filesystem.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}

	fmt.Printf("✅ Created %s for %s\n", config.FileName, options.ProjectName)
	if _, err := ic.filesystem.Stat(cfg.DataPath(dir)); err != nil {
		fmt.Printf("⚠️  Data file %s does not exist yet\n", options.DataPath)
	}
	return nil
}

func (ic *InitCommand) promptInitOptions(defaultName string, opts ...tea.ProgramOption) (*InitOptions, error) {
	options := &InitOptions{
		ProjectName: defaultName,
		DataPath:    "./data.json",
		Output:      render.FormatJSON,
	}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		// Normal execution
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(options *InitOptions) *huh.Form {
	outputs := make([]huh.Option[string], 0, len(render.Formats))
	for _, f := range render.Formats {
		outputs = append(outputs, huh.NewOption(strings.ToUpper(f[:1])+f[1:], f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Name shown in logs and output").
				Value(&options.ProjectName).
				Validate(validateProjectName),

			huh.NewInput().
				Title("Data file").
				Description("JSON or YAML file holding an array of records").
				Value(&options.DataPath).
				Validate(validateDataPath),

			huh.NewSelect[string]().
				Title("Output").
				Description("Default output format").
				Options(outputs...).
				Value(&options.Output),
		),
	)
}

func validateProjectName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	return nil
}

func validateDataPath(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("data file cannot be empty")
	}
	_, err := query.DetectFormat(s)
	return err
}
