package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/arrgh/internal/config"
	"github.com/okra-platform/arrgh/internal/query"
)

// Test plan:
// 1. Test ad-hoc queries without arrgh.json
// 2. Test named queries from an explicit config path
// 3. Test merging stored queries with command line flags
// 4. Test error paths: missing config for named query, missing data, bad query

type mockConfigLoader struct {
	mock.Mock
}

func (m *mockConfigLoader) LoadConfig() (*config.Config, string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*config.Config), args.String(1), args.Error(2)
}

func (m *mockConfigLoader) LoadConfigFromPath(path string) (*config.Config, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Config), args.Error(1)
}

const peopleData = `[
  {"first": "Sander", "last": "Rossel", "age": 30},
  {"first": "Bill", "last": "Murray", "age": 73},
  {"first": "Bill", "last": "Gates", "age": 68},
  {"first": "Steve", "last": "McQueen", "age": 50},
  {"first": "Bill", "last": "Clinton", "age": 77}
]`

func writePeople(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "people.json")
	require.NoError(t, os.WriteFile(path, []byte(peopleData), 0644))
	return path
}

func newTestQueryCommand(loader ConfigLoader, out *bytes.Buffer) *QueryCommand {
	return NewQueryCommand().WithDependencies(QueryDependencies{
		ConfigLoader: loader,
		Stdout:       out,
		Logger:       zerolog.Nop(),
	})
}

func decodeOutput(t *testing.T, out *bytes.Buffer) []query.Record {
	t.Helper()
	var records []query.Record
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	return records
}

func TestQueryCommand_Execute_AdHoc(t *testing.T) {
	// Test: no arrgh.json, everything from flags
	data := writePeople(t, t.TempDir())

	loader := new(mockConfigLoader)
	loader.On("LoadConfig").Return(nil, "", errors.New("no arrgh.json found"))

	var out bytes.Buffer
	err := newTestQueryCommand(loader, &out).Execute(context.Background(), QueryOptions{
		DataPath: data,
		Where:    []string{"first == Bill"},
		OrderBy:  []string{"last"},
		Select:   []string{"last"},
	})
	require.NoError(t, err)

	assert.Equal(t, []query.Record{
		{"last": "Clinton"},
		{"last": "Gates"},
		{"last": "Murray"},
	}, decodeOutput(t, &out))
	loader.AssertExpectations(t)
}

func TestQueryCommand_Execute_NamedQuery(t *testing.T) {
	// Test: named query from an explicit config path, data resolved relative to it
	dir := t.TempDir()
	writePeople(t, dir)
	configPath := filepath.Join(dir, config.FileName)

	cfg := config.Default("people")
	cfg.Data = "./people.json"
	cfg.Output = "table"
	cfg.Queries["oldest"] = config.QueryConfig{
		OrderBy: []string{"-age"},
		Select:  []string{"first", "last"},
		Limit:   1,
	}

	loader := new(mockConfigLoader)
	loader.On("LoadConfigFromPath", configPath).Return(cfg, nil)

	var out bytes.Buffer
	err := newTestQueryCommand(loader, &out).Execute(context.Background(), QueryOptions{
		Name:       "oldest",
		ConfigPath: configPath,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Clinton")
	assert.Contains(t, out.String(), "1 rows")
	assert.NotContains(t, out.String(), "Murray")
	loader.AssertExpectations(t)
}

func TestQueryCommand_resolve_MergesFlags(t *testing.T) {
	cfg := config.Default("people")
	cfg.Format = "yaml"
	cfg.Queries["bills"] = config.QueryConfig{
		Where:   []string{"first == Bill"},
		OrderBy: []string{"last"},
		Select:  []string{"last"},
		Limit:   5,
	}

	loader := new(mockConfigLoader)
	loader.On("LoadConfig").Return(cfg, "/project", nil)

	plan, err := newTestQueryCommand(loader, &bytes.Buffer{}).resolve(QueryOptions{
		Name:     "bills",
		Where:    []string{"age > 70"},
		OrderBy:  []string{"-age"},
		Distinct: true,
		Output:   "yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/project", "data.json"), plan.dataPath)
	assert.Equal(t, filepath.Join("/project", config.FileName), plan.configPath)
	assert.Equal(t, "yaml", plan.format)
	assert.Equal(t, "yaml", plan.output)
	assert.Equal(t, 200*time.Millisecond, plan.debounce)
	assert.Equal(t, query.Definition{
		Where:    []string{"first == Bill", "age > 70"},
		OrderBy:  []string{"-age"},
		Select:   []string{"last"},
		Distinct: true,
		Limit:    5,
	}, plan.definition)

	// Test: merging flags does not leak into the stored query
	assert.Equal(t, []string{"first == Bill"}, cfg.Queries["bills"].Where)
}

func TestQueryCommand_Execute_Errors(t *testing.T) {
	data := writePeople(t, t.TempDir())

	tests := []struct {
		name        string
		opts        QueryOptions
		errContains string
	}{
		{
			name:        "named query without config",
			opts:        QueryOptions{Name: "bills", DataPath: data},
			errContains: "failed to load project config",
		},
		{
			name:        "no data file",
			opts:        QueryOptions{},
			errContains: "no data file",
		},
		{
			name:        "invalid condition",
			opts:        QueryOptions{DataPath: data, Where: []string{"first"}},
			errContains: "invalid query",
		},
		{
			name:        "unknown output",
			opts:        QueryOptions{DataPath: data, Output: "xml"},
			errContains: "unsupported output format",
		},
		{
			name:        "missing data file",
			opts:        QueryOptions{DataPath: filepath.Join(t.TempDir(), "none.json")},
			errContains: "failed to read records",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := new(mockConfigLoader)
			loader.On("LoadConfig").Return(nil, "", errors.New("no arrgh.json found"))

			err := newTestQueryCommand(loader, &bytes.Buffer{}).Execute(context.Background(), tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
