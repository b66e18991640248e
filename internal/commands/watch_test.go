package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/arrgh/internal/config"
)

// Test plan:
// 1. Test the query runs once on start and again after the data file changes
// 2. Test pointing arrgh.json at another data file moves the watch to it
// 3. Test a bad or negative debounce in arrgh.json is rejected before watching
// 4. Test resolution errors are returned immediately

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeProject(t *testing.T, debounce string) (dir, configPath, dataPath string) {
	t.Helper()
	dir = t.TempDir()
	dataPath = writePeople(t, dir)

	cfg := config.Default("people")
	cfg.Data = "./people.json"
	cfg.Watch.Debounce = debounce
	cfg.Queries["bills"] = config.QueryConfig{
		Where:  []string{"first == Bill"},
		Select: []string{"last"},
	}
	configPath = filepath.Join(dir, config.FileName)
	require.NoError(t, cfg.Save(configPath))
	return dir, configPath, dataPath
}

func TestWatchCommand_Execute_RerunsOnChange(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	_, configPath, dataPath := writeProject(t, "20ms")

	out := &syncBuffer{}
	cmd := NewWatchCommand().WithDependencies(QueryDependencies{
		ConfigLoader: &defaultConfigLoader{},
		Stdout:       out,
		Logger:       zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- cmd.Execute(ctx, QueryOptions{Name: "bills", ConfigPath: configPath})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Clinton")
	}, 2*time.Second, 10*time.Millisecond)
	assert.NotContains(t, out.String(), "Obama")

	// Give watcher time to start
	time.Sleep(100 * time.Millisecond)

	updated := strings.Replace(peopleData, `"last": "Clinton"`, `"last": "Obama"`, 1)
	require.NoError(t, os.WriteFile(dataPath, []byte(updated), 0644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Obama")
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchCommand_Execute_FollowsDataFileChange(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dir, configPath, _ := writeProject(t, "20ms")
	presidents := filepath.Join(dir, "presidents.json")
	require.NoError(t, os.WriteFile(presidents, []byte(`[{"first": "Bill", "last": "Lincoln"}]`), 0644))

	out := &syncBuffer{}
	cmd := NewWatchCommand().WithDependencies(QueryDependencies{
		ConfigLoader: &defaultConfigLoader{},
		Stdout:       out,
		Logger:       zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- cmd.Execute(ctx, QueryOptions{Name: "bills", ConfigPath: configPath})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Clinton")
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	// Test: the config edit re-runs against the new data file
	cfg, err := config.LoadConfigFromPath(configPath)
	require.NoError(t, err)
	cfg.Data = "./presidents.json"
	require.NoError(t, cfg.Save(configPath))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Lincoln")
	}, 3*time.Second, 20*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	// Test: edits to the new data file now trigger a re-run
	require.NoError(t, os.WriteFile(presidents, []byte(`[{"first": "Bill", "last": "Roosevelt"}]`), 0644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Roosevelt")
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchCommand_Execute_InvalidDebounce(t *testing.T) {
	tests := []struct {
		name        string
		debounce    string
		errContains string
	}{
		{name: "unparsable", debounce: "later", errContains: `invalid watch debounce "later"`},
		{name: "negative", debounce: "-1s", errContains: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, configPath, _ := writeProject(t, tt.debounce)

			cmd := NewWatchCommand().WithDependencies(QueryDependencies{
				ConfigLoader: &defaultConfigLoader{},
				Stdout:       &syncBuffer{},
				Logger:       zerolog.Nop(),
			})

			err := cmd.Execute(context.Background(), QueryOptions{ConfigPath: configPath})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestWatchCommand_Execute_ResolveError(t *testing.T) {
	_, configPath, _ := writeProject(t, "20ms")

	cmd := NewWatchCommand().WithDependencies(QueryDependencies{
		ConfigLoader: &defaultConfigLoader{},
		Stdout:       &syncBuffer{},
		Logger:       zerolog.Nop(),
	})

	err := cmd.Execute(context.Background(), QueryOptions{Name: "missing", ConfigPath: configPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `query "missing" not found`)
}
