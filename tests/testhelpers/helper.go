// Package testhelpers provides helpers for integration tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/kndndrj/iltable/core"
)

const (
	// eventBufferTime is a padding to let hooks come through (e.g. rendered)
	eventBufferTime = 100 * time.Millisecond
	// eventTimeout is the maximum time to wait for a widget to load
	eventTimeout = 30 * time.Second
)

// errTimeOut is an error for when a widget did not finish loading within the expected time.
var errTimeOut = fmt.Errorf("widget did not finish loading within %v", eventTimeout)

// GetContainerProvider returns the container provider type to use for the tests.
// If we detect podman is available, we use it, otherwise we use docker.
func GetContainerProvider() testcontainers.ProviderType {
	if _, err := exec.LookPath("podman"); err == nil {
		fmt.Println("Podman detected. Remember to set TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED=true;")
		return testcontainers.ProviderPodman
	}
	return testcontainers.ProviderDocker
}

// LoadWidget creates a widget on top of source and waits until loading ends.
// Returned states are the ones observed by the state hook in order.
func LoadWidget(t *testing.T, source core.Source, opts ...core.WidgetOption) (*core.Widget, []core.WidgetState, error) {
	t.Helper()

	var mu sync.Mutex
	states := make([]core.WidgetState, 0)

	opts = append(opts, core.WidgetWithStateHook(func(state core.WidgetState, _ *core.Widget) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, state)
	}))

	w := core.NewWidget(source, opts...)

	select {
	case <-w.Done():
		time.Sleep(eventBufferTime)
		mu.Lock()
		defer mu.Unlock()
		return w, append([]core.WidgetState{}, states...), nil
	case <-time.After(eventTimeout):
		w.Close()
		return nil, nil, errTimeOut
	}
}

// Column returns the string rendering of a single column for the given rows.
func Column(t *testing.T, rows []*core.Row, name string) []string {
	t.Helper()

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		require.NotNil(t, row)
		out = append(out, row.Get(name).String())
	}
	return out
}

// GetTestDataPath returns the path to the testdata directory.
func GetTestDataPath() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get current file path")
	}

	return filepath.Join(filepath.Dir(currentFile), "../testdata"), nil
}

// GetTestDataFile returns a file from the testdata directory.
func GetTestDataFile(filename string) (*os.File, error) {
	testDataPath, err := GetTestDataPath()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(testDataPath, filename)
	return os.Open(path)
}
