package adapters

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/kndndrj/iltable/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no source registered for provided type alias")
)

// registeredAdapters holds implemented adapters - specific adapters register themselves in their init functions.
// The main reason is to be able to compile the binary without unsupported os/arch of specific drivers.
var (
	registeredAdapters   = make(map[string]core.Adapter)
	registeredAdaptersMu sync.RWMutex
)

// register registers a new adapter for specific source type
func register(adapter core.Adapter, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	registeredAdaptersMu.Lock()
	defer registeredAdaptersMu.Unlock()

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredAdapters[alias] = adapter
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) GetAdapter(typ string) (core.Adapter, error) {
	registeredAdaptersMu.RLock()
	defer registeredAdaptersMu.RUnlock()

	adapter, ok := registeredAdapters[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTypeAlias, typ)
	}

	return adapter, nil
}

func (*Mux) AddAdapter(typ string, adapter core.Adapter) error {
	return register(adapter, typ)
}

// Types lists all registered type aliases.
func (*Mux) Types() []string {
	registeredAdaptersMu.RLock()
	defer registeredAdaptersMu.RUnlock()

	types := make([]string, 0, len(registeredAdapters))
	for typ := range registeredAdapters {
		types = append(types, typ)
	}
	slices.Sort(types)

	return types
}

// NewSource connects to a source of the given type using the internal mux.
// Template functions in url (env, exec) are expanded first.
func NewSource(typ, url string) (core.Source, error) {
	adapter, err := new(Mux).GetAdapter(typ)
	if err != nil {
		return nil, fmt.Errorf("Mux.GetAdapter: %w", err)
	}

	source, err := adapter.Connect(expandURLOrDefault(url))
	if err != nil {
		return nil, fmt.Errorf("adapter.Connect: %w", err)
	}

	return source, nil
}
