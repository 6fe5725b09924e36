package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SnapshotKey is the store key render snapshots are written under.
const SnapshotKey = "data"

var ErrWidgetNotReady = errors.New("widget is not ready")

type WidgetID string

type widgetConfig struct {
	onRender      func(*Widget)
	onStateChange func(WidgetState, *Widget)
	store         Store
	logger        Logger
	loadTimeout   time.Duration
}

type WidgetOption func(*widgetConfig)

// WidgetWithRenderer sets the hook that redraws the whole table.
// It is called after load and after every sort or filter mutation.
func WidgetWithRenderer(fn func(*Widget)) WidgetOption {
	return func(c *widgetConfig) {
		c.onRender = fn
	}
}

func WidgetWithStateHook(fn func(WidgetState, *Widget)) WidgetOption {
	return func(c *widgetConfig) {
		c.onStateChange = fn
	}
}

// WidgetWithStore sets the store that receives a snapshot on every render.
func WidgetWithStore(store Store) WidgetOption {
	return func(c *widgetConfig) {
		c.store = store
	}
}

func WidgetWithLogger(logger Logger) WidgetOption {
	return func(c *widgetConfig) {
		c.logger = logger
	}
}

func WidgetWithLoadTimeout(d time.Duration) WidgetOption {
	return func(c *widgetConfig) {
		c.loadTimeout = d
	}
}

// Widget is a single table instance: a dataset loaded asynchronously
// from a source, plus the hooks that present it.
type Widget struct {
	id        WidgetID
	source    Source
	dataset   *Dataset
	config    *widgetConfig
	timestamp time.Time

	state     WidgetState
	timeTaken time.Duration
	err       error
	stateMu   sync.RWMutex

	cancelFunc func()
	done       chan struct{}
}

// NewWidget creates a widget and starts loading records from the source.
// Interactive operations fail with ErrWidgetNotReady until loading is done.
func NewWidget(source Source, opts ...WidgetOption) *Widget {
	config := &widgetConfig{
		logger:      nopLogger{},
		loadTimeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(config)
	}

	w := &Widget{
		id:        WidgetID(uuid.New().String()),
		source:    source,
		dataset:   NewDataset(),
		config:    config,
		timestamp: time.Now(),
		done:      make(chan struct{}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.loadTimeout)
	w.cancelFunc = cancel

	w.setState(WidgetStateLoading, nil)

	go func() {
		defer close(w.done)
		defer cancel()

		records, err := source.Records(ctx)
		if err != nil {
			w.config.logger.Errorf("widget %s: source.Records: %s", w.id, err)
			w.setState(WidgetStateLoadingFailed, err)
			return
		}

		w.dataset.Load(records)
		w.setState(WidgetStateReady, nil)
		w.render()
	}()

	return w
}

func (w *Widget) setState(state WidgetState, err error) {
	w.stateMu.Lock()
	if w.state == WidgetStateClosed {
		w.stateMu.Unlock()
		return
	}
	w.state = state
	w.err = err
	if state != WidgetStateLoading {
		w.timeTaken = time.Since(w.timestamp)
	}
	w.stateMu.Unlock()

	if w.config.onStateChange != nil {
		w.config.onStateChange(state, w)
	}
}

func (w *Widget) GetID() WidgetID {
	return w.id
}

func (w *Widget) GetState() WidgetState {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()
	return w.state
}

func (w *Widget) GetTimeTaken() time.Duration {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()
	return w.timeTaken
}

func (w *Widget) GetTimestamp() time.Time {
	return w.timestamp
}

func (w *Widget) Err() error {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()
	return w.err
}

// Done returns a channel that is closed when loading finishes.
func (w *Widget) Done() chan struct{} {
	return w.done
}

// Dataset returns the underlying dataset.
func (w *Widget) Dataset() *Dataset {
	return w.dataset
}

func (w *Widget) ready() error {
	if w.GetState() != WidgetStateReady {
		return ErrWidgetNotReady
	}
	return nil
}

func (w *Widget) Columns() (Columns, error) {
	if err := w.ready(); err != nil {
		return nil, err
	}
	return w.dataset.Columns(), nil
}

// Sort re-sorts all rows and re-renders.
func (w *Widget) Sort(keys ...SortKey) error {
	if err := w.ready(); err != nil {
		return err
	}

	if err := w.dataset.Sort(keys...); err != nil {
		return fmt.Errorf("dataset.Sort: %w", err)
	}

	w.render()
	return nil
}

// ToggleFilter opens or closes the filter input of a column and re-renders.
func (w *Widget) ToggleFilter(column string) (bool, error) {
	if err := w.ready(); err != nil {
		return false, err
	}

	open, err := w.dataset.ToggleFilter(column)
	if err != nil {
		return false, fmt.Errorf("dataset.ToggleFilter: %w", err)
	}

	w.render()
	return open, nil
}

// Search applies a filter on a column and re-renders.
func (w *Widget) Search(column, query string) error {
	if err := w.ready(); err != nil {
		return err
	}

	if err := w.dataset.Search(column, query); err != nil {
		return fmt.Errorf("dataset.Search: %w", err)
	}

	w.render()
	return nil
}

// HandleKey runs Search only if the key is a trigger key.
// It returns whether the search was triggered.
func (w *Widget) HandleKey(column, key, query string) (bool, error) {
	if err := w.ready(); err != nil {
		return false, err
	}
	if !IsTriggerKey(key) {
		return false, nil
	}

	if err := w.Search(column, query); err != nil {
		return false, err
	}
	return true, nil
}

// Format renders visible rows with the formatter.
func (w *Widget) Format(formatter Formatter) ([]byte, error) {
	if err := w.ready(); err != nil {
		return nil, err
	}
	return w.dataset.Format(formatter)
}

// Render triggers the render hook and the snapshot write.
func (w *Widget) Render() error {
	if err := w.ready(); err != nil {
		return err
	}
	w.render()
	return nil
}

func (w *Widget) render() {
	if w.config.onRender != nil {
		w.config.onRender(w)
	}

	if w.config.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := w.config.store.Set(ctx, SnapshotKey, w.dataset.Snapshot())
	if err != nil {
		w.config.logger.Errorf("widget %s: store.Set: %s", w.id, err)
	}
}

// Close cancels loading, tears down the dataset and closes the source.
func (w *Widget) Close() {
	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	<-w.done

	w.setState(WidgetStateClosed, nil)
	w.dataset.Wipe()
	w.source.Close()
}
