package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kndndrj/iltable/adapters"
	"github.com/kndndrj/iltable/config"
	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/plugin"
	"github.com/kndndrj/iltable/server"
	"github.com/kndndrj/iltable/store"
)

func main() {
	usage := flag.Bool("usage", false, "Print supported environment variables.")
	flag.Parse()

	if *usage {
		if err := config.Usage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := plugin.NewStreamLogger(os.Stderr, plugin.ParseLevel(cfg.LogLevel))
	defer logger.Close()

	source, err := adapters.NewSource(cfg.SourceType, cfg.SourceURL)
	if err != nil {
		return fmt.Errorf("adapters.NewSource: %w", err)
	}

	st, err := store.New(cfg.StoreURL)
	if err != nil {
		source.Close()
		return fmt.Errorf("store.New: %w", err)
	}
	defer st.Close()

	widget := core.NewWidget(source,
		core.WidgetWithStore(st),
		core.WidgetWithLogger(logger),
		core.WidgetWithLoadTimeout(cfg.LoadTimeout),
		core.WidgetWithStateHook(func(state core.WidgetState, w *core.Widget) {
			logger.Infof("widget %s: %s", w.GetID(), state)
		}),
		core.WidgetWithRenderer(func(w *core.Widget) {
			logger.Debugf("widget %s: rendered %d of %d rows", w.GetID(), len(w.Dataset().VisibleRows()), w.Dataset().Len())
		}),
	)
	defer widget.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(widget, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s, loading %s source", cfg.Addr, cfg.SourceType)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	return nil
}
