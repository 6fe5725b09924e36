package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/neovim/go-client/nvim"

	"github.com/kndndrj/iltable/handler"
	"github.com/kndndrj/iltable/plugin"
)

func main() {
	generateManifest := flag.String("manifest", "", "Generate manifest to file (filename of manifest).")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error).")
	flag.Parse()

	if *generateManifest != "" {
		p := plugin.New(nil, nil)
		mountEndpoints(p, nil)
		err := p.Manifest("nvim_iltable", "iltable", *generateManifest)
		if err != nil {
			panic(err)
		}
		return
	}

	// stdout is used for rpc, so print everything else to stderr
	stdout := os.Stdout
	os.Stdout = os.Stderr

	v, err := nvim.New(os.Stdin, stdout, stdout, log.Printf)
	if err != nil {
		panic(err)
	}

	logger := plugin.NewLogger(v, plugin.ParseLevel(*logLevel))
	defer logger.Close()

	var opts []handler.Option
	var stateDir string
	if err := v.Call("stdpath", &stateDir, "state"); err == nil {
		opts = append(opts, handler.WithWidgetLog(filepath.Join(stateDir, "iltable-widgets.json")))
	}

	p := plugin.New(v, logger)
	h := handler.New(v, logger, opts...)
	defer h.Close()

	mountEndpoints(p, h)

	if err := v.Serve(); err != nil {
		logger.Errorf("v.Serve: %s", err)
		return
	}
}
