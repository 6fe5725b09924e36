package main

import (
	"github.com/neovim/go-client/nvim"

	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/handler"
	"github.com/kndndrj/iltable/plugin"
)

func mountEndpoints(p *plugin.Plugin, h *handler.Handler) {
	p.RegisterEndpoint(
		"IltableCreateWidget",
		func(args *struct {
			Opts *struct {
				Type  string `msgpack:"type"`
				URL   string `msgpack:"url"`
				Store string `msgpack:"store"`
			} `msgpack:",array"`
		},
		) (core.WidgetID, error) {
			return h.CreateWidget(&handler.WidgetParams{
				Type:  args.Opts.Type,
				URL:   args.Opts.URL,
				Store: args.Opts.Store,
			})
		})

	p.RegisterEndpoint(
		"IltableDeleteWidget",
		func(args *struct {
			ID core.WidgetID `msgpack:",array"`
		},
		) error {
			return h.DeleteWidget(args.ID)
		})

	p.RegisterEndpoint(
		"IltableGetWidgets",
		func(args *struct {
			IDs []core.WidgetID `msgpack:",array"`
		},
		) (any, error) {
			return handler.WrapWidgets(h.GetWidgets(args.IDs)), nil
		})

	p.RegisterEndpoint(
		"IltableWidgetColumns",
		func(args *struct {
			ID core.WidgetID `msgpack:",array"`
		},
		) (any, error) {
			columns, err := h.WidgetColumns(args.ID)
			if err != nil {
				return nil, err
			}
			return handler.WrapColumns(columns), nil
		})

	p.RegisterEndpoint(
		"IltableWidgetSort",
		func(args *struct {
			ID   core.WidgetID `msgpack:",array"`
			Opts *struct {
				Column    string `msgpack:"column"`
				Direction string `msgpack:"direction"`
			}
		},
		) (any, error) {
			return nil, h.WidgetSort(args.ID, args.Opts.Column, args.Opts.Direction)
		})

	p.RegisterEndpoint(
		"IltableWidgetToggleFilter",
		func(args *struct {
			ID     core.WidgetID `msgpack:",array"`
			Column string
		},
		) (bool, error) {
			return h.WidgetToggleFilter(args.ID, args.Column)
		})

	p.RegisterEndpoint(
		"IltableWidgetSearch",
		func(args *struct {
			ID   core.WidgetID `msgpack:",array"`
			Opts *struct {
				Column string `msgpack:"column"`
				Key    string `msgpack:"key"`
				Query  string `msgpack:"query"`
			}
		},
		) (bool, error) {
			return h.WidgetSearch(args.ID, args.Opts.Column, args.Opts.Key, args.Opts.Query)
		})

	p.RegisterEndpoint(
		"IltableWidgetDisplay",
		func(args *struct {
			ID   core.WidgetID `msgpack:",array"`
			Opts *struct {
				Buffer int `msgpack:"buffer"`
				From   int `msgpack:"from"`
				To     int `msgpack:"to"`
			}
		},
		) (int, error) {
			return h.WidgetDisplay(args.ID, nvim.Buffer(args.Opts.Buffer), args.Opts.From, args.Opts.To)
		})

	p.RegisterEndpoint(
		"IltableWidgetStore",
		func(args *struct {
			ID     core.WidgetID `msgpack:",array"`
			Format string
			Output string
			Opts   *struct {
				From     int `msgpack:"from"`
				To       int `msgpack:"to"`
				ExtraArg any `msgpack:"extra_arg"`
			}
		},
		) (any, error) {
			return nil, h.WidgetStore(args.ID, args.Format, args.Output, args.Opts.From, args.Opts.To, args.Opts.ExtraArg)
		})
}
