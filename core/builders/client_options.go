package builders

import "strings"

type clientConfig struct {
	typeProcessors map[string]func(any) any
	timeLayout     string
}

type ClientOption func(*clientConfig)

// WithCustomTypeProcessor converts values of a database column type
// before they are turned into record values. The first processor registered
// for a type wins.
func WithCustomTypeProcessor(typ string, fn func(any) any) ClientOption {
	return func(cc *clientConfig) {
		t := strings.ToLower(typ)
		_, ok := cc.typeProcessors[t]
		if ok {
			// processor already registered for this type
			return
		}

		cc.typeProcessors[t] = fn
	}
}

// WithTimeLayout sets the layout time values are rendered with.
func WithTimeLayout(layout string) ClientOption {
	return func(cc *clientConfig) {
		cc.timeLayout = layout
	}
}
