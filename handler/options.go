package handler

type handlerConfig struct {
	widgetLog string
}

type Option func(*handlerConfig)

// WithWidgetLog sets the file widget params are stored to on close and
// restored from on start. Widgets are not persisted without it.
func WithWidgetLog(path string) Option {
	return func(c *handlerConfig) {
		c.widgetLog = path
	}
}
