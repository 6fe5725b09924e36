package plugin_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/iltable/plugin"
)

func TestManifest(t *testing.T) {
	r := require.New(t)

	p := plugin.New(nil, nil)
	p.RegisterEndpoint("IltableWidgetSort", func(args *struct {
		ID string `msgpack:",array"`
	},
	) error {
		return nil
	})
	p.RegisterEndpoint("IltableCreateWidget", func(args *struct {
		Type string `msgpack:",array"`
	},
	) (string, error) {
		return "", nil
	})

	path := filepath.Join(t.TempDir(), "manifest.lua")
	r.NoError(p.Manifest("nvim_iltable", "iltable", path))

	b, err := os.ReadFile(path)
	r.NoError(err)
	manifest := string(b)

	r.Contains(manifest, `host = host or "nvim_iltable"`)
	r.Contains(manifest, `name = "IltableCreateWidget", sync = 1`)
	r.Contains(manifest, `name = "IltableWidgetSort", sync = 1`)
	r.Less(
		strings.Index(manifest, "IltableCreateWidget"),
		strings.Index(manifest, "IltableWidgetSort"),
	)
}
