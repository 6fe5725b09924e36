package handler

import (
	"bytes"
	"fmt"

	"github.com/neovim/go-client/nvim"
)

// registerWriter yanks exported rows into a vim register.
type registerWriter struct {
	vim      *nvim.Nvim
	register string
}

func newRegisterWriter(vim *nvim.Nvim, register string) *registerWriter {
	if register == "" {
		register = `"`
	}
	return &registerWriter{
		vim:      vim,
		register: register,
	}
}

// regtype is linewise for multi-line exports, so a put pastes whole lines.
func regtype(p []byte) string {
	if bytes.Contains(bytes.TrimSuffix(p, []byte("\n")), []byte("\n")) {
		return "l"
	}
	return "c"
}

func (rw *registerWriter) Write(p []byte) (int, error) {
	err := rw.vim.Call("setreg", nil, rw.register, string(p), regtype(p))
	if err != nil {
		return 0, fmt.Errorf("vim.Call: %w", err)
	}

	return len(p), nil
}
