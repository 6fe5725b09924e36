package handler

import (
	"bytes"
	"fmt"

	"github.com/neovim/go-client/nvim"
)

const modifiableOption = "modifiable"

// bufferWriter replaces the contents of a (possibly read-only) widget buffer.
type bufferWriter struct {
	buffer nvim.Buffer
	vim    *nvim.Nvim
}

func newBufferWriter(vim *nvim.Nvim, buffer nvim.Buffer) *bufferWriter {
	return &bufferWriter{
		buffer: buffer,
		vim:    vim,
	}
}

// splitLines splits rendered output into buffer lines.
// A single trailing newline does not produce an empty last line.
func splitLines(p []byte) [][]byte {
	p = bytes.TrimSuffix(p, []byte("\n"))
	if len(p) == 0 {
		return [][]byte{}
	}
	lines := bytes.Split(p, []byte("\n"))
	for i, l := range lines {
		lines[i] = bytes.TrimSuffix(l, []byte("\r"))
	}
	return lines
}

func (b *bufferWriter) Write(p []byte) (int, error) {
	lines := splitLines(p)

	modifiable := false
	if err := b.vim.BufferOption(b.buffer, modifiableOption, &modifiable); err != nil {
		return 0, fmt.Errorf("vim.BufferOption: %w", err)
	}

	if !modifiable {
		if err := b.vim.SetBufferOption(b.buffer, modifiableOption, true); err != nil {
			return 0, fmt.Errorf("vim.SetBufferOption: %w", err)
		}
		defer func() {
			_ = b.vim.SetBufferOption(b.buffer, modifiableOption, false)
		}()
	}

	if err := b.vim.SetBufferLines(b.buffer, 0, -1, true, lines); err != nil {
		return 0, fmt.Errorf("vim.SetBufferLines: %w", err)
	}

	return len(p), nil
}
