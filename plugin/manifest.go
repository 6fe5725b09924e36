package plugin

const manifestLuaFile = `-- This file is generated, do not edit by hand.
-- Regenerate with: {{ .Executable }} --manifest <path>

local M = {}

---@param host string name of the remote plugin host
function M.register(host)
  host = host or "{{ .Host }}"
{{- range .Specs }}
  vim.fn["remote#host#RegisterPlugin"](host, "0", {
    { type = "{{ .Type }}", name = "{{ .Name }}", sync = {{ if .Sync }}1{{ else }}0{{ end }}, opts = vim.empty_dict() },
  })
{{- end }}
end

return M
`
