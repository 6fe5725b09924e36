package adapters

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

var errNoCommand = errors.New("no command provided")

// urlFuncs are available in source urls as template functions, e.g.
//
//	postgres://{{ env "PGUSER" }}:{{ exec "pass show db" }}@localhost/dev
var urlFuncs = template.FuncMap{
	"env":  os.Getenv,
	"exec": runCommand,
}

// runCommand runs a command and returns its trimmed stdout.
// Pipelines are handed over to sh.
func runCommand(line string) (string, error) {
	var cmd *exec.Cmd
	if strings.Contains(line, " | ") {
		cmd = exec.Command("sh", "-c", line)
	} else {
		fields := strings.Fields(line)
		if len(fields) < 1 {
			return "", errNoCommand
		}
		cmd = exec.Command(fields[0], fields[1:]...)
	}

	out, err := cmd.Output()
	return strings.TrimSpace(string(out)), err
}

func expandURL(url string) (string, error) {
	if !strings.Contains(url, "{{") {
		return url, nil
	}

	tmpl, err := template.New("source_url").Funcs(urlFuncs).Parse(url)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, nil); err != nil {
		return "", err
	}

	return out.String(), nil
}

// expandURLOrDefault leaves the url untouched if it is not a valid template.
func expandURLOrDefault(url string) string {
	expanded, err := expandURL(url)
	if err != nil {
		return url
	}
	return expanded
}
