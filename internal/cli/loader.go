package cli

import (
	"github.com/anggasct/stately"
	"github.com/anggasct/stately/pkg/definition"
)

// loadDefinition reads a YAML machine definition with the builtin procedures
func loadDefinition(formatter *OutputFormatter, path string) (stately.Config, error) {
	cfg, err := definition.LoadFile(path, definition.Builtins())
	if err != nil {
		return cfg, formatter.fail(ExitCommandError, ErrCodeLoad, err.Error(), nil)
	}
	return cfg, nil
}
