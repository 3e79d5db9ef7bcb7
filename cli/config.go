package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPaths are searched for a configuration file when --config is
// not given. Missing files are ignored.
var DefaultConfigPaths = []string{".cdoc.yaml", "~/.config/cdoc/config.yaml"}

// YAMLConfig is a kong.ConfigurationLoader reading flag defaults from YAML.
//
// Keys are flag names, with '-' or '_' as separator. Values for a command's
// flags may also be nested under the command path:
//
//	style: block
//	heading-level: 2
//	serve:
//	  port: 9000
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var resolver kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		scope := values
		if parent != nil && parent.Command != nil {
			for _, name := range strings.Fields(parent.Command.Path()) {
				nested, ok := lookup(scope, name).(map[string]any)
				if !ok {
					scope = values
					break
				}
				scope = nested
			}
		}

		if v := lookup(scope, flag.Name); v != nil {
			return v, nil
		}
		return lookup(values, flag.Name), nil
	}

	return resolver, nil
}

func lookup(values map[string]any, name string) any {
	if v, ok := values[name]; ok {
		return v
	}
	if v, ok := values[strings.ReplaceAll(name, "-", "_")]; ok {
		return v
	}
	return nil
}
