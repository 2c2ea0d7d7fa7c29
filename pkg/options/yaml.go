package options

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultYAMLSection is the document key used for the default (unnamed)
// options instance.
const DefaultYAMLSection = "default"

// YAMLFactory returns a Factory that configures a fresh T from a YAML file
// on every call. The document is a mapping of instance name to values; the
// default instance reads the "default" section.
//
//	default:
//	  timeout: 5s
//	read-replica:
//	  timeout: 1s
//
// The file is re-read on each invocation, which happens once per
// (type, name, tenant) key because results are cached downstream.
func YAMLFactory[T any](path string) Factory[T] {
	return func(ctx context.Context, name string) (*T, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read options file %s: %w", path, err)
		}

		var doc map[string]yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse options file %s: %w", path, err)
		}

		section := name
		if section == "" {
			section = DefaultYAMLSection
		}
		node, ok := doc[section]
		if !ok {
			return nil, fmt.Errorf("options file %s has no %q section", path, section)
		}

		var o T
		if err := node.Decode(&o); err != nil {
			return nil, fmt.Errorf("decode %q section of %s: %w", section, path, err)
		}
		return &o, nil
	}
}
