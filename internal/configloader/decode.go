package configloader

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
)

// knownTopLevelKeys are the keys a config file may set at its root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownTopLevelKeys = map[string]bool{
	"flavor":           true,
	"severity_default": true,
	"concurrency":      true,
	"rules":            true,
	"ignore":           true,
}

// knownRuleKeys are the keys a single rule entry may set.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownRuleKeys = map[string]bool{
	"enabled":  true,
	"severity": true,
	"options":  true,
}

// fileConfig is a decoded configuration file.
type fileConfig struct {
	cfg  *config.Config
	path string

	// lines maps dotted field paths ("rules.MD001.severity") to 1-based
	// line numbers. Only populated for YAML files.
	lines map[string]int

	// unknown lists dotted paths of keys that map onto no field.
	unknown []string
}

// line returns the line of a field path, or 0 when unknown.
// Indexed paths such as "ignore[2]" resolve to their parent key.
func (f *fileConfig) line(field string) int {
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	return f.lines[field]
}

// loadConfigFile reads and decodes a YAML or TOML configuration file.
func loadConfigFile(ctx context.Context, path string) (*fileConfig, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if IsTOMLConfig(path) {
		cfg, unknown, err := config.FromTOML(content)
		if err != nil {
			return nil, err
		}
		return &fileConfig{cfg: cfg, path: path, unknown: unknown}, nil
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, err
	}

	fc := &fileConfig{cfg: cfg, path: path, lines: make(map[string]int)}
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		fc.indexYAML(doc.Content[0])
	}

	return fc, nil
}

// indexYAML records key positions and unknown keys from a YAML mapping.
func (f *fileConfig) indexYAML(root *yaml.Node) {
	eachPair(root, func(key, value *yaml.Node) {
		f.lines[key.Value] = key.Line
		if !knownTopLevelKeys[key.Value] {
			f.unknown = append(f.unknown, key.Value)
			return
		}

		if key.Value != "rules" {
			return
		}
		eachPair(value, func(ruleKey, ruleValue *yaml.Node) {
			prefix := "rules." + ruleKey.Value
			f.lines[prefix] = ruleKey.Line
			eachPair(ruleValue, func(field, _ *yaml.Node) {
				f.lines[prefix+"."+field.Value] = field.Line
				if !knownRuleKeys[field.Value] {
					f.unknown = append(f.unknown, prefix+"."+field.Value)
				}
			})
		})
	})
}

// eachPair calls fn for every key/value pair of a mapping node.
func eachPair(node *yaml.Node, fn func(key, value *yaml.Node)) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		fn(node.Content[i], node.Content[i+1])
	}
}
