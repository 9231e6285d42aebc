package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveStorage updates the storage section of the config file.
// Comments and formatting in other sections are preserved.
func SaveStorage(configPath string, s StorageConfig) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content,
		scalar("backend"), scalar(s.Backend),
	)
	if s.Path != "" {
		node.Content = append(node.Content, scalar("path"), scalar(s.Path))
	}
	if s.CacheTTL > 0 {
		node.Content = append(node.Content, scalar("cache_ttl"), scalar(s.CacheTTL.String()))
	}
	return saveSection(configPath, "storage", node)
}

// SaveLayoutRegions replaces layout.regions in the config file, keeping any
// other layout keys.
func SaveLayoutRegions(configPath string, regions map[string][]string) error {
	regionsNode := &yaml.Node{Kind: yaml.MappingNode}

	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		ids := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, id := range regions[name] {
			ids.Content = append(ids.Content, scalar(id))
		}
		regionsNode.Content = append(regionsNode.Content, scalar(name), ids)
	}

	return updateDocument(configPath, func(root *yaml.Node) {
		layoutNode := lookup(root, "layout")
		if layoutNode == nil || layoutNode.Kind != yaml.MappingNode {
			layoutNode = &yaml.Node{Kind: yaml.MappingNode}
			setKey(root, "layout", layoutNode)
		}
		setKey(layoutNode, "regions", regionsNode)
	})
}

// saveSection replaces (or appends) a top-level key.
func saveSection(configPath, key string, value *yaml.Node) error {
	return updateDocument(configPath, func(root *yaml.Node) {
		setKey(root, key, value)
	})
}

// updateDocument loads configPath as a yaml.Node tree, lets edit change the
// root mapping, and writes the result atomically.
func updateDocument(configPath string, edit func(root *yaml.Node)) error {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: user config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	edit(root)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".weekly.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// WriteDefault creates configPath from DefaultConfigTemplate unless it exists.
// Returns true when a file was written.
func WriteDefault(configPath string) (bool, error) {
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}
	if err := writeAtomic(configPath, []byte(DefaultConfigTemplate())); err != nil {
		return false, err
	}
	return true, nil
}

func scalar(v string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: v}
	// Quote numeric-looking identifiers so they read back as strings.
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func setKey(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}
