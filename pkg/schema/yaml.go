package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML accepts a YAML rendition of a JSON Schema document, converts it
// to JSON, and parses the result. Key order survives the conversion because
// the yaml.Node tree keeps mapping entries in document order.
func ParseYAML(raw []byte) (Schema, error) {
	converted, err := YAMLToJSON(raw)
	if err != nil {
		return Schema{}, err
	}
	return Parse(converted)
}

// YAMLToJSON converts a single YAML document to JSON, preserving mapping key
// order.
func YAMLToJSON(raw []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("schema: parse yaml: %w", err)
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil, fmt.Errorf("schema: yaml document is empty")
	}

	var buf bytes.Buffer
	if err := encodeYAMLNode(&buf, node.Content[0]); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeYAMLNode(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(node.Content[i].Value)
			if err != nil {
				return fmt.Errorf("schema: encode yaml key: %w", err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encodeYAMLNode(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeYAMLNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return fmt.Errorf("schema: decode yaml scalar: %w", err)
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("schema: encode yaml scalar: %w", err)
		}
		buf.Write(encoded)
		return nil
	case yaml.AliasNode:
		return encodeYAMLNode(buf, node.Alias)
	default:
		return fmt.Errorf("schema: unsupported yaml node kind %d", node.Kind)
	}
}
