package output

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Header opens every generated YAML document.
const Header = "# WARNING: This file is autogenerated - changes will be lost!\n" +
	"# Edit the provider config and regenerate with ci-mgmt instead.\n\n"

// EncodeYAML renders v as a two-space indented YAML document preceded by
// Header. Equal inputs always produce identical bytes.
func EncodeYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
