package directory

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// FileClient serves directory entries from a yaml export on disk.
// Deployments without live directory access run from a nightly export;
// the connector cannot tell the difference.
type FileClient struct {
	entries []Entry
}

type exportFile struct {
	Entries []struct {
		DN    string              `yaml:"dn"`
		Attrs map[string][]string `yaml:"attrs"`
	} `yaml:"entries"`
}

func NewFileClient(path string) (*FileClient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	var export exportFile
	if err := yaml.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}

	client := &FileClient{}
	for i, raw := range export.Entries {
		if raw.DN == "" {
			return nil, fmt.Errorf("entry at index %d missing dn", i)
		}
		entry := Entry{DN: raw.DN, Attrs: make(map[string][]string, len(raw.Attrs))}
		for name, values := range raw.Attrs {
			if name == attrMAC {
				// canonical lowercase form, regardless of how the export
				// spells it
				lowered := make([]string, len(values))
				for j, v := range values {
					lowered[j] = strings.ToLower(v)
				}
				values = lowered
			}
			entry.Attrs[name] = values
		}
		client.entries = append(client.entries, entry)
	}
	return client, nil
}

func (c *FileClient) Search(_ context.Context, attribute, value string) ([]Entry, error) {
	var matches []Entry
	for _, entry := range c.entries {
		for _, v := range entry.Attrs[attribute] {
			if v == value {
				matches = append(matches, entry)
				break
			}
		}
	}
	return matches, nil
}

func (c *FileClient) List(_ context.Context) ([]Entry, error) {
	return append([]Entry(nil), c.entries...), nil
}

func (c *FileClient) Close() error { return nil }
