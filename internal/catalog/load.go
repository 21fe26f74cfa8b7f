package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reglabs/coaflow/internal/common"
)

// catalogFile is the on-disk yaml shape of a catalog definition.
type catalogFile struct {
	Titles     map[TableID]string `yaml:"titles"`
	Parameters []Entry            `yaml:"parameters"`
}

// Load reads a catalog definition from a yaml file. A malformed catalog
// is a configuration error: the process should not start with it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse catalog file %s: %v", common.ErrInvalidConfig, path, err)
	}

	if len(file.Parameters) == 0 {
		return nil, fmt.Errorf("%w: catalog file %s defines no parameters", common.ErrInvalidConfig, path)
	}

	for i := range file.Parameters {
		if err := file.Parameters[i].validate(i); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
	}

	return New(file.Parameters, file.Titles), nil
}
