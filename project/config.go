package project

import (
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Layout of a project directory.
const (
	ConfigFileName  = "great_expectations.yml"
	ExpectationsDir = "expectations"
	CheckpointsDir  = "checkpoints"
	UncommittedDir  = "uncommitted"
)

// Store backends.
const (
	BackendBolt    = "bolt"
	BackendLevelDB = "leveldb"
)

// DatasourceConfig sets project-wide defaults for the datasource. Batch
// kwargs in a checkpoint override these per batch.
type DatasourceConfig struct {
	Name          string                 `yaml:"name,omitempty"`
	ReaderMethod  string                 `yaml:"reader_method,omitempty"`
	ReaderOptions map[string]interface{} `yaml:"reader_options,omitempty"`
	Limit         int                    `yaml:"limit,omitempty"`
	AWSRegion     string                 `yaml:"aws_region,omitempty"`
}

// StoreConfig picks the validation store backend and its location. A
// relative path is resolved against the project root.
type StoreConfig struct {
	Backend string `yaml:"backend,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// StoresConfig holds the project's stores.
type StoresConfig struct {
	Validations StoreConfig `yaml:"validations,omitempty"`
}

// Config is the parsed great_expectations.yml.
type Config struct {
	Datasource DatasourceConfig `yaml:"datasource,omitempty"`
	Stores     StoresConfig     `yaml:"stores,omitempty"`
}

// DefaultConfig is what `ge init` writes out.
func DefaultConfig() Config {
	return Config{
		Datasource: DatasourceConfig{Name: "default"},
		Stores: StoresConfig{
			Validations: StoreConfig{
				Backend: BackendBolt,
				Path:    UncommittedDir + "/validations.db",
			},
		},
	}
}

func parseConfig(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshaling project config")
	}
	return cfg, nil
}

func (c Config) marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	return out, errors.Wrap(err, "marshaling project config")
}
