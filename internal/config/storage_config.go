package config

// StorageConfig sets the root of the on-disk snapshot and log tree.
type StorageConfig struct {
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty" validate:"required"`
}

// NewDefaultStorageConfig creates default storage configuration.
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		DataDir: "./data",
	}
}
