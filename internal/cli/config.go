package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/loantrack/internal/paths"
	"github.com/mesh-intelligence/loantrack/pkg/tableview"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys in config.yaml.
	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeySyncStrategy  = "sync_strategy"
	cfgKeyBatchSize     = "batch_size"
	cfgKeyBatchInterval = "batch_interval"
	cfgKeyPageSize      = "page_size"
	cfgKeyRole          = "role"
	cfgKeySelection     = "selection"
)

// configFile is the structure written to a new config.yaml.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	SyncStrategy string `yaml:"sync_strategy"`
	PageSize     int    `yaml:"page_size"`
	Role         string `yaml:"role"`
	Selection    string `yaml:"selection"`
}

// settings are the effective configuration values after defaults.
type settings struct {
	Backend       string
	DataDir       string
	SyncStrategy  string
	BatchSize     int
	BatchInterval int
	PageSize      int
	Role          string
	Selection     tableview.SelectionPolicy
}

// storeConfig returns the Config passed to Store.Attach.
func (s settings) storeConfig(dataDir string) types.Config {
	return types.Config{
		Backend: s.Backend,
		DataDir: dataDir,
		SQLiteConfig: &types.SQLiteConfig{
			SyncStrategy:  s.SyncStrategy,
			BatchSize:     s.BatchSize,
			BatchInterval: s.BatchInterval,
		},
	}
}

// newViper returns a viper instance with every default registered. The role
// and sync strategy can be overridden from the environment; data_dir is not
// bound here because paths.ResolveDataDir orders it against the flag.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySyncStrategy, types.SyncImmediate)
	v.SetDefault(cfgKeyBatchSize, types.DefaultBatchSize)
	v.SetDefault(cfgKeyBatchInterval, types.DefaultBatchInterval)
	v.SetDefault(cfgKeyPageSize, tableview.DefaultPageSize)
	v.SetDefault(cfgKeyRole, types.RoleAdmin)
	v.SetDefault(cfgKeySelection, tableview.SelectionPersist.String())
	_ = v.BindEnv(cfgKeyRole, "LOANTRACK_ROLE")
	_ = v.BindEnv(cfgKeySyncStrategy, "LOANTRACK_SYNC_STRATEGY")
	return v
}

// loadConfig reads config.yaml from configDir. A missing file is not an
// error; defaults apply.
func loadConfig(configDir string) (settings, error) {
	v := newViper()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	policy, err := tableview.ParseSelectionPolicy(v.GetString(cfgKeySelection))
	if err != nil {
		return settings{}, fmt.Errorf("config %s: %w", cfgKeySelection, err)
	}
	s := settings{
		Backend:       v.GetString(cfgKeyBackend),
		DataDir:       v.GetString(cfgKeyDataDir),
		SyncStrategy:  v.GetString(cfgKeySyncStrategy),
		BatchSize:     v.GetInt(cfgKeyBatchSize),
		BatchInterval: v.GetInt(cfgKeyBatchInterval),
		PageSize:      v.GetInt(cfgKeyPageSize),
		Role:          v.GetString(cfgKeyRole),
		Selection:     policy,
	}
	if s.PageSize <= 0 {
		return settings{}, fmt.Errorf("config %s: %w", cfgKeyPageSize, tableview.ErrInvalidPageSize)
	}
	if !types.IsValidRole(s.Role) {
		return settings{}, fmt.Errorf("config %s %q: %w", cfgKeyRole, s.Role, types.ErrInvalidRole)
	}
	return s, nil
}

// writeConfigIfMissing creates config.yaml with default values unless it
// already exists. It reports whether a file was written.
func writeConfigIfMissing(configDir, dataDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, paths.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:      types.BackendSQLite,
		DataDir:      dataDir,
		SyncStrategy: types.SyncImmediate,
		PageSize:     tableview.DefaultPageSize,
		Role:         types.RoleAdmin,
		Selection:    tableview.SelectionPersist.String(),
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# loantrack configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
