package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"testctl/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd
var osLookupEnv = os.LookupEnv

const (
	userConfigDir    = ".config/testctl"
	projectConfigDir = ".testctl"
	configFileName   = "config.yaml"

	// CachePathEnv overrides the cache directory of every config layer.
	CachePathEnv = "TESTCTL_CACHE_PATH"
)

// LoadConfig loads the testctl configuration by layering default, user,
// project and, when explicitPath is set, an explicit file. The result is
// validated before it is returned.
func LoadConfig(explicitPath string) (TestctlConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User configuration is optional
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else if config, err = overlayIfExists(config, userConfigPath); err != nil {
		return TestctlConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	// 3. Project configuration is optional
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else if config, err = overlayIfExists(config, projectConfigPath); err != nil {
		return TestctlConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	// 4. An explicit file must exist
	if explicitPath != "" {
		explicitConfig, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return TestctlConfig{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, explicitConfig)
	}

	if path, ok := osLookupEnv(CachePathEnv); ok && path != "" {
		config.Cache.Path = path
	}

	if err := Validate(config); err != nil {
		return TestctlConfig{}, err
	}
	return config, nil
}

func overlayIfExists(base TestctlConfig, path string) (TestctlConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return base, err
	}
	logging.Debug("Config", "Merged configuration from %s", path)
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a TestctlConfig from a YAML file.
func loadConfigFromFile(filePath string) (TestctlConfig, error) {
	var config TestctlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return TestctlConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return TestctlConfig{}, err
	}
	if err := validateUnique(config.Checks); err != nil {
		return TestctlConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Scalars set in the
// overlay win; checks are merged by (category, id) keeping first-seen order.
func mergeConfigs(base, overlay TestctlConfig) TestctlConfig {
	merged := base

	if overlay.Cache.Path != "" {
		merged.Cache.Path = overlay.Cache.Path
	}
	if overlay.Cache.TTL != 0 {
		merged.Cache.TTL = overlay.Cache.TTL
	}
	if overlay.Cache.Backend != "" {
		merged.Cache.Backend = overlay.Cache.Backend
	}
	if overlay.Execution.Timeout != 0 {
		merged.Execution.Timeout = overlay.Execution.Timeout
	}
	if overlay.Execution.Parallel != 0 {
		merged.Execution.Parallel = overlay.Execution.Parallel
	}

	merged.Checks = make([]CheckDefinition, 0, len(base.Checks)+len(overlay.Checks))
	index := make(map[string]int, len(base.Checks))
	for _, def := range append(append([]CheckDefinition{}, base.Checks...), overlay.Checks...) {
		if i, ok := index[def.key()]; ok {
			merged.Checks[i] = def
			continue
		}
		index[def.key()] = len(merged.Checks)
		merged.Checks = append(merged.Checks, def)
	}

	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
