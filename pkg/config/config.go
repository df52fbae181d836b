// Package config stores the provisioning defaults in a viper-backed YAML
// file. A bare invocation never needs it: every key has a default that
// matches the upstream Microsoft package repository for CentOS-family
// hosts.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
)

const (
	ConfigDirName  = ".dotnetup"
	ConfigFileName = "config.yaml"
)

const (
	KeyTrustKeyURL                        = "trust_key_url"
	KeyRepoURL                            = "repo_url"
	KeyRepoDir                            = "repo_dir"
	KeyRepoFileName                       = "repo_file_name"
	KeyDependencyPackage                  = "dependency_package"
	KeySDKPackage                         = "sdk_package"
	KeyTargetMajor                        = "target_major_version"
	KeyOSFamilyToken                      = "os_family_token"
	KeyNetworkDialTimeoutSeconds          = "network_dial_timeout_seconds"
	KeyNetworkTLSHandshakeTimeoutSeconds  = "network_tls_handshake_timeout_seconds"
	KeyNetworkResponseHeaderTimeoutSecond = "network_response_header_timeout_seconds"
	KeyNetworkIdleTimeoutSeconds          = "network_idle_timeout_seconds"
)

var DefaultConfig = map[string]interface{}{
	KeyTrustKeyURL:                        "https://packages.microsoft.com/keys/microsoft.asc",
	KeyRepoURL:                            "https://packages.microsoft.com/config/centos/8/prod.repo",
	KeyRepoDir:                            "/etc/yum.repos.d",
	KeyRepoFileName:                       "microsoft-prod.repo",
	KeyDependencyPackage:                  "libicu",
	KeySDKPackage:                         "dotnet-sdk-8.0",
	KeyTargetMajor:                        8,
	KeyOSFamilyToken:                      "centos",
	KeyNetworkDialTimeoutSeconds:          15,
	KeyNetworkTLSHandshakeTimeoutSeconds:  15,
	KeyNetworkResponseHeaderTimeoutSecond: 60,
	KeyNetworkIdleTimeoutSeconds:          300,
}

// Manager reads and writes the configuration file.
type Manager struct {
	viper         *viper.Viper
	configDir     string
	configFile    string
	isInitialized bool
}

// NewManager creates a configuration manager over ~/.dotnetup/config.yaml.
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ConfigDirName)
	configFile := filepath.Join(configDir, ConfigFileName)

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	return &Manager{
		viper:      v,
		configDir:  configDir,
		configFile: configFile,
	}, nil
}

// Initialize ensures the config directory and file exist, applies the
// defaults and loads any overrides.
func (m *Manager) Initialize() error {
	if m.isInitialized {
		return nil
	}

	if err := os.MkdirAll(m.configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	for key, value := range DefaultConfig {
		m.viper.SetDefault(key, value)
	}

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		if err := os.WriteFile(m.configFile, []byte{}, 0o644); err != nil {
			return fmt.Errorf("failed to create empty config file: %w", err)
		}
	}

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	m.isInitialized = true
	return nil
}

// GetConfigFile returns the configuration file path.
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Get returns the effective value for a key (override or default).
func (m *Manager) Get(key string) interface{} {
	if err := m.Initialize(); err != nil {
		return nil
	}
	return m.viper.Get(key)
}

// GetString returns the effective string value for a key.
func (m *Manager) GetString(key string) string {
	if err := m.Initialize(); err != nil {
		return ""
	}
	return m.viper.GetString(key)
}

// GetInt returns the effective integer value for a key.
func (m *Manager) GetInt(key string) int {
	if err := m.Initialize(); err != nil {
		return 0
	}
	return m.viper.GetInt(key)
}

// Set writes an override for a key.
func (m *Manager) Set(key string, value interface{}) error {
	if err := m.Initialize(); err != nil {
		return err
	}

	m.viper.Set(key, value)
	return m.viper.WriteConfig()
}

// Unset removes an override for a key, restoring the default.
func (m *Manager) Unset(key string) error {
	if err := m.Initialize(); err != nil {
		return err
	}

	settings := m.viper.AllSettings()
	delete(settings, key)

	fresh := viper.New()
	fresh.SetConfigFile(m.configFile)
	fresh.SetConfigType("yaml")
	for k, v := range settings {
		fresh.Set(k, v)
	}
	if err := fresh.WriteConfig(); err != nil {
		return fmt.Errorf("failed to rewrite config file: %w", err)
	}

	m.isInitialized = false
	m.viper = viper.New()
	m.viper.SetConfigFile(m.configFile)
	m.viper.SetConfigType("yaml")
	return m.Initialize()
}

// GetAll returns all effective settings.
func (m *Manager) GetAll() map[string]interface{} {
	if err := m.Initialize(); err != nil {
		return nil
	}

	settings := make(map[string]interface{}, len(DefaultConfig))
	for key := range DefaultConfig {
		settings[key] = m.viper.Get(key)
	}
	return settings
}

// IsValidKey reports whether key names a known configuration setting.
func (m *Manager) IsValidKey(key string) bool {
	_, ok := DefaultConfig[key]
	return ok
}

// GetValidKeys returns all known configuration keys, sorted.
func (m *Manager) GetValidKeys() []string {
	keys := make([]string, 0, len(DefaultConfig))
	for key := range DefaultConfig {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
