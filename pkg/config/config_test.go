package config

import (
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	manager, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return manager
}

func TestDefaults(t *testing.T) {
	manager := newTestManager(t)

	if got := manager.GetString(KeySDKPackage); got != "dotnet-sdk-8.0" {
		t.Errorf("default %s = %q; expected %q", KeySDKPackage, got, "dotnet-sdk-8.0")
	}
	if got := manager.GetInt(KeyTargetMajor); got != 8 {
		t.Errorf("default %s = %d; expected 8", KeyTargetMajor, got)
	}
	if got := manager.GetString(KeyOSFamilyToken); got != "centos" {
		t.Errorf("default %s = %q; expected %q", KeyOSFamilyToken, got, "centos")
	}
}

func TestSetAndGet(t *testing.T) {
	manager := newTestManager(t)

	if err := manager.Set(KeySDKPackage, "dotnet-sdk-9.0"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := manager.GetString(KeySDKPackage); got != "dotnet-sdk-9.0" {
		t.Errorf("after Set, %s = %q; expected %q", KeySDKPackage, got, "dotnet-sdk-9.0")
	}
}

func TestUnsetRestoresDefault(t *testing.T) {
	manager := newTestManager(t)

	if err := manager.Set(KeyTargetMajor, 9); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := manager.Unset(KeyTargetMajor); err != nil {
		t.Fatalf("Unset failed: %v", err)
	}
	if got := manager.GetInt(KeyTargetMajor); got != 8 {
		t.Errorf("after Unset, %s = %d; expected the default 8", KeyTargetMajor, got)
	}
}

func TestIsValidKey(t *testing.T) {
	manager := newTestManager(t)

	if !manager.IsValidKey(KeyRepoURL) {
		t.Errorf("%s should be a valid key", KeyRepoURL)
	}
	if manager.IsValidKey("no_such_key") {
		t.Error("unknown keys must be rejected")
	}
}

func TestConfigFileLocation(t *testing.T) {
	manager := newTestManager(t)

	expected := filepath.Join(ConfigDirName, ConfigFileName)
	if got := manager.GetConfigFile(); !filepath.IsAbs(got) || !endsWith(got, expected) {
		t.Errorf("config file %q should be an absolute path ending in %q", got, expected)
	}
}

func endsWith(path, suffix string) bool {
	return len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix
}
