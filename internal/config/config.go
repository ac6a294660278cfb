// Package config persists client settings in ~/.portal/config.json:
// named server profiles (base URL + token) and the currently selected one.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Profile struct {
	BaseURL     string `json:"baseUrl"`
	Token       string `json:"token,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

type Config struct {
	CurrentProfile string             `json:"currentProfile,omitempty"`
	Profiles       map[string]Profile `json:"profiles,omitempty"`
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.portal).
	if v := strings.TrimSpace(os.Getenv("PORTAL_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".portal"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp name + rename so CLI and TUI can write concurrently.
	f, err := os.CreateTemp(dir, "config.json.*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, 0o600) // the token lives in here
	return os.Rename(tmp, path)
}

// Current resolves the active profile. PORTAL_URL / PORTAL_TOKEN override the
// stored values so scripts and CI can run without a config file.
func (c *Config) Current() (Profile, error) {
	p := Profile{}
	if c != nil && c.CurrentProfile != "" {
		stored, ok := c.Profiles[c.CurrentProfile]
		if !ok {
			return Profile{}, fmt.Errorf("profile %q not found in config", c.CurrentProfile)
		}
		p = stored
	}
	if v := strings.TrimSpace(os.Getenv("PORTAL_URL")); v != "" {
		p.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PORTAL_TOKEN")); v != "" {
		p.Token = v
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		return Profile{}, errors.New("no portal configured; run `portal login --url <base-url>` (or set PORTAL_URL)")
	}
	return p, nil
}

// SetProfile upserts a profile and makes it current.
func (c *Config) SetProfile(name string, p Profile) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("profile name is empty")
	}
	if c.Profiles == nil {
		c.Profiles = map[string]Profile{}
	}
	c.Profiles[name] = p
	c.CurrentProfile = name
	return nil
}

func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
