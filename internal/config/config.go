/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads and persists the user-editable engine configuration.
// Configuration is a YAML file in the user scope; environment variables are
// read-only overrides at runtime. The render-service API token never touches
// disk; it lives in the OS keychain.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	keyring "github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// RenderConfig points at the AI render service whose image URLs get stamped.
type RenderConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
	// Token is not stored on disk; it lives in the OS keychain.
}

// ExportConfig controls where and how stamped files and PDFs are written.
type ExportConfig struct {
	OutputDir       string `yaml:"output_dir"`
	DownloadDelayMs int    `yaml:"download_delay_ms"`
}

// FontConfig names the overlay typefaces. Empty paths fall back to the
// embedded Go fonts at load time.
type FontConfig struct {
	LabelTTF  string `yaml:"label_ttf"`  // medium weight, upper-left overlay
	CreditTTF string `yaml:"credit_ttf"` // light weight, lower-right overlay
}

// BackendConfig is the optional hosted catalog backend (Postgres DSN and/or
// HTTP API). The engine works fully offline when both are empty.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	DSN     string `yaml:"dsn"`
}

type GeneralConfig struct {
	TelemetryOptIn bool `yaml:"telemetry_opt_in"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Render        RenderConfig  `yaml:"render"`
	Export        ExportConfig  `yaml:"export"`
	Fonts         FontConfig    `yaml:"fonts"`
	Backend       BackendConfig `yaml:"backend"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false},
		Render:        RenderConfig{BaseURL: "", TimeoutMs: 30000},
		Export:        ExportConfig{OutputDir: "", DownloadDelayMs: 500},
		Fonts:         FontConfig{},
		Backend:       BackendConfig{},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvRenderURL       = "WPR_RENDER_URL"
	EnvRenderTimeoutMs = "WPR_RENDER_TIMEOUT_MS"
	EnvOutputDir       = "WPR_OUTPUT_DIR"
	EnvDownloadDelayMs = "WPR_DOWNLOAD_DELAY_MS"
	EnvBackendURL      = "WPR_BACKEND_URL"
	EnvBackendDSN      = "WPR_BACKEND_DSN"
	EnvTelemetryOptIn  = "WPR_TELEMETRY_OPT_IN"
	EnvLabelTTF        = "WPR_LABEL_TTF"
	EnvCreditTTF       = "WPR_CREDIT_TTF"
	EnvLogLevel        = "WPR_LOG_LEVEL"
	EnvLogFormat       = "WPR_LOG_FORMAT"
	EnvLogFile         = "WPR_LOG_FILE"
)

// Service/keys for the OS keyring.
const (
	keyringService = "WrapForge"
	keyringToken   = "render_token"
)

// TokenStore abstracts the keyring so tests can stub it.
type TokenStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

var tokenStore TokenStore = osKeyring{}

type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "WrapForge")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "WrapForge")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "wrapproof")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. The render token is returned separately from the
// OS keychain and is never part of the struct.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	tok, _ := tokenStore.Get(keyringService, keyringToken)
	return cfg, tok, nil
}

// Save writes the user config YAML and persists the token into the OS
// keychain (if non-empty).
func Save(cfg AppConfig, token string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if token != "" {
		if err := tokenStore.Set(keyringService, keyringToken, token); err != nil {
			return err
		}
	}
	return nil
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if src.Render.BaseURL != "" {
		dst.Render.BaseURL = src.Render.BaseURL
	}
	if src.Render.TimeoutMs != 0 {
		dst.Render.TimeoutMs = src.Render.TimeoutMs
	}
	if src.Export.OutputDir != "" {
		dst.Export.OutputDir = src.Export.OutputDir
	}
	if src.Export.DownloadDelayMs != 0 {
		dst.Export.DownloadDelayMs = src.Export.DownloadDelayMs
	}
	if src.Fonts.LabelTTF != "" {
		dst.Fonts.LabelTTF = src.Fonts.LabelTTF
	}
	if src.Fonts.CreditTTF != "" {
		dst.Fonts.CreditTTF = src.Fonts.CreditTTF
	}
	if src.Backend.BaseURL != "" {
		dst.Backend.BaseURL = src.Backend.BaseURL
	}
	if src.Backend.DSN != "" {
		dst.Backend.DSN = src.Backend.DSN
	}
	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvRenderURL)); v != "" {
		cfg.Render.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Render.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.Export.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDownloadDelayMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Export.DownloadDelayMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackendURL)); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackendDSN)); v != "" {
		cfg.Backend.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLabelTTF)); v != "" {
		cfg.Fonts.LabelTTF = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCreditTTF)); v != "" {
		cfg.Fonts.CreditTTF = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// RenderTimeout returns the render HTTP timeout as a duration.
func (r RenderConfig) RenderTimeout() time.Duration {
	ms := r.TimeoutMs
	if ms <= 0 {
		ms = Defaults().Render.TimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}

// DownloadDelay returns the pacing delay between sequential downloads.
func (e ExportConfig) DownloadDelay() time.Duration {
	ms := e.DownloadDelayMs
	if ms <= 0 {
		ms = Defaults().Export.DownloadDelayMs
	}
	return time.Duration(ms) * time.Millisecond
}
