package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xxxsen/common/logger"
	"gopkg.in/yaml.v3"

	"github.com/xxxsen/jotty/internal/kv"
)

const (
	defaultListen      = "127.0.0.1:5174"
	defaultQuotaBytes  = 5 * 1024 * 1024
	defaultMaxNotes    = 2000
	defaultNoteBytes   = 1024 * 1024
	defaultMaxImageMB  = 5
	defaultPendingTTL  = 1800
	defaultBackupKeep  = 7
	defaultBackupCron  = "0 3 * * *"
	defaultStorageType = "local"
)

type Config struct {
	Listen        string           `json:"listen"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Storage       kv.Config        `json:"storage"`
	QuotaBytes    int64            `json:"quota_bytes"`
	Import        ImportConfig     `json:"import"`
	Backup        BackupConfig     `json:"backup"`
	Watch         bool             `json:"watch"`
	CORSAllowlist []string         `json:"cors_allowlist"`
}

type ImportConfig struct {
	MaxNotes          int     `json:"max_notes"`
	MaxNoteBytes      int     `json:"max_note_bytes"`
	MaxImageMB        float64 `json:"max_image_mb"`
	PendingTTLSeconds int     `json:"pending_ttl_seconds"`
}

type BackupConfig struct {
	Enabled   bool            `json:"enabled"`
	Cron      string          `json:"cron"`
	Keep      int             `json:"keep"`
	FileStore FileStoreConfig `json:"file_store"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Load reads a JSON config, or YAML when the file ends in .yaml/.yml.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default is the config used when no file is given: local storage under
// dataDir.
func Default(dataDir string) *Config {
	cfg := &Config{
		Storage: kv.Config{Type: defaultStorageType, Data: map[string]interface{}{"dir": dataDir}},
	}
	_ = cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() error {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.LogConfig.Level == "" {
		c.LogConfig.Level = "info"
	}
	if c.Storage.Type == "" {
		c.Storage.Type = defaultStorageType
	}
	if c.QuotaBytes == 0 {
		c.QuotaBytes = defaultQuotaBytes
	}
	if c.QuotaBytes < 0 {
		c.QuotaBytes = 0
	}
	if c.Import.MaxNotes <= 0 {
		c.Import.MaxNotes = defaultMaxNotes
	}
	if c.Import.MaxNoteBytes <= 0 {
		c.Import.MaxNoteBytes = defaultNoteBytes
	}
	if c.Import.MaxImageMB <= 0 {
		c.Import.MaxImageMB = defaultMaxImageMB
	}
	if c.Import.PendingTTLSeconds <= 0 {
		c.Import.PendingTTLSeconds = defaultPendingTTL
	}
	if c.Backup.Enabled {
		if c.Backup.Cron == "" {
			c.Backup.Cron = defaultBackupCron
		}
		if c.Backup.Keep <= 0 {
			c.Backup.Keep = defaultBackupKeep
		}
		if c.Backup.FileStore.Type == "" {
			return fmt.Errorf("backup.file_store.type is required when backup is enabled")
		}
	}
	return nil
}

// yamlToJSON lets YAML files share the json struct tags.
func yamlToJSON(raw []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return json.Marshal(doc)
}
