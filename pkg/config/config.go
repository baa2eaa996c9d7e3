package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/apidash/config"
	ConfigFileName    = "apidash.yml"
)

// DashConfig holds all apidash configuration settings
type DashConfig struct {
	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies"`

	// ResourcePageSize is the number of rows a list request returns at most
	ResourcePageSize int `yaml:"resource_page_size"`

	// UserTokenTTL is the TTL for user tokens in seconds
	UserTokenTTL int `yaml:"user_token_ttl"`

	// ProbeTimeout is the endpoint probe timeout in seconds
	ProbeTimeout int `yaml:"probe_timeout"`

	// ProbeBaseURL is prepended to an endpoint's path when probing it.
	// When empty, the endpoint path must be an absolute URL.
	ProbeBaseURL string `yaml:"probe_base_url"`

	// AuditEnabled enables audit logging of mutations
	AuditEnabled bool `yaml:"audit_enabled"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *DashConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *DashConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *DashConfig {
	return &DashConfig{
		TrustedProxies:   []string{},
		ResourcePageSize: 100,
		UserTokenTTL:     3600,
		ProbeTimeout:     5,
		ProbeBaseURL:     "",
		AuditEnabled:     true,
		sources:          make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*DashConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("APIDASH_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileValues
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&file)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"trusted_proxies", "resource_page_size", "user_token_ttl",
		"probe_timeout", "probe_base_url", "audit_enabled",
	}
}

// fileValues mirrors the config file. audit_enabled is a pointer so an
// explicit false in the file is distinguishable from an absent key.
type fileValues struct {
	TrustedProxies   []string `yaml:"trusted_proxies"`
	ResourcePageSize int      `yaml:"resource_page_size"`
	UserTokenTTL     int      `yaml:"user_token_ttl"`
	ProbeTimeout     int      `yaml:"probe_timeout"`
	ProbeBaseURL     string   `yaml:"probe_base_url"`
	AuditEnabled     *bool    `yaml:"audit_enabled"`
}

func (c *DashConfig) applyFileConfig(file *fileValues) {
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.ResourcePageSize != 0 {
		c.ResourcePageSize = file.ResourcePageSize
		c.sources["resource_page_size"] = "file"
	}
	if file.UserTokenTTL != 0 {
		c.UserTokenTTL = file.UserTokenTTL
		c.sources["user_token_ttl"] = "file"
	}
	if file.ProbeTimeout != 0 {
		c.ProbeTimeout = file.ProbeTimeout
		c.sources["probe_timeout"] = "file"
	}
	if file.ProbeBaseURL != "" {
		c.ProbeBaseURL = file.ProbeBaseURL
		c.sources["probe_base_url"] = "file"
	}
	if file.AuditEnabled != nil {
		c.AuditEnabled = *file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
}

func (c *DashConfig) applyEnvConfig() {
	if val := os.Getenv("APIDASH_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("APIDASH_RESOURCE_PAGE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ResourcePageSize = i
			c.sources["resource_page_size"] = "environment"
		}
	}
	if val := os.Getenv("APIDASH_USER_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.UserTokenTTL = i
			c.sources["user_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("APIDASH_PROBE_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ProbeTimeout = i
			c.sources["probe_timeout"] = "environment"
		}
	}
	if val := os.Getenv("APIDASH_PROBE_BASE_URL"); val != "" {
		c.ProbeBaseURL = val
		c.sources["probe_base_url"] = "environment"
	}
	if val := os.Getenv("APIDASH_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *DashConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *DashConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the user token TTL as a duration
func (c *DashConfig) TokenTTL() time.Duration {
	return time.Duration(c.UserTokenTTL) * time.Second
}

// ProbeTimeoutDuration returns the endpoint probe timeout as a duration
func (c *DashConfig) ProbeTimeoutDuration() time.Duration {
	return time.Duration(c.ProbeTimeout) * time.Second
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *DashConfig) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *DashConfig) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.ResourcePageSize <= 0 {
		return fmt.Errorf("resource_page_size must be positive, got %d", c.ResourcePageSize)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be positive, got %d", c.ProbeTimeout)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *DashConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "resource_page_size", Value: strconv.Itoa(c.ResourcePageSize), Source: c.Source("resource_page_size")},
		{Name: "user_token_ttl", Value: strconv.Itoa(c.UserTokenTTL), Source: c.Source("user_token_ttl")},
		{Name: "probe_timeout", Value: strconv.Itoa(c.ProbeTimeout), Source: c.Source("probe_timeout")},
		{Name: "probe_base_url", Value: c.ProbeBaseURL, Source: c.Source("probe_base_url")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
	}
}

// FormatText returns a text representation of the configuration
func (c *DashConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *DashConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
