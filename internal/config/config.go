package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "LEAD_PROSPECTOR_CONFIG"
	llmAPIKeyEnv    = "LLM_API_KEY"
	llmModelEnv     = "LLM_MODEL"
	llmEndpointEnv  = "LLM_ENDPOINT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	Site        SiteConfig        `yaml:"site"`
	Prospecting ProspectingConfig `yaml:"prospecting"`
	LLM         LLMConfig         `yaml:"llm"`
	Storage     StorageConfig     `yaml:"storage"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SchedulerConfig defines when survey runs execute.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// SiteConfig describes the single listing site being crawled.
type SiteConfig struct {
	Host       string `yaml:"host"`
	BaseURL    string `yaml:"baseUrl"`
	ListingURL string `yaml:"listingUrl"`
}

// ProspectingConfig tunes the crawl-and-review behavior.
type ProspectingConfig struct {
	CutoffWindowDays       int `yaml:"cutoffWindowDays"`
	PolitenessDelaySeconds int `yaml:"politenessDelaySeconds"`
}

// Delay converts the politeness setting to a duration.
func (p ProspectingConfig) Delay() time.Duration {
	if p.PolitenessDelaySeconds <= 0 {
		return time.Second
	}
	return time.Duration(p.PolitenessDelaySeconds) * time.Second
}

// LLMConfig defines how to contact the completion API.
type LLMConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// StorageConfig names the collection files.
type StorageConfig struct {
	ProspectsFile string `yaml:"prospectsFile"`
	KeptFile      string `yaml:"keptFile"`
	CriteriaFile  string `yaml:"criteriaFile"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. A local .env file is honored first when it exists.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(llmAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(llmEndpointEnv); v != "" {
		c.LLM.Endpoint = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Site.Host != "" {
		base.Site.Host = override.Site.Host
	}
	if override.Site.BaseURL != "" {
		base.Site.BaseURL = override.Site.BaseURL
	}
	if override.Site.ListingURL != "" {
		base.Site.ListingURL = override.Site.ListingURL
	}

	if override.Prospecting.CutoffWindowDays > 0 {
		base.Prospecting.CutoffWindowDays = override.Prospecting.CutoffWindowDays
	}
	if override.Prospecting.PolitenessDelaySeconds > 0 {
		base.Prospecting.PolitenessDelaySeconds = override.Prospecting.PolitenessDelaySeconds
	}

	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.SystemPrompt != "" {
		base.LLM.SystemPrompt = override.LLM.SystemPrompt
	}

	if override.Storage.ProspectsFile != "" {
		base.Storage.ProspectsFile = override.Storage.ProspectsFile
	}
	if override.Storage.KeptFile != "" {
		base.Storage.KeptFile = override.Storage.KeptFile
	}
	if override.Storage.CriteriaFile != "" {
		base.Storage.CriteriaFile = override.Storage.CriteriaFile
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{CronExpression: "0 6 * * *", Timezone: defaultTimezone, location: tz},
		Site: SiteConfig{
			Host:       "chainstoreage.com",
			BaseURL:    "https://chainstoreage.com",
			ListingURL: "https://chainstoreage.com/news",
		},
		Prospecting: ProspectingConfig{
			CutoffWindowDays:       1,
			PolitenessDelaySeconds: 1,
		},
		LLM: LLMConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			APIKey:       "",
			SystemPrompt: "",
		},
		Storage: StorageConfig{
			ProspectsFile: "data/prospects-new.json",
			KeptFile:      "data/prospects-kept.json",
			CriteriaFile:  "data/criteria.json",
		},
	}
}
