package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/partnermap/internal/store"
	"github.com/agentstation/partnermap/pkg/constants"
)

// EnvPrefix namespaces the environment variables read by the CLI.
const EnvPrefix = "PARTNERMAP"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Listings
	PartnersURL   string
	SolutionsURL  string
	PartnersSort  string
	SolutionsSort string
	PageSize      int
	Timeout       time.Duration
	UserAgent     string
	Referer       string

	// Reconciliation and output
	Mode         string
	Output       string
	OutputFormat string

	// Object storage
	S3       store.ObjectConfig
	S3Bucket string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. PARTNERMAP_* environment variables
//  3. .env files
//  4. Config file (configFile, or ~/.partnermap.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".partnermap")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit one must load.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && configFile != "" {
			return nil, err
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",

		ConfigFile: v.ConfigFileUsed(),

		PartnersURL:   v.GetString("partners_url"),
		SolutionsURL:  v.GetString("solutions_url"),
		PartnersSort:  v.GetString("partners_sort"),
		SolutionsSort: v.GetString("solutions_sort"),
		PageSize:      v.GetInt("page_size"),
		Timeout:       v.GetDuration("timeout"),
		UserAgent:     v.GetString("user_agent"),
		Referer:       v.GetString("referer"),

		Mode:         v.GetString("mode"),
		Output:       v.GetString("output"),
		OutputFormat: v.GetString("format"),

		S3: store.ObjectConfig{
			Endpoint:  v.GetString("s3_endpoint"),
			AccessKey: v.GetString("s3_access_key"),
			SecretKey: v.GetString("s3_secret_key"),
			Region:    v.GetString("s3_region"),
			UseSSL:    v.GetBool("s3_use_ssl"),
		},
		S3Bucket: v.GetString("s3_bucket"),

		// Logging keeps the unprefixed variables shared with pkg/logging.
		// LogLevel stays empty unless set so -v and -q can apply.
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("partners_url", constants.DefaultPartnersURL)
	v.SetDefault("solutions_url", constants.DefaultSolutionsURL)
	v.SetDefault("partners_sort", constants.DefaultPartnersSort)
	v.SetDefault("solutions_sort", constants.DefaultSolutionsSort)
	v.SetDefault("page_size", constants.DefaultPageSize)
	v.SetDefault("timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("mode", "id")
	v.SetDefault("s3_region", constants.DefaultObjectRegion)
	v.SetDefault("s3_use_ssl", true)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already present in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
