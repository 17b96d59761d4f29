package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doccat-labs/doccat/internal/branding"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
	envFile  = ".env"
)

// Keys understood by the CLI.
const (
	KeyCatalogs    = "catalogs"
	KeyCacheSize   = "cache_size"
	KeyS3Endpoint  = "s3.endpoint"
	KeyS3Region    = "s3.region"
	KeyS3AccessKey = "s3.access_key"
	KeyS3SecretKey = "s3.secret_key"
	KeyS3UseSSL    = "s3.use_ssl"
)

// Keys lists every key in help order.
var Keys = []string{
	KeyCatalogs,
	KeyCacheSize,
	KeyS3Endpoint,
	KeyS3Region,
	KeyS3AccessKey,
	KeyS3SecretKey,
	KeyS3UseSSL,
}

// envKeyReplacer maps config keys to environment variable suffixes.
var envKeyReplacer = strings.NewReplacer(".", "_")

// EnvName returns the environment variable that overrides key, e.g.
// "s3.endpoint" is read from DOCCAT_S3_ENDPOINT.
func EnvName(key string) string {
	return branding.EnvVar(envKeyReplacer.Replace(key))
}

// S3 holds the settings for s3:// catalog sources.
type S3 struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Dir returns the path to the config directory (~/.doccat/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.doccat/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper from .env files, the config file and the environment.
// Variables already set in the environment win over .env entries.
func Load() {
	// Ignore errors: .env files are optional.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(filepath.Join(Dir(), envFile))

	viper.Reset()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	viper.SetDefault(KeyCatalogs, []string{branding.DefaultCatalog()})
	viper.SetDefault(KeyCacheSize, 16)
	viper.SetDefault(KeyS3Region, "us-east-1")
	viper.SetDefault(KeyS3UseSSL, true)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Catalogs returns the configured catalog sources.
func Catalogs() []string {
	var out []string
	for _, s := range viper.GetStringSlice(KeyCatalogs) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CacheSize returns the number of parsed catalogs to keep in memory.
func CacheSize() int {
	return viper.GetInt(KeyCacheSize)
}

// S3Settings returns the settings for s3:// sources.
func S3Settings() S3 {
	return S3{
		Endpoint:  viper.GetString(KeyS3Endpoint),
		Region:    viper.GetString(KeyS3Region),
		AccessKey: viper.GetString(KeyS3AccessKey),
		SecretKey: viper.GetString(KeyS3SecretKey),
		UseSSL:    viper.GetBool(KeyS3UseSSL),
	}
}

// Set writes a config key-value pair and saves the config file. The catalogs
// key takes a comma-separated list.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	if key == KeyCatalogs {
		viper.Set(key, splitList(value))
	} else {
		viper.Set(key, value)
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
