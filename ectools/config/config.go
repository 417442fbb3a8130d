// Package config loads the application configuration from its defaults, an
// optional YAML file and the environment, the environment having the last word.
package config

import (
	"fmt"
	"os"

	"envirocar-tools/ectools/logger"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	ConfigFile string `long:"config" env:"ENVIROCAR_CONFIG" description:"Path to an optional YAML configuration file" yaml:"-"`

	LogFile    string `long:"log-file"   env:"ENVIROCAR_LOG_FILE"   description:"Current log file, rotated files share its name" default:"enviroCar.log" yaml:"log_file"`
	ReportDir  string `long:"report-dir" env:"ENVIROCAR_REPORT_DIR" description:"Directory report bundles are written to"       default:"reports" yaml:"report_dir"`
	APIBaseURL string `long:"api"        env:"ENVIROCAR_API"        description:"enviroCar API base url"                        default:"https://envirocar.org/api/stable" yaml:"api"`

	SMTP SMTP `group:"SMTP options" namespace:"smtp" env-namespace:"SMTP" yaml:"smtp"`

	Logger logger.Logger `group:"Logger options" yaml:"log"`
}

// SMTP holds the settings to send reports by email. Reports are written as
// .eml files when no host is set.
type SMTP struct {
	Host     string `long:"host"     env:"HOST"     description:"SMTP server host"        yaml:"host"`
	Port     int    `long:"port"     env:"PORT"     description:"SMTP server port"        default:"587" yaml:"port"`
	Username string `long:"username" env:"USERNAME" description:"SMTP username"           yaml:"username"`
	Password string `long:"password" env:"PASSWORD" description:"SMTP password"           yaml:"password"`
	From     string `long:"from"     env:"FROM"     description:"Sender of report emails" yaml:"from"`
}

// Load parses configuration from the environment and places it in a newly
// allocated Config struct.
func Load() (*Config, error) {
	cfg := &Config{}

	parser := flags.NewParser(cfg, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs([]string{}); err != nil {
		return nil, err
	}

	if cfg.ConfigFile != "" {
		if err := cfg.merge(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// merge applies the values of a YAML file to the settings not set in the environment
func (cfg *Config) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	override(&cfg.LogFile, file.LogFile, "ENVIROCAR_LOG_FILE")
	override(&cfg.ReportDir, file.ReportDir, "ENVIROCAR_REPORT_DIR")
	override(&cfg.APIBaseURL, file.APIBaseURL, "ENVIROCAR_API")
	override(&cfg.SMTP.Host, file.SMTP.Host, "SMTP_HOST")
	override(&cfg.SMTP.Username, file.SMTP.Username, "SMTP_USERNAME")
	override(&cfg.SMTP.Password, file.SMTP.Password, "SMTP_PASSWORD")
	override(&cfg.SMTP.From, file.SMTP.From, "SMTP_FROM")
	override(&cfg.Logger.Level, file.Logger.Level, "LOG_LEVEL")
	override(&cfg.Logger.Format, file.Logger.Format, "LOG_FORMAT")

	if _, set := os.LookupEnv("SMTP_PORT"); !set && file.SMTP.Port > 0 {
		cfg.SMTP.Port = file.SMTP.Port
	}

	return nil
}

func override(dst *string, value string, env string) {
	if _, set := os.LookupEnv(env); set || value == "" {
		return
	}
	*dst = value
}
