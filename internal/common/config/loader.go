// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"housing-workers/internal/estimator"
)

const defaultWorkerMaxRetries = 3

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml over it and
// applies environment overrides. A missing base file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg, v)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars replaces ${VAR} placeholders in string values. Unset variables leave
// the placeholder untouched.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

func overrideEmptyConfig(cfg *Config) {
	if cfg.Camunda.BrokerAddress == "" {
		if val := os.Getenv("ZEEBE_ADDRESS"); val != "" {
			cfg.Camunda.BrokerAddress = val
		}
	}
	if cfg.Model.ArtifactURI == "" {
		if val := os.Getenv("MODEL_ARTIFACT_URI"); val != "" {
			cfg.Model.ArtifactURI = val
		}
	}
	if cfg.Model.AccessKey == "" {
		if val := os.Getenv("MODEL_STORE_ACCESS_KEY"); val != "" {
			cfg.Model.AccessKey = val
		}
	}
	if cfg.Model.SecretKey == "" {
		if val := os.Getenv("MODEL_STORE_SECRET_KEY"); val != "" {
			cfg.Model.SecretKey = val
		}
	}
}

// applyDefaults fills zero values. A worker's max_retries keeps an explicit 0.
func applyDefaults(cfg *Config, v *viper.Viper) {
	if cfg.App.Name == "" {
		cfg.App.Name = "housing-workers"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}
	if cfg.Camunda.ConnectRetries == 0 {
		cfg.Camunda.ConnectRetries = 10
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	if cfg.Estimator.DefaultStrategy == "" {
		cfg.Estimator.DefaultStrategy = string(estimator.Heuristic)
	}
	if len(cfg.Estimator.Strategies) == 0 {
		cfg.Estimator.Strategies = []string{string(estimator.Heuristic), string(estimator.Standardized)}
	}

	if cfg.Model.FetchTimeout == 0 {
		cfg.Model.FetchTimeout = 30000
	}
	if cfg.Model.FetchRetries == 0 {
		cfg.Model.FetchRetries = 3
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = cfg.App.Name
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = 1
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = cfg.Camunda.MaxJobsActive
		}
		if worker.Timeout == 0 {
			worker.Timeout = cfg.Camunda.Timeout
		}
		if !v.IsSet("workers." + key + ".max_retries") {
			worker.MaxRetries = defaultWorkerMaxRetries
		}
		cfg.Workers[key] = worker
	}
}

func validateConfig(cfg *Config) error {
	enabled := make(map[estimator.StrategyName]bool, len(cfg.Estimator.Strategies))
	for _, s := range cfg.Estimator.Strategies {
		name, err := estimator.ParseStrategyName(s)
		if err != nil {
			return fmt.Errorf("estimator.strategies: %w", err)
		}
		enabled[name] = true
	}

	def, err := estimator.ParseStrategyName(cfg.Estimator.DefaultStrategy)
	if err != nil {
		return fmt.Errorf("estimator.default_strategy: %w", err)
	}
	if !enabled[def] {
		return fmt.Errorf("estimator.default_strategy %q is not listed in estimator.strategies", def)
	}

	if enabled[estimator.Regression] && cfg.Model.ArtifactURI == "" {
		return fmt.Errorf("model.artifact_uri is required when the regression strategy is enabled")
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be between 0 and 1")
	}

	for name, w := range cfg.Workers {
		if w.MaxJobsActive < 0 || w.Timeout < 0 || w.MaxRetries < 0 {
			return fmt.Errorf("workers.%s: max_jobs_active, timeout and max_retries must not be negative", name)
		}
	}

	return nil
}

func (c *Config) EnabledStrategies() []estimator.StrategyName {
	out := make([]estimator.StrategyName, 0, len(c.Estimator.Strategies))
	for _, s := range c.Estimator.Strategies {
		if name, err := estimator.ParseStrategyName(s); err == nil {
			out = append(out, name)
		}
	}
	return out
}

func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}

	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: cfg.Camunda.MaxJobsActive,
		Timeout:       cfg.Camunda.Timeout,
		MaxRetries:    defaultWorkerMaxRetries,
	}
}
