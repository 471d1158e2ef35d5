// internal/workers/valuation/estimate-housing-price/config.go
package estimatehousingprice

import (
	"time"

	"housing-workers/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	MaxRetries int
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	cfg := &Config{Timeout: 10 * time.Second, MaxRetries: wcfg.MaxRetries}
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}
