package orchestration

import (
	"github.com/agbru/kendallbench/internal/config"
	"github.com/agbru/kendallbench/internal/kendall"
)

// GetCalculatorsToRun returns the sweep described by the configuration: the
// serial baseline first, then one parallel calculator per worker count in
// ascending order.
func GetCalculatorsToRun(cfg config.AppConfig) []kendall.Calculator {
	return kendall.Calculators(cfg.MinWorkers, cfg.MaxWorkers)
}
