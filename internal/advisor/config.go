package advisor

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neonsums/internal/config"
)

// FromConfig builds the advisor used by the frontends. A disabled advisor
// still answers, always with the fallback values.
func FromConfig(cfg config.AdvisorConfig, logger *log.Logger) *Fallback {
	if !cfg.Enabled {
		return NewFallback(nil, cfg.Timeout, logger)
	}
	return NewFallback(NewHeuristic(cfg.Depth), cfg.Timeout, logger)
}
