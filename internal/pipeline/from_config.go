package pipeline

import (
	"fmt"

	"github.com/packetc-lang/packetc/internal/config"
	"github.com/packetc-lang/packetc/internal/defuse"
	"github.com/packetc-lang/packetc/internal/resolver"
)

// FromConfig builds a scheduler honoring the project configuration.
// Resolution and definite-assignment checking always run; only
// optimization passes may be disabled.
func FromConfig(cfg *config.Config) (*Scheduler, error) {
	known := make(map[string]bool)
	for _, name := range PassNames() {
		known[name] = true
	}
	for _, name := range cfg.DisabledPasses {
		if !known[name] {
			return nil, fmt.Errorf("unknown pass %q in disabled_passes", name)
		}
		if name == resolver.PassName || name == defuse.PassName {
			return nil, fmt.Errorf("pass %q cannot be disabled", name)
		}
	}

	s := NewDefault()
	if cfg.MaxRounds > 0 {
		s.MaxRounds = cfg.MaxRounds
	}
	if len(cfg.DisabledPasses) > 0 {
		var kept []Pass
		for _, p := range s.Passes {
			if !cfg.Disabled(p.Name()) {
				kept = append(kept, p)
			}
		}
		s.Passes = kept
	}
	return s, nil
}
