package getter

import (
	"log/slog"
	"time"

	getter "github.com/hashicorp/go-getter/v2"
)

// NewWithReadTimeout builds a Getter whose HTTP transfers carry readTimeout.
func NewWithReadTimeout(logger *slog.Logger, readTimeout time.Duration) *Getter {
	return newGetter(logger, &getter.HttpGetter{
		XTerraformGetDisabled: true,
		ReadTimeout:           readTimeout,
	})
}

// ReadTimeouts returns the read timeout of every HTTP getter g uses.
func ReadTimeouts(g *Getter) []time.Duration {
	var out []time.Duration

	for _, gg := range g.client.Getters {
		if hg, ok := gg.(*getter.HttpGetter); ok {
			out = append(out, hg.ReadTimeout)
		}
	}

	return out
}
