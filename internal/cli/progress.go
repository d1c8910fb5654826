package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// renderProgress prints one status line per draw step and logs step timings
// at debug level.
type renderProgress struct {
	logger *log.Logger
}

func newRenderProgress(l *log.Logger) *renderProgress {
	return &renderProgress{logger: l}
}

func (p *renderProgress) OnStepStart(_ context.Context, step string) {
	printDetail("Drawing %s...", step)
}

func (p *renderProgress) OnStepComplete(_ context.Context, step string, d time.Duration, err error) {
	if err != nil {
		p.logger.Debug("Step failed", "step", step, "err", err)
		return
	}
	p.logger.Debug("Step done", "step", step, "took", d.Round(time.Microsecond))
}

// registryProgress reports registration outcomes.
type registryProgress struct{}

func (registryProgress) OnRegistered(_ context.Context, id string) {
	printSuccess("Added %s to callsigns.json", StyleHighlight.Render(strings.ToUpper(id)))
}

func (registryProgress) OnSkipped(_ context.Context, id string) {
	printWarning("Callsign %s already exists in callsigns.json, skipping registration", strings.ToUpper(id))
}
