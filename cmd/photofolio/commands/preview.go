package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/photofolio/internal/preview"
)

// PreviewCmd serves the output directory and rebuilds on input changes.
type PreviewCmd struct {
	Addr    string `name:"addr" help:"Override preview.addr (host:port)"`
	Metrics bool   `name:"metrics" help:"Expose build metrics at /metrics"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if p.Addr != "" {
		cfg.Preview.Addr = p.Addr
	}
	if p.Metrics {
		cfg.Preview.Metrics = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return preview.Run(ctx, cfg)
}
