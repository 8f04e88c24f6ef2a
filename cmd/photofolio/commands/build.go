package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/photofolio/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output        string `short:"o" help:"Override paths.output" type:"path"`
	BaseURL       string `name:"base-url" help:"Override site.base_url"`
	ReportDir     string `name:"report-dir" help:"Write build-report.json and build-report.txt to this directory" type:"path"`
	NoVerifyLinks bool   `name:"no-verify-links" help:"Skip relative link verification"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Paths.Output = b.Output
	}
	if b.BaseURL != "" {
		cfg.Site.BaseURL = b.BaseURL
	}
	if b.ReportDir != "" {
		cfg.Build.ReportPath = b.ReportDir
	}
	if b.NoVerifyLinks {
		off := false
		cfg.Build.VerifyLinks = &off
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	report, err := build.NewGenerator(cfg).Generate(context.Background())
	if report != nil {
		_, _ = fmt.Fprintln(g.out(), report.Summary())
	}
	return err
}
