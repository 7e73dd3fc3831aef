package cli

import (
	"context"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/dmitrymomot/cookiemonster/pkg/search"
)

// progress renders search rounds as a progress bar over every (group, secret)
// pair. Groups that finish early jump ahead.
type progress struct {
	bar     *progressbar.ProgressBar
	secrets int
}

func newProgress(w io.Writer, groups, secrets int, color bool) *progress {
	bar := progressbar.NewOptions(groups*secrets,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(color),
		progressbar.OptionSetDescription("[cyan]Testing secrets[reset]"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &progress{bar: bar, secrets: secrets}
}

func (p *progress) OnRound(_ context.Context, r search.Round) {
	p.bar.Describe("[cyan]" + r.Group + "[reset]")
	_ = p.bar.Set(r.GroupIndex*p.secrets + r.Index + 1)
}

func (p *progress) OnMatch(context.Context, search.MatchRecord) {}

func (p *progress) finish() {
	_ = p.bar.Finish()
}
