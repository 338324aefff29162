package report

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/screa/npub-miner/pkg/types"
)

// Progress renders throughput as a live spinner bar and prints matches
// through an underlying Console
type Progress struct {
	mu      sync.Mutex
	bar     *progressbar.ProgressBar
	console *Console
}

// NewProgress creates a progress reporter drawing on w
func NewProgress(w io.Writer, console *Console) *Progress {
	bar := progressbar.NewOptions64(-1, // unbounded search
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Mining keys"),
		progressbar.OptionSetWidth(15),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("keys"),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	return &Progress{bar: bar, console: console}
}

// Found implements types.Reporter
func (p *Progress) Found(r *types.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Clear()
	p.console.Found(r)
	_ = p.bar.Set64(r.Stats.Iterations)
}

// Progress implements types.Reporter
func (p *Progress) Progress(s types.Stats) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Set64(s.Iterations)
}

// Finish clears the bar from the terminal
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Clear()
}
