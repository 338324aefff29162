// Package report renders matches and throughput for a terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/screa/npub-miner/internal/logger"
	"github.com/screa/npub-miner/pkg/types"
)

const separator = "=============================================="

var (
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

// Console prints each match as a key block followed by a throughput line.
// Progress goes to the logger.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	logger *logger.Logger
}

// NewConsole creates a reporter writing matches to out
func NewConsole(out io.Writer, log *logger.Logger) *Console {
	return &Console{out: out, logger: log}
}

// Found implements types.Reporter
func (c *Console) Found(r *types.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeKeys(r)
	fmt.Fprintln(c.out, FormatStats(r.Stats))
}

// Progress implements types.Reporter
func (c *Console) Progress(s types.Stats) {
	c.logger.Printf("Progress: %d attempts, %d hashes/sec, %ds elapsed",
		s.Iterations, s.Rate, s.ElapsedSeconds)
}

// PrintKeys writes a key block without stats, used by mnemonic restore
func (c *Console) PrintKeys(r *types.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeKeys(r)
}

func (c *Console) writeKeys(r *types.Report) {
	fmt.Fprintln(c.out, separator)
	if r.Mnemonic != "" {
		fmt.Fprintf(c.out, "%s %s\n", bold.Sprint("Mnemonic:"), yellow.Sprint(r.Mnemonic))
	}
	if r.VanityLabel != "" {
		fmt.Fprintf(c.out, "%s %s\n", bold.Sprint("Vanity match:"), green.Sprint(r.VanityLabel))
	}
	fmt.Fprintf(c.out, "%s %d\n", bold.Sprint("Leading zero bits:"), r.LeadingZeroBits)
	fmt.Fprintf(c.out, "%s %s\n", bold.Sprint("Public key (hex):"), cyan.Sprint(r.PublicKeyHex))
	fmt.Fprintf(c.out, "%s %s\n", bold.Sprint("Public key (npub):"), green.Sprint(r.Npub))
	fmt.Fprintf(c.out, "%s %s\n", bold.Sprint("Private key (hex):"), r.SecretKeyHex)
	fmt.Fprintf(c.out, "%s %s\n", bold.Sprint("Private key (nsec):"), r.Nsec)
}

// FormatStats renders the throughput line printed after each match
func FormatStats(s types.Stats) string {
	digits := strconv.FormatInt(s.Iterations, 10)
	return fmt.Sprintf("%d iterations (about %cx10^%d hashes) in %d seconds. Avg rate %d hashes/second",
		s.Iterations, digits[0], len(digits)-1, s.ElapsedSeconds, s.Rate)
}
