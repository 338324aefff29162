package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/screa/npub-miner/internal/config"
	"github.com/screa/npub-miner/internal/crypto"
	logpkg "github.com/screa/npub-miner/internal/logger"
	"github.com/screa/npub-miner/internal/report"
	minerpkg "github.com/screa/npub-miner/pkg/miner"
	"github.com/screa/npub-miner/pkg/types"
	"github.com/spf13/cobra"
)

const benchmarkSamples = 2000

var (
	cfg    = config.NewConfig()
	logger *logpkg.Logger
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "npub-miner",
		Short: "Nostr public key miner",
		Long: `Generate Nostr key pairs until the public key has a given number of
leading zero bits, a hex prefix, or an npub prefix and/or suffix.
Runs until a key is found and the process is interrupted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMiner,
	}

	rootCmd.Flags().IntVarP(&cfg.Difficulty, "difficulty", "d", 0, "Minimum leading zero bits (default 10 when no other target is set)")
	rootCmd.Flags().StringVarP(&cfg.HexPrefix, "vanity", "v", "", "Hex prefix the public key must start with")
	rootCmd.Flags().StringSliceVarP(&cfg.NpubPrefixes, "vanity-n-prefix", "n", nil, "Comma-separated npub prefixes (after npub1)")
	rootCmd.Flags().StringSliceVarP(&cfg.NpubSuffixes, "vanity-n-suffix", "s", nil, "Comma-separated npub suffixes")
	rootCmd.Flags().IntVarP(&cfg.Workers, "cores", "c", runtime.NumCPU(), "Number of worker goroutines")
	rootCmd.Flags().IntVarP(&cfg.WordCount, "word-count", "w", 0, "Derive keys from fresh mnemonics of this many words (0 disables)")
	rootCmd.Flags().StringVarP(&cfg.Passphrase, "mnemonic-passphrase", "p", "", "BIP-39 passphrase for mnemonic derivation")
	rootCmd.Flags().StringVarP(&cfg.Mnemonic, "mnemonic", "m", "", "Print the keys of an existing mnemonic and exit")
	rootCmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "Verbose output with periodic progress")
	rootCmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for progress tracking (default: stdout)")
	rootCmd.Flags().IntVarP(&cfg.LogInterval, "log-interval", "i", 5, "Progress interval in seconds")
	rootCmd.Flags().BoolVar(&cfg.Progress, "progress", false, "Show a live progress bar")
	rootCmd.Flags().BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVar(&cfg.NoBenchmark, "no-benchmark", false, "Skip the startup benchmark")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMiner(cmd *cobra.Command, args []string) error {
	if cfg.NoColor {
		color.NoColor = true
	}

	if err := setupLogging(); err != nil {
		return err
	}
	console := report.NewConsole(os.Stdout, logger)

	if cfg.Mnemonic != "" {
		return restoreMnemonic(console)
	}

	var reporter types.Reporter = console
	var bar *report.Progress
	if cfg.Progress {
		bar = report.NewProgress(os.Stderr, console)
		reporter = bar
	}

	miner, err := minerpkg.NewMiner(cfg, logger, reporter)
	if err != nil {
		return err
	}
	target := miner.Target()
	logger.Printf("Started mining process for %s", target.Describe())
	if cfg.UsesMnemonic() {
		logger.Printf("Deriving keys from %d-word mnemonics", cfg.WordCount)
	}

	runBenchmark(target)

	// Set up signal handling for Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start mining in a goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- miner.Mine()
	}()

	select {
	case err = <-errChan:
		// workers exited on their own
	case <-sigChan:
		logger.Println("Received interrupt signal. Stopping workers...")
		miner.Stop()
		err = <-errChan
	}
	if bar != nil {
		bar.Finish()
	}
	logger.Println(report.FormatStats(miner.State().Stats()))
	return err
}

func runBenchmark(target *types.Target) {
	if cfg.NoBenchmark {
		return
	}
	if target.IsNpub() {
		logger.Println("Benchmarking of cores disabled for vanity npub keys.")
		return
	}

	gen, err := crypto.NewGenerator(cfg.WordCount, cfg.Passphrase)
	if err != nil {
		logger.Errorf("benchmark: %v", err)
		return
	}
	est, err := minerpkg.Benchmark(gen, benchmarkSamples, cfg.Workers, target.EstimatedPow)
	if err != nil {
		logger.Errorf("benchmark: %v", err)
		return
	}
	logger.Printf("Benchmark: %.0f keys/sec per core, %.0f keys/sec on %d cores",
		est.PerCoreRate, est.TotalRate, cfg.Workers)
	logger.Debugf("Benchmark: best sample had %d leading zero bits", est.BestBits)
	logger.Printf("Expected time to reach %d bits of pow: %v", target.EstimatedPow, est.Expected.Round(time.Second))
}

func restoreMnemonic(console *report.Console) error {
	key, err := crypto.KeysFromMnemonic(cfg.Mnemonic, cfg.Passphrase)
	if err != nil {
		return err
	}
	npub, err := key.Npub()
	if err != nil {
		return err
	}
	nsec, err := key.Nsec()
	if err != nil {
		return err
	}
	console.PrintKeys(&types.Report{
		SecretKeyHex:    key.SecretHex(),
		Nsec:            nsec,
		PublicKeyHex:    key.PublicHex,
		Npub:            npub,
		LeadingZeroBits: crypto.LeadingZeroBits(key.XOnly[:]),
		Mnemonic:        key.Mnemonic,
	})
	return nil
}

func setupLogging() error {
	if cfg.LogFile != "" {
		// Log to file
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logger = logpkg.NewWriter(file)
		logger.SetFlags(logpkg.LstdFlags | logpkg.Lmicroseconds)
	} else {
		// Log to stdout
		logger = logpkg.New()
		logger.SetFlags(logpkg.LstdFlags)
	}
	logger.SetVerbose(cfg.Verbose)
	return nil
}
