package miner

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/screa/npub-miner/internal/config"
	"github.com/screa/npub-miner/internal/crypto"
	"github.com/screa/npub-miner/internal/logger"
	"github.com/screa/npub-miner/pkg/types"
	"github.com/screa/npub-miner/pkg/worker"
)

// GeneratorFactory builds the private key generator for one worker
type GeneratorFactory func() (crypto.KeyGenerator, error)

// Miner coordinates the worker pool for one run
type Miner struct {
	config   *config.Config
	logger   *logger.Logger
	reporter types.Reporter
	target   *types.Target
	state    *worker.SharedState
	newGen   GeneratorFactory

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// NewMiner validates the configuration and resolves the target. Nothing is
// started until Mine is called.
func NewMiner(cfg *config.Config, log *logger.Logger, reporter types.Reporter) (*Miner, error) {
	target, err := cfg.Target()
	if err != nil {
		return nil, err
	}

	return &Miner{
		config:   cfg,
		logger:   log,
		reporter: reporter,
		target:   target,
		state:    worker.NewSharedState(target.Threshold),
		newGen: func() (crypto.KeyGenerator, error) {
			return crypto.NewGenerator(cfg.WordCount, cfg.Passphrase)
		},
		done: make(chan struct{}),
	}, nil
}

// WithGenerators replaces the per-worker generator factory
func (m *Miner) WithGenerators(f GeneratorFactory) *Miner {
	m.newGen = f
	return m
}

// Target returns the resolved target
func (m *Miner) Target() *types.Target {
	return m.target
}

// State returns the run's shared state
func (m *Miner) State() *worker.SharedState {
	return m.state
}

// Mine starts the workers and blocks until all of them have exited, either
// because Stop was called or because they failed. It returns nil when stopped
// and the joined worker errors if every worker failed.
func (m *Miner) Mine() error {
	// build every generator first so a bad one aborts before any worker runs
	workers := make([]*worker.Worker, m.config.Workers)
	for i := range workers {
		gen, err := m.newGen()
		if err != nil {
			return fmt.Errorf("create generator for worker %d: %w", i, err)
		}
		workers[i] = worker.NewWorker(i, gen, m.target, m.state, m.reporter)
	}

	m.logger.Printf("Mining using %d cores...", len(workers))

	errs := make([]error, len(workers))
	for i, w := range workers {
		m.logger.Debugf("starting worker %d", i)
		m.wg.Add(1)
		go func(i int, w *worker.Worker) {
			defer m.wg.Done()
			if err := w.Run(m.done); err != nil {
				m.logger.Errorf("%v; worker stopped", err)
				errs[i] = err
			}
		}(i, w)
	}

	// Start periodic progress reporting if enabled
	var logTicker *time.Ticker
	var logDone chan struct{}
	if m.config.Verbose || m.config.Progress {
		interval := time.Duration(max(1, m.config.LogInterval)) * time.Second
		logTicker = time.NewTicker(interval)
		logDone = make(chan struct{})
		go m.periodicProgress(logTicker, logDone)
	}

	// Wait for completion
	m.wg.Wait()

	// Stop periodic logging
	if logTicker != nil {
		logTicker.Stop()
		close(logDone)
	}

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) == len(workers) {
		return errors.Join(failed...)
	}
	return nil
}

// Stop stops the mining process
func (m *Miner) Stop() {
	m.once.Do(func() { close(m.done) })
}

// periodicProgress forwards throughput at regular intervals
func (m *Miner) periodicProgress(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-ticker.C:
			m.reporter.Progress(m.state.Stats())
		case <-done:
			return
		}
	}
}
