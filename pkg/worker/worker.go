package worker

import (
	"fmt"

	"github.com/screa/npub-miner/internal/crypto"
	"github.com/screa/npub-miner/pkg/types"
)

// Worker runs the generate/evaluate/report loop for one core
type Worker struct {
	id        int
	generator crypto.KeyGenerator
	evaluator *Evaluator
	state     *SharedState
	reporter  types.Reporter
}

// NewWorker creates a new worker instance. The generator must not be shared
// with any other worker.
func NewWorker(id int, gen crypto.KeyGenerator, target *types.Target, state *SharedState, reporter types.Reporter) *Worker {
	return &Worker{
		id:        id,
		generator: gen,
		evaluator: NewEvaluator(target, state.Best),
		state:     state,
		reporter:  reporter,
	}
}

// ID returns the worker index
func (w *Worker) ID() int {
	return w.id
}

// Step runs a single iteration. The shared iteration counter is incremented
// once the candidate has been generated and evaluated; a failed iteration is
// not counted.
func (w *Worker) Step() (bool, error) {
	key, err := w.generator.Generate()
	if err != nil {
		return false, fmt.Errorf("worker %d: %w", w.id, err)
	}

	res, err := w.evaluator.Evaluate(key)
	if err != nil {
		return false, fmt.Errorf("worker %d: %w", w.id, err)
	}
	w.state.AddIteration()

	if !res.Matched {
		return false, nil
	}

	report, err := w.buildReport(key, res)
	if err != nil {
		return true, fmt.Errorf("worker %d: %w", w.id, err)
	}
	w.reporter.Found(report)
	return true, nil
}

// Run loops until done is closed or an iteration fails. A failure ends this
// worker only; it is not retried.
func (w *Worker) Run(done <-chan struct{}) error {
	for {
		select {
		case <-done:
			return nil
		default:
		}

		if _, err := w.Step(); err != nil {
			return err
		}
	}
}

func (w *Worker) buildReport(key *crypto.CandidateKey, res types.MatchResult) (*types.Report, error) {
	npub, err := key.Npub()
	if err != nil {
		return nil, err
	}
	nsec, err := key.Nsec()
	if err != nil {
		return nil, err
	}

	return &types.Report{
		WorkerID:        w.id,
		SecretKeyHex:    key.SecretHex(),
		Nsec:            nsec,
		PublicKeyHex:    key.PublicHex,
		Npub:            npub,
		VanityLabel:     res.VanityLabel,
		LeadingZeroBits: res.LeadingZeroBits,
		Mnemonic:        key.Mnemonic,
		Stats:           w.state.Stats(),
	}, nil
}
