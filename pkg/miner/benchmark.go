package miner

import (
	"errors"
	"math"
	"time"

	"github.com/screa/npub-miner/internal/crypto"
)

// Estimate is the outcome of a startup benchmark
type Estimate struct {
	Samples     int
	Elapsed     time.Duration
	PerCoreRate float64 // keys per second on one core
	TotalRate   float64 // PerCoreRate scaled to all cores
	Expected    time.Duration
	BestBits    int // most leading zero bits seen in the sample
}

// Benchmark times samples key generations on gen and estimates how long
// cores workers need to find a key of the given pow, taken as 2^pow attempts.
func Benchmark(gen crypto.KeyGenerator, samples, cores int, pow uint8) (Estimate, error) {
	if samples <= 0 || cores <= 0 {
		return Estimate{}, errors.New("benchmark needs positive samples and cores")
	}

	best := 0
	start := time.Now()
	for i := 0; i < samples; i++ {
		key, err := gen.Generate()
		if err != nil {
			return Estimate{}, err
		}
		best = max(best, crypto.LeadingZeroBits(key.XOnly[:]))
	}
	elapsed := time.Since(start)

	est := Estimate{Samples: samples, Elapsed: elapsed, BestBits: best}
	secs := math.Max(elapsed.Seconds(), 1e-9)
	est.PerCoreRate = float64(samples) / secs
	est.TotalRate = est.PerCoreRate * float64(cores)

	attempts := math.Pow(2, float64(pow))
	expected := attempts / est.TotalRate
	if expected > float64(math.MaxInt64)/float64(time.Second) {
		est.Expected = time.Duration(math.MaxInt64)
	} else {
		est.Expected = time.Duration(expected * float64(time.Second))
	}
	return est, nil
}
