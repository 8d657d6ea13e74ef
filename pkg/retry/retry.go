package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Config controls the backoff between attempts.
type Config struct {
	MaxAttempts  int           // total attempts; 0 or less runs once
	InitialDelay time.Duration // wait after the first failure
	MaxDelay     time.Duration // cap on any single wait
	Multiplier   float64       // growth factor per attempt
	AddJitter    bool          // add up to a quarter of the delay at random
}

// DefaultConfig suits short waits such as lock acquisition
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     500 * time.Millisecond,
		Multiplier:   2.0,
		AddJitter:    true,
	}
}

// withDefaults fills zero fields and rejects contradictory ones
func (cfg Config) withDefaults() (Config, error) {
	if cfg.InitialDelay < 0 || cfg.MaxDelay < 0 || cfg.Multiplier < 0 {
		return cfg, errors.New("retry: negative delay or multiplier")
	}
	def := DefaultConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialDelay == 0 {
		cfg.InitialDelay = def.InitialDelay
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = def.MaxDelay
	}
	if cfg.Multiplier == 0 {
		cfg.Multiplier = def.Multiplier
	}
	if cfg.MaxDelay < cfg.InitialDelay {
		return cfg, fmt.Errorf("retry: max delay %v below initial delay %v", cfg.MaxDelay, cfg.InitialDelay)
	}
	return cfg, nil
}

// delay is the wait after the given failed attempt, counted from 1
func (cfg Config) delay(attempt int) time.Duration {
	d := float64(cfg.InitialDelay)
	for range attempt - 1 {
		d *= cfg.Multiplier
		if d >= float64(cfg.MaxDelay) {
			d = float64(cfg.MaxDelay)
			break
		}
	}
	wait := time.Duration(d)
	if cfg.AddJitter && wait >= 4 {
		wait += rand.N(wait / 4)
	}
	return wait
}

// Do runs fn until it succeeds, attempts run out, or ctx ends
func Do(ctx context.Context, cfg Config, fn func() error) error {
	return DoIf(ctx, cfg, func(error) bool { return true }, fn)
}

// DoIf is Do that stops at the first error retryable rejects and returns that error
// unwrapped.
func DoIf(ctx context.Context, cfg Config, retryable func(error) bool, fn func() error) error {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		err := fn()
		switch {
		case err == nil:
			return nil
		case !retryable(err):
			return err
		case attempt >= cfg.MaxAttempts:
			return fmt.Errorf("retry failed after %d attempts: %w", cfg.MaxAttempts, err)
		}

		timer := time.NewTimer(cfg.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry cancelled after attempt %d: %w", attempt, errors.Join(ctx.Err(), err))
		case <-timer.C:
		}
	}
}
