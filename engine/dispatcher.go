// Package engine fetches listing pages. A Dispatcher races the available
// engines with staged delays and remembers the winner per host.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/use-agent/leekduck/metrics"
)

// Dispatcher coordinates engines with staged escalation: engines[i] starts
// after delays[i] unless an earlier engine has already succeeded.
type Dispatcher struct {
	engines []Engine
	delays  []time.Duration
	memory  *HostMemory
}

// NewDispatcher creates a Dispatcher. Missing delays default to 0. memory
// may be nil.
func NewDispatcher(engines []Engine, delays []time.Duration, memory *HostMemory) *Dispatcher {
	d := make([]time.Duration, len(engines))
	copy(d, delays)
	return &Dispatcher{engines: engines, delays: d, memory: memory}
}

// Engines returns the engine names in escalation order.
func (d *Dispatcher) Engines() []string {
	names := make([]string, len(d.engines))
	for i, e := range d.engines {
		names[i] = e.Name()
	}
	return names
}

// Dispatch returns the first successful fetch. If every engine fails it
// returns the last error.
func (d *Dispatcher) Dispatch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if len(d.engines) == 0 {
		return nil, fmt.Errorf("dispatcher: no engines configured")
	}
	host := hostOf(req.URL)

	if d.memory != nil {
		if remembered := d.memory.Get(host); remembered != "" {
			for _, eng := range d.engines {
				if eng.Name() != remembered {
					continue
				}
				slog.Debug("host memory hit", "host", host, "engine", remembered)
				result, err := fetch(ctx, eng, req)
				if err == nil {
					return result, nil
				}
				slog.Info("remembered engine failed, running full race",
					"host", host, "engine", remembered, "error", err)
				d.memory.Delete(host)
				break
			}
		}
	}
	return d.race(ctx, req, host)
}

func (d *Dispatcher) race(ctx context.Context, req *FetchRequest, host string) (*FetchResult, error) {
	type raceResult struct {
		result *FetchResult
		err    error
	}

	raceCtx, raceCancel := context.WithCancel(ctx)
	defer raceCancel()

	results := make(chan raceResult, len(d.engines))
	var wg sync.WaitGroup

	for i, eng := range d.engines {
		wg.Add(1)
		go func(e Engine, delay time.Duration) {
			defer wg.Done()
			if delay > 0 {
				select {
				case <-raceCtx.Done():
					return
				case <-time.After(delay):
				}
			}
			select {
			case <-raceCtx.Done():
				return
			default:
			}

			slog.Debug("engine starting", "engine", e.Name(), "url", req.URL)
			result, err := fetch(raceCtx, e, req)
			results <- raceResult{result: result, err: err}
		}(eng, d.delays[i])
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var lastErr error
	for rr := range results {
		if rr.err != nil {
			lastErr = rr.err
			continue
		}
		raceCancel()
		slog.Info("engine won race", "engine", rr.result.EngineName, "url", req.URL)
		if d.memory != nil {
			d.memory.Set(host, rr.result.EngineName)
		}
		return rr.result, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("dispatcher: all engines failed for %s", req.URL)
	}
	return nil, lastErr
}

// fetch runs one engine and records its outcome.
func fetch(ctx context.Context, e Engine, req *FetchRequest) (*FetchResult, error) {
	start := time.Now()
	result, err := e.Fetch(ctx, req)
	metrics.FetchDuration.WithLabelValues(e.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchTotal.WithLabelValues(e.Name(), "failed").Inc()
		slog.Debug("engine failed", "engine", e.Name(), "url", req.URL, "error", err)
		return nil, err
	}
	metrics.FetchTotal.WithLabelValues(e.Name(), "success").Inc()
	return result, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
