// Command dnsbench measures query latency against one nameserver by running
// many one-shot lookups concurrently.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jroosing/dnsstub/internal/logging"
	"github.com/jroosing/dnsstub/internal/resolver"
)

func main() {
	var (
		server      = flag.String("server", "127.0.0.1:53", "Nameserver HOST:PORT")
		name        = flag.String("name", "example.com", "Query name")
		concurrency = flag.Int("concurrency", 200, "Number of concurrent workers")
		requests    = flag.Int("requests", 20000, "Total number of requests")
		timeout     = flag.Duration("timeout", 2*time.Second, "Per-request timeout")
		recvSize    = flag.Int("recv-size", resolver.DefaultRecvSize, "UDP receive buffer size")
		noVerify    = flag.Bool("no-verify", false, "Accept replies without checking ID and question")
	)
	flag.Parse()

	logger := logging.Configure(logging.Config{Level: "WARN"})
	r, err := resolver.New(resolver.Options{
		Nameserver:     *server,
		Timeout:        *timeout,
		RecvSize:       *recvSize,
		VerifyResponse: !*noVerify,
		Logger:         logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsbench: %v\n", err)
		os.Exit(1)
	}

	conc := max(*concurrency, 1)
	total := max(*requests, 1)
	per := total / conc
	rem := total % conc

	lat := make([]float64, 0, total)
	var latMu sync.Mutex
	var failures atomic.Int64

	ctx := context.Background()
	t0 := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < conc; i++ {
		n := per
		if i < rem {
			n++
		}
		if n <= 0 {
			continue
		}
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			for j := 0; j < num; j++ {
				start := time.Now()
				if _, err := r.Query(ctx, *name); err != nil {
					failures.Add(1)
					continue
				}
				ms := float64(time.Since(start).Microseconds()) / 1000.0
				latMu.Lock()
				lat = append(lat, ms)
				latMu.Unlock()
			}
		}(n)
	}
	wg.Wait()
	elapsed := time.Since(t0).Seconds()

	if len(lat) == 0 {
		fmt.Printf("no successful requests (%d failed)\n", failures.Load())
		os.Exit(1)
	}
	sort.Float64s(lat)
	qps := float64(len(lat)) / elapsed

	fmt.Printf("server=%s name=%q concurrency=%d ok=%d failed=%d\n", r.Nameserver(), *name, conc, len(lat), failures.Load())
	fmt.Printf("elapsed_s=%.3f qps=%.1f\n", elapsed, qps)
	fmt.Printf("latency_ms p50=%.3f p95=%.3f p99=%.3f min=%.3f max=%.3f\n",
		percentile(lat, 50), percentile(lat, 95), percentile(lat, 99), lat[0], lat[len(lat)-1])
}

// percentile returns the p-th percentile of an ascending slice.
func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted))*float64(p)/100.0) - 1
	return sorted[min(max(idx, 0), len(sorted)-1)]
}
