// Command channel benchmarks the blocking handoff implementations.
//
// Usage:
//
//	go run ./cmd/channel -n 10000000 --size 1024
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/randomizedcoder/trafficlight/internal/queue"
)

var opts struct {
	Iterations int `short:"n" default:"10000000" description:"number of iterations"`
	Size       int `long:"size" default:"1024" description:"FIFO size"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	fifo, err := queue.NewFIFO[int](opts.Size)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Benchmarking blocking channels (%d iterations, size=%d)\n", opts.Iterations, fifo.Cap())
	fmt.Println("─────────────────────────────────────────────────")

	mailbox := queue.NewMailbox[int]()
	mbDur := roundTrip(mailbox, opts.Iterations)
	fifoDur := roundTrip(fifo, opts.Iterations)

	mbPerOp := float64(mbDur.Nanoseconds()) / float64(opts.Iterations)
	fifoPerOp := float64(fifoDur.Nanoseconds()) / float64(opts.Iterations)

	fmt.Printf("\nResults (send + receive per iteration):\n")
	fmt.Printf("  Mailbox:  %v (%.2f ns/op)\n", mbDur, mbPerOp)
	fmt.Printf("  FIFO:     %v (%.2f ns/op)\n", fifoDur, fifoPerOp)

	if fifoPerOp < mbPerOp {
		fmt.Printf("\n  Speedup:  %.2fx (FIFO faster)\n", mbPerOp/fifoPerOp)
	} else {
		fmt.Printf("\n  Speedup:  %.2fx (Mailbox faster)\n", fifoPerOp/mbPerOp)
	}

	// Cross-goroutine handoff: one producer, one blocked consumer
	fmt.Printf("\nHandoff (producer -> blocked consumer):\n")
	fmt.Printf("  Mailbox:  %v per value\n", handoff(queue.NewMailbox[int](), 10000))
	f2, _ := queue.NewFIFO[int](opts.Size)
	fmt.Printf("  FIFO:     %v per value\n", handoff(f2, 10000))

	// Extrapolate to ops/second
	fmt.Printf("\nThroughput (theoretical max):\n")
	fmt.Printf("  Mailbox:  %.2f M ops/sec\n", 1000/mbPerOp)
	fmt.Printf("  FIFO:     %.2f M ops/sec\n", 1000/fifoPerOp)
}

func roundTrip(c queue.Channel[int], n int) time.Duration {
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < n; i++ {
		c.Send(i)
		_, _ = c.Receive(ctx)
	}
	return time.Since(start)
}

// handoff measures the latency of waking a consumer blocked in Receive.
func handoff(c queue.Channel[int], n int) time.Duration {
	ctx := context.Background()
	ack := make(chan struct{})

	go func() {
		for i := 0; i < n; i++ {
			if _, err := c.Receive(ctx); err != nil {
				return
			}
			ack <- struct{}{}
		}
	}()

	start := time.Now()
	for i := 0; i < n; i++ {
		c.Send(i)
		<-ack
	}
	return time.Since(start) / time.Duration(n)
}
