// Command wick normal-orders fermionic operator strings with Wick's theorem.
//
// Usage:
//
//	wick run program.wick [--full] [--format latex|tensor|json] [--out result.wres]
//	wick check program.wick
//	wick show result.wres
//	wick perf --size 3 --iter 100
//	wick version
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
