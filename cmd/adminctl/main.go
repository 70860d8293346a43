// Command adminctl is a terminal console for the adminhub API: it lists and
// filters records, prints summary stats and runs the same guarded mutations
// the web pages offer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"adminhub/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd(config.LoadConsole()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Hata: %v\n", err)
		os.Exit(1)
	}
}
