package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dbsteward/partitioner/lib"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	partitioner := lib.NewPartitioner()
	partitioner.ArgParse()
	partitioner.Run(ctx)
}
