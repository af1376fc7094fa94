package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const usage = `usage: automap <command> [flags]

commands:
  map         enumerate every configuration and print its successor
  attractors  enumerate and summarise cycles, basins and Garden-of-Eden states
  step        print a configuration and its successors
  orbit       follow a configuration until it repeats
  list        list saved maps
  show        print a saved map

Run "automap <command> -h" for the flags of a command.`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	c := &cli{out: stdout, errOut: stderr}

	switch args[0] {
	case "map":
		return c.runMap(ctx, args[1:])
	case "attractors":
		return c.runAttractors(ctx, args[1:])
	case "step":
		return c.runStep(ctx, args[1:])
	case "orbit":
		return c.runOrbit(ctx, args[1:])
	case "list":
		return c.runList(ctx, args[1:])
	case "show":
		return c.runShow(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command: %s", errUsage, args[0])
	}
}

type cli struct {
	out    io.Writer
	errOut io.Writer
}
