// Package main sends remote control commands to a running viewer.
//
// Usage:
//
//	spotctl [-addr host:port] <op> [values...]
//
// Examples:
//
//	spotctl set_inner_cone 20
//	spotctl set_diffuse 1 0.8 0.6
//	spotctl point_down
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Faultbox/spotlight/internal/remote"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7420", "Viewer remote control address")
	timeout := flag.Duration("timeout", 3*time.Second, "Connection timeout")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: spotctl [flags] <op> [values...]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	value, err := parseValue(flag.Args()[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := remote.Dial(ctx, *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := client.Send(flag.Arg(0), value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("ok")
}

// parseValue turns the trailing arguments into the command value: nothing,
// a single number, or an array of numbers.
func parseValue(args []string) (any, error) {
	nums := make([]float32, len(args))
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", arg)
		}
		nums[i] = float32(f)
	}
	switch len(nums) {
	case 0:
		return nil, nil
	case 1:
		return nums[0], nil
	default:
		return nums, nil
	}
}
