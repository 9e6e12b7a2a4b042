package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jaco/specialmac/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		if !errors.Is(err, cli.ErrNotSpecial) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
