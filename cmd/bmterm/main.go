package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := New().Execute(); err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
