package main

import (
	"fmt"
	"os"

	"github.com/bromaniac/baby-git/internal/env"
)

func main() {
	root := newRootCmd(env.NewFromOs())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
