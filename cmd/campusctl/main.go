package main

import (
	"fmt"
	"os"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
