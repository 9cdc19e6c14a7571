// Topnbench measures and cross-checks the top-N selectors.
//
// Usage:
//
//	go run ./cmd/topnbench run --variants qsfixed-middle,heap --top-n 1000
//	go run ./cmd/topnbench verify --items 100000 --top-n 1000
//	go run ./cmd/topnbench fixture gen --out input.tnsf --items 1000000
//	go run ./cmd/topnbench fixture inspect input.tnsf
//
// Global flags:
//
//	--config     YAML benchmark configuration (defaults are built in)
//	--log-level  debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
