// Fuzzyhash is a command-line utility for computing and comparing
// dual-layer fuzzy hashes of files.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/greatroar/fuzzyhash"
)

const usage = `usage:
	fuzzyhash sum <file>
	fuzzyhash compare <file1> <file2>
`

func main() {
	var (
		alpha      = pflag.Float64("alpha", 0.3, "structural-vs-content weighting (0.0-1.0)")
		minModulus = pflag.Uint64("min-modulus", 16, "floor on the adaptive trigger modulus")
		noParallel = pflag.Bool("no-parallel", false, "disable parallel extraction for large files")
	)
	pflag.Parse()

	args := pflag.Args()
	if len(args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg := fuzzyhash.Config{
		EnableParallel: !*noParallel,
		Alpha:          *alpha,
		MinModulus:     *minModulus,
	}

	switch args[0] {
	case "sum":
		if len(args) != 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(1)
		}
		runSum(cfg, args[1])
	case "compare":
		if len(args) != 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(1)
		}
		runCompare(cfg, args[1], args[2])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runSum(cfg fuzzyhash.Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("fuzzyhash: %v", err)
	}

	fp, err := fuzzyhash.Generate(context.Background(), data, cfg)
	if err != nil {
		log.Fatalf("fuzzyhash: %v", err)
	}

	fmt.Printf("%x  %s\n", fp.Encode(), path)
}

func runCompare(cfg fuzzyhash.Config, path1, path2 string) {
	data1, err := os.ReadFile(path1)
	if err != nil {
		log.Fatalf("fuzzyhash: %v", err)
	}
	data2, err := os.ReadFile(path2)
	if err != nil {
		log.Fatalf("fuzzyhash: %v", err)
	}

	fp1, err := fuzzyhash.Generate(context.Background(), data1, cfg)
	if err != nil {
		log.Fatalf("fuzzyhash: %v", err)
	}
	fp2, err := fuzzyhash.Generate(context.Background(), data2, cfg)
	if err != nil {
		log.Fatalf("fuzzyhash: %v", err)
	}

	score := fuzzyhash.Compare(fp1, fp2, cfg.Alpha)
	fmt.Printf("%d\n", score)
}
