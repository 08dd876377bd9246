// Command vyzzergen decodes a wire-format contract and emits generated
// target-language source. Flags are parsed off os.Args directly,
// matching cmd/funxy's router style, rather than the stdlib flag package.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/statemindio/vyzzer-go/internal/config"
	"github.com/statemindio/vyzzer-go/pkg/vyzzer"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-config path] [-seed n] [-proto] <contract-file>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s -help\n", os.Args[0])
}

func warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\x1b[33mwarning:\x1b[0m %s\n", msg)
		return
	}
	fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-help" || os.Args[1] == "--help" {
		usage()
		if len(os.Args) < 2 {
			os.Exit(1)
		}
		return
	}

	runID := uuid.New().String()[:8]

	var (
		configPath string
		seed       int64
		useProto   bool
		contractPath string
	)

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			i++
			configPath = args[i]
		case args[i] == "-seed" && i+1 < len(args):
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[%s] invalid -seed value %q: %v\n", runID, args[i], err)
				os.Exit(1)
			}
			seed = n
		case args[i] == "-proto":
			useProto = true
		case strings.HasPrefix(args[i], "-"):
			warn("[%s] unrecognized flag %q, ignoring", runID, args[i])
		default:
			contractPath = args[i]
		}
	}

	if contractPath == "" {
		usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s] loading config: %v\n", runID, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	data, err := os.ReadFile(contractPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] reading %s: %v\n", runID, contractPath, err)
		os.Exit(1)
	}

	gen := vyzzer.FromConfig(cfg)

	var out string
	if useProto || filepath.Ext(contractPath) == ".pb" {
		out, err = gen.ConvertProto(data)
	} else {
		out, err = gen.ConvertJSON(data)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] conversion failed: %v\n", runID, err)
		os.Exit(1)
	}

	fmt.Print(out)
}
