// cfgpack encodes configuration records into compact schema-ordered buffers.
//
// Usage:
//
//	cfgpack train   [flags] <corpus files...>
//	cfgpack encode  [flags] <record.yaml>
//	cfgpack decode  [flags] <buffer>
//	cfgpack inspect [flags] <buffer>
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// environment carries the process-wide outputs of a command.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger
	level  *slog.LevelVar
}

func newEnvironment(stdin io.Reader, stdout, stderr io.Writer) *environment {
	level := &slog.LevelVar{}
	if os.Getenv("CFGPACK_DEBUG") != "" {
		level.Set(slog.LevelDebug)
	}

	return &environment{
		stdin:  stdin,
		stdout: stdout,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		level:  level,
	}
}

var commands = map[string]func(args []string, env *environment) error{
	"train":   trainCmd,
	"encode":  encodeCmd,
	"decode":  decodeCmd,
	"inspect": inspectCmd,
}

func main() {
	os.Exit(run(os.Args[1:], newEnvironment(os.Stdin, os.Stdout, os.Stderr)))
}

func run(args []string, env *environment) int {
	if len(args) < 1 {
		printUsage(os.Stderr)
		return 2
	}

	name := args[0]
	switch name {
	case "help", "--help", "-h":
		printUsage(env.stdout)
		return 0
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage(os.Stderr)

		return 2
	}

	if err := cmd(args[1:], env); err != nil {
		if errors.Is(err, errHelp) {
			return 0
		}
		env.logger.Error("command failed", "command", name, "error", err)
		return 1
	}

	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `cfgpack - Compact schema-ordered configuration records

USAGE
    cfgpack <command> [flags] <args>

COMMANDS
    train     Build a string table from corpus files
    encode    Encode a YAML record with a YAML schema
    decode    Decode a buffer back to YAML
    inspect   Show header, pool sizes and envelope information

EXAMPLES
    # Train a table on existing configuration files
    cfgpack train -o configs.table configs/*.yaml

    # Encode into a compressed envelope with a slot index
    cfgpack encode --schema service.yaml --table configs.table --envelope --compression zstd --index -o svc.bin svc.yaml

    # Decode it again
    cfgpack decode --schema service.yaml --table configs.table --envelope svc.bin

ENVIRONMENT
    CFGPACK_DEBUG    Enable debug logging

Run 'cfgpack <command> --help' for the flags of a command.
`)
}
