// Command forma lints and inspects declarative form definition files
// (JSON or YAML).
//
// Usage:
//
//	forma lint <file>
//	forma inspect <file>
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/forma/formdef"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "lint":
		os.Exit(runLint(os.Args[2:]))
	case "inspect":
		os.Exit(runInspect(os.Args[2:]))
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", sub)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: forma <lint|inspect> <file.json|file.yaml>")
}

func load(path string) (*formdef.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formdef.DecodeYAML(data)
	default:
		return formdef.DecodeJSON(data)
	}
}

func runLint(args []string) int {
	if len(args) != 1 {
		usage()
		return 2
	}
	def, err := load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "forma: %v\n", err)
		return 1
	}
	iss := def.Validate()
	if len(iss) == 0 {
		fmt.Printf("%s: ok (%d fields)\n", args[0], len(def.Fields))
		return 0
	}
	for _, it := range iss {
		fmt.Fprintf(os.Stderr, "%s: field %q: %s (%s)\n", args[0], it.Field, it.Message, it.Code)
	}
	return 1
}

func runInspect(args []string) int {
	if len(args) != 1 {
		usage()
		return 2
	}
	def, err := load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "forma: %v\n", err)
		return 1
	}
	fmt.Printf("form: %s\n", def.Name)
	if def.Description != "" {
		fmt.Printf("description: %s\n", def.Description)
	}
	for _, cfg := range def.WidgetConfigs() {
		fmt.Printf("  %-12s %s\n", cfg.Kind(), cfg.Field())
	}
	initial, err := json.MarshalIndent(def.InitialValues(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "forma: %v\n", err)
		return 1
	}
	fmt.Printf("initial values:\n%s\n", initial)
	return 0
}
