package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	meshOut := flag.String("mesh", "", "write triangle meshes for the scene to this JSON file")
	jsonOut := flag.Bool("json", false, "print the run result as JSON instead of text")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: headroom [-mesh out.json] [-json] <scene.lisp>\n")
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read scene: %v", err)
	}

	app := NewApp()

	if *meshOut != "" {
		meshes, evalErrs, err := app.ExportMeshes(string(source))
		if err != nil {
			log.Fatalf("mesh export: %v", err)
		}
		if len(evalErrs) > 0 {
			printEvalErrors(evalErrs)
			os.Exit(1)
		}
		if err := writeJSON(*meshOut, meshes); err != nil {
			log.Fatalf("write meshes: %v", err)
		}
		log.Printf("wrote %d meshes to %s", len(meshes), *meshOut)
	}

	result, err := app.Run(string(source))
	if err != nil {
		log.Fatalf("run: %v", err)
	}
	if len(result.Errors) > 0 {
		printEvalErrors(result.Errors)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("encode result: %v", err)
		}
		return
	}

	printResult(result)
}

func printEvalErrors(errs []EvalErrorData) {
	for _, e := range errs {
		if e.Line > 0 {
			fmt.Fprintf(os.Stderr, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %s\n", e.Message)
		}
	}
}

func printResult(r RunResult) {
	fmt.Printf("run %s\n", r.RunID)
	for _, f := range r.Fixtures {
		switch f.State {
		case "single":
			fmt.Printf("  %-24s clearance %s  (%d probes, %d accepted)\n", f.ID, f.Single, f.Probes, f.Accepted)
		case "min-max":
			fmt.Printf("  %-24s clearance %s to %s  (%d probes, %d accepted)\n", f.ID, f.Min, f.Max, f.Probes, f.Accepted)
		default:
			fmt.Printf("  %-24s FAILED  (%d probes, %d accepted)\n", f.ID, f.Probes, f.Accepted)
		}
	}
	if len(r.WrongType) > 0 {
		fmt.Printf("wrong family type: %v\n", r.WrongType)
	}
	if len(r.Skipped) > 0 {
		fmt.Printf("skipped (no usable geometry): %v\n", r.Skipped)
	}
	if len(r.Failed) > 0 {
		fmt.Printf("failed: %v\n", r.Failed)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}
