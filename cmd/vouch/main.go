// Package main provides the vouch binary — declarative scenario runner.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vouchlabs/vouch/pkg/debugger"
	"github.com/vouchlabs/vouch/pkg/report"
	"github.com/vouchlabs/vouch/pkg/runner"
	"github.com/vouchlabs/vouch/pkg/scenario"
	"github.com/vouchlabs/vouch/pkg/schema"
	"github.com/vouchlabs/vouch/pkg/target"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vouch",
	Short: "Declarative scenario runner",
	Long:  "vouch — run declarative YAML scenarios against registered Go targets and report every check.",
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate [scenarios.yaml]",
	Short: "Validate a scenario YAML file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, errs := schema.ValidateFile(args[0])
	if len(errs) > 0 {
		var errors, warnings []*schema.ValidationError
		for _, e := range errs {
			if e.Severity == "warning" {
				warnings = append(warnings, e)
			} else {
				errors = append(errors, e)
			}
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "  ⚠ [%s] %s\n", w.Phase, w.Message)
			if w.Path != "" {
				fmt.Fprintf(os.Stderr, "    at: %s\n", w.Path)
			}
		}
		if len(errors) > 0 {
			fmt.Fprintf(os.Stderr, "Validation failed: %d error(s)\n\n", len(errors))
			for i, e := range errors {
				fmt.Fprintf(os.Stderr, "  %d. [%s] %s\n", i+1, e.Phase, e.Message)
				if e.Path != "" {
					fmt.Fprintf(os.Stderr, "     at: %s\n", e.Path)
				}
			}
			return fmt.Errorf("validation failed with %d error(s)", len(errors))
		}
	}
	fmt.Printf("✓ %s is valid (%d scenarios)\n", doc.Name, len(doc.Scenarios))
	return nil
}

// --- run ---

var (
	runDebug   bool
	runJSON    bool
	runRender  bool
	runSummary bool
)

var runCmd = &cobra.Command{
	Use:   "run [scenarios.yaml]",
	Short: "Run the scenarios in a YAML document",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	name, scenarios, err := loadBatch(args[0])
	if err != nil {
		return err
	}

	rec := report.NewRecorder()
	var rep report.Reporter = rec
	if !runJSON {
		rep = report.Multi(report.NewConsole(os.Stdout), rec)
	}

	b := &runner.Batch{Name: name, Reporter: rep, Debug: runDebug}
	if err := b.Declare(scenarios); err != nil {
		return err
	}

	summary := rec.Summarize()

	switch {
	case runJSON:
		data, err := json.MarshalIndent(map[string]any{
			"batch":   name,
			"summary": summary,
			"groups":  rec.Groups(),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case runRender:
		md := report.Markdown(name, rec.Groups())
		out, err := report.RenderTerm(md)
		if err != nil {
			return err
		}
		fmt.Print(out)
	case runSummary:
		fmt.Println()
		report.WriteTable(os.Stdout, rec.Groups())
	}

	if !summary.AllPassed() {
		return fmt.Errorf("%d of %d checks failed", summary.Failed, summary.Checks)
	}
	return nil
}

// --- step ---

var stepDebug bool

var stepCmd = &cobra.Command{
	Use:   "step [scenarios.yaml]",
	Short: "Step through scenarios in the interactive debugger",
	Args:  cobra.ExactArgs(1),
	RunE:  runStep,
}

func runStep(cmd *cobra.Command, args []string) error {
	name, scenarios, err := loadBatch(args[0])
	if err != nil {
		return err
	}
	d, err := debugger.New(name, scenarios, stepDebug)
	if err != nil {
		return err
	}
	return d.Run()
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Scenario document schema operations",
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the JSON Schema for scenario documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := schema.GenerateJSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

// --- targets ---

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the registered targets",
	Run: func(cmd *cobra.Command, args []string) {
		names := target.Default().Targets()
		if len(names) == 0 {
			fmt.Println("no targets registered")
			return
		}
		for _, n := range names {
			fmt.Println(n)
		}
	},
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vouch %s (build: %s)\n", version, commit)
	},
}

// loadBatch validates, loads and resolves a scenario document against
// the default target registry.
func loadBatch(path string) (string, []scenario.Scenario, error) {
	doc, errs := schema.ValidateFile(path)
	if hasValidationErrors(errs) {
		for _, e := range errs {
			if e.Severity != "warning" {
				fmt.Fprintf(os.Stderr, "  [%s] %s\n", e.Phase, e.Message)
			}
		}
		return "", nil, fmt.Errorf("document validation failed")
	}
	printValidationWarnings(errs)
	return schema.Resolve(doc, target.Default())
}

func hasValidationErrors(errs []*schema.ValidationError) bool {
	for _, e := range errs {
		if e.Severity != "warning" {
			return true
		}
	}
	return false
}

func printValidationWarnings(errs []*schema.ValidationError) {
	for _, e := range errs {
		if e.Severity == "warning" {
			fmt.Fprintf(os.Stderr, "  ⚠ [%s] %s\n", e.Phase, e.Message)
		}
	}
}

func init() {
	runCmd.Flags().BoolVar(&runDebug, "debug", false, "Include diagnostic notes in the report")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Output results as structured JSON")
	runCmd.Flags().BoolVar(&runRender, "render", false, "Render the report as markdown in the terminal")
	runCmd.Flags().BoolVar(&runSummary, "summary", false, "Print the summary table after the run")

	stepCmd.Flags().BoolVar(&stepDebug, "debug", false, "Include diagnostic notes in the report")

	schemaCmd.AddCommand(schemaExportCmd)

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(versionCmd)
}
