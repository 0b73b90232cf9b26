// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"neptune-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		help(out)
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "add":
		return runAdd(args[1:], out)
	case "update":
		return runUpdate(args[1:], out)
	case "validate":
		return runValidate(args[1:], out)
	case "check-input":
		return runCheckInput(args[1:], out)
	default:
		help(out)
		return nil
	}
}

func runAdd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(out)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	id := fs.String("id", "", "Activity ID (e.g., rank-providers)")
	displayName := fs.String("displayName", "", "Display Name (e.g., Rank Providers)")
	description := fs.String("description", "", "Description")
	category := fs.String("category", "search", "Category")
	taskType := fs.String("taskType", "", "Camunda Task Type (defaults to id)")
	version := fs.String("version", "1.0.0", "Version")
	status := fs.String("status", registry.StatusPlanned, "Implementation Status (planned, in-progress, completed, verified)")
	timeout := fs.String("timeout", "10s", "Job timeout")
	tags := fs.String("tags", "", "Comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" || *displayName == "" || *description == "" {
		fs.Usage()
		return fmt.Errorf("id, displayName and description are required for add")
	}
	if *taskType == "" {
		*taskType = *id
	}

	reg, err := registry.LoadRegistry(*path)
	if os.IsNotExist(err) {
		reg, err = registry.New(), nil
	}
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	activity := registry.Activity{
		ID:                   *id,
		DisplayName:          *displayName,
		Description:          *description,
		Category:             *category,
		Version:              *version,
		TaskType:             *taskType,
		ImplementationStatus: *status,
		InputSchema:          map[string]interface{}{},
		OutputSchema:         map[string]interface{}{},
		ErrorCodes:           []string{},
		Timeout:              *timeout,
		Workflows:            []string{},
		Tags:                 splitList(*tags),
	}
	if err := reg.Add(activity); err != nil {
		return err
	}
	if err := reg.Save(*path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Added activity: %s\n", *id)
	return nil
}

func runUpdate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(out)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	id := fs.String("id", "", "Activity ID to update")
	field := fs.String("field", "", "Field to update (status, version, timeout, retries, ...)")
	value := fs.String("value", "", "New value for the field")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" || *field == "" || *value == "" {
		fs.Usage()
		return fmt.Errorf("id, field and value are required for update")
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Update(*id, *field, *value); err != nil {
		return err
	}
	if err := reg.Save(*path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated activity %s, field %s to %s\n", *id, *field, *value)
	return nil
}

func runValidate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(out)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	required := fs.String("require", "", "Comma-separated task types that must be registered")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	if missing := reg.MissingTaskTypes(splitList(*required)); len(missing) > 0 {
		return fmt.Errorf("registry is missing task types: %s", strings.Join(missing, ", "))
	}

	fmt.Fprintf(out, "Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

// runCheckInput validates a JSON variables document against an activity's input schema.
func runCheckInput(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check-input", flag.ContinueOnError)
	fs.SetOutput(out)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	id := fs.String("id", "", "Activity ID")
	vars := fs.String("vars", "", "Job variables as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	activity, ok := reg.Find(*id)
	if !ok {
		return fmt.Errorf("activity with ID %s not found", *id)
	}

	problems, err := activity.ValidateInput([]byte(*vars))
	if err != nil {
		return fmt.Errorf("variables are not valid JSON: %w", err)
	}
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		return fmt.Errorf("%d schema violations", len(problems))
	}
	fmt.Fprintln(out, "Input is valid.")
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func help(out io.Writer) {
	fmt.Fprintln(out, `
Usage: registry-updater <command> [flags]

Commands:
  add          Add a new activity to the registry
  update       Update an existing activity's field
  validate     Validate the registry file
  check-input  Validate job variables against an activity's input schema
  help         Show this help message

Examples:
  registry-updater add -id rank-providers -displayName "Rank Providers" -description "Ranks providers by Neptune Score"
  registry-updater update -id rank-providers -field status -value completed
  registry-updater validate -require perform-search,rank-providers
  registry-updater check-input -id perform-search -vars '{"query":"fix my sink"}'

Use 'registry-updater <command> -h' for more information about a command.`)
}
