// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"neptune-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Category     string
	Description  string
	InputFields  []Field
	OutputFields []Field
	InputSchema  string
	ErrorCodes   []string
}

type Field struct {
	Name    string
	GoType  string
	JSONTag string
}

// packageName turns "rank-providers" into "rankproviders".
func packageName(id string) string {
	return strings.ReplaceAll(strings.ToLower(id), "-", "")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// goTypeFromJSONType maps JSON schema types to Go types
func goTypeFromJSONType(jsonType interface{}) string {
	switch jsonType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

// fieldsFromSchema lists the schema's properties as struct fields, sorted by name.
func fieldsFromSchema(schema map[string]interface{}) []Field {
	props, _ := schema["properties"].(map[string]interface{})
	fields := make([]Field, 0, len(props))
	for name, raw := range props {
		details, _ := raw.(map[string]interface{})
		fields = append(fields, Field{
			Name:    upperFirst(name),
			GoType:  goTypeFromJSONType(details["type"]),
			JSONTag: fmt.Sprintf("`json:\"%s\"`", name),
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

func newWorkerData(a registry.Activity) (WorkerData, error) {
	schema := "{}"
	if len(a.InputSchema) > 0 {
		raw, err := json.MarshalIndent(a.InputSchema, "", "\t")
		if err != nil {
			return WorkerData{}, fmt.Errorf("encode input schema: %w", err)
		}
		schema = string(raw)
	}
	return WorkerData{
		Name:         a.DisplayName,
		PackageName:  packageName(a.ID),
		TaskType:     a.TaskType,
		Category:     a.Category,
		Description:  a.Description,
		InputFields:  fieldsFromSchema(a.InputSchema),
		OutputFields: fieldsFromSchema(a.OutputSchema),
		InputSchema:  schema,
		ErrorCodes:   a.ErrorCodes,
	}, nil
}

var templates = map[string]string{
	"config.go":       configTemplate,
	"models.go":       modelsTemplate,
	"handler.go":      handlerTemplate,
	"handler_test.go": testTemplate,
}

// generate renders every template for a into dir, refusing to overwrite
// existing files unless force is set.
func generate(a registry.Activity, dir string, force bool) ([]string, error) {
	data, err := newWorkerData(a)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	var written []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil && !force {
			return written, fmt.Errorf("%s already exists (use -force)", path)
		}

		src, err := render(name, templates[name], data)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, src, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func render(name, text string, data WorkerData) ([]byte, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return src, nil
}

func main() {
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to registry file")
	id := flag.String("id", "", "Activity ID to scaffold")
	outDir := flag.String("out", "internal/workers", "Root directory for worker packages")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	if *id == "" {
		flag.Usage()
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		os.Exit(1)
	}
	activity, ok := reg.Find(*id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Activity %s not found in %s\n", *id, *registryPath)
		os.Exit(1)
	}

	dir := filepath.Join(*outDir, activity.Category, activity.ID)
	written, err := generate(*activity, dir, *force)
	for _, path := range written {
		fmt.Printf("wrote %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
