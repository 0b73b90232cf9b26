// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// New returns an empty registry stamped with the current time.
func New() *ActivityRegistry {
	return &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Activities:  []Activity{},
	}
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes the registry as indented JSON, creating parent directories.
func (r *ActivityRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func (r *ActivityRegistry) Find(id string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

func (r *ActivityRegistry) touch() {
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
}

func (r *ActivityRegistry) Add(a Activity) error {
	if _, exists := r.Find(a.ID); exists {
		return fmt.Errorf("activity with ID %s already exists", a.ID)
	}
	r.Activities = append(r.Activities, a)
	r.touch()
	return nil
}

// Update sets a single scalar field of the activity with the given id.
func (r *ActivityRegistry) Update(id, field, value string) error {
	a, ok := r.Find(id)
	if !ok {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		if !validStatuses[value] {
			return fmt.Errorf("invalid status %q", value)
		}
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "taskType":
		a.TaskType = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	r.touch()
	return nil
}

// Validate checks required fields, uniqueness, statuses and that every
// input/output schema compiles.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for _, a := range r.Activities {
		if a.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity ID: %s", a.ID)
		}
		ids[a.ID] = true

		if a.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", a.ID)
		}
		if a.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", a.ID)
		}
		if taskTypes[a.TaskType] {
			return fmt.Errorf("duplicate task type: %s", a.TaskType)
		}
		taskTypes[a.TaskType] = true

		if a.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", a.ID)
		}
		if a.ImplementationStatus != "" && !validStatuses[a.ImplementationStatus] {
			return fmt.Errorf("activity %s has invalid status %q", a.ID, a.ImplementationStatus)
		}
		if err := compileSchema(a.InputSchema); err != nil {
			return fmt.Errorf("activity %s input schema: %w", a.ID, err)
		}
		if err := compileSchema(a.OutputSchema); err != nil {
			return fmt.Errorf("activity %s output schema: %w", a.ID, err)
		}
	}
	return nil
}

func compileSchema(schema map[string]interface{}) error {
	if len(schema) == 0 {
		return nil
	}
	_, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	return err
}

// ValidateInput checks job variables against the activity's input schema.
// An activity without an input schema accepts anything.
func (a *Activity) ValidateInput(variables []byte) ([]string, error) {
	if len(a.InputSchema) == 0 {
		return nil, nil
	}
	res, err := gojsonschema.Validate(gojsonschema.NewGoLoader(a.InputSchema), gojsonschema.NewBytesLoader(variables))
	if err != nil {
		return nil, err
	}
	var problems []string
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return problems, nil
}

// MissingTaskTypes returns the task types in want that the registry does not list.
func (r *ActivityRegistry) MissingTaskTypes(want []string) []string {
	have := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		have[a.TaskType] = true
	}
	var missing []string
	for _, tt := range want {
		if !have[tt] {
			missing = append(missing, tt)
		}
	}
	sort.Strings(missing)
	return missing
}
