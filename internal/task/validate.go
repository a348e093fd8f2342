package task

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var taskSchema string

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(taskSchema)); err != nil {
		panic(fmt.Sprintf("adding embedded task schema: %v", err))
	}
	return compiler.MustCompile("tasks.schema.json")
}

// Validate checks a serialized task collection against the embedded JSON
// Schema plus the invariants the schema cannot express (unique IDs, trimmed
// non-blank text). A nil return means the payload is safe to load.
func Validate(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse tasks: %w", err)
	}

	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return fmt.Errorf("decode tasks: %w", err)
	}
	return validateMinimal(tasks)
}

// validateMinimal performs the checks not covered by the schema.
func validateMinimal(tasks []Task) error {
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if seen[t.ID] {
			return fmt.Errorf("tasks[%d]: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = true

		if strings.TrimSpace(t.Text) == "" {
			return fmt.Errorf("tasks[%d]: blank text", i)
		}
		if !t.Priority.Valid() {
			return fmt.Errorf("tasks[%d]: invalid priority %q", i, t.Priority)
		}
	}
	return nil
}
