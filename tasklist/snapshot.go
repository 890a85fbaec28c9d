package tasklist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultSnapshotKey is the backend key the section list is stored under.
const DefaultSnapshotKey = "taskList"

// DefaultSectionTitles are the sections a new or unreadable store starts with.
var DefaultSectionTitles = []string{"Personal Tasks", "Work"}

// DefaultSections builds the starting section list. Sections get the IDs
// "1", "2", ... in order; all are empty and expanded.
func DefaultSections(titles []string) []Section {
	if len(titles) == 0 {
		titles = DefaultSectionTitles
	}
	sections := make([]Section, 0, len(titles))
	for i, title := range titles {
		sections = append(sections, Section{
			ID:         strconv.Itoa(i + 1),
			Title:      title,
			Tasks:      []Task{},
			IsExpanded: true,
		})
	}
	return sections
}

const snapshotSchemaURL = "tasklist://snapshot.schema.json"

const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": { "$ref": "#/$defs/section" },
  "$defs": {
    "section": {
      "type": "object",
      "required": ["id", "title", "tasks"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "title": { "type": "string" },
        "isExpanded": { "type": "boolean" },
        "tasks": { "type": "array", "items": { "$ref": "#/$defs/task" } }
      }
    },
    "task": {
      "type": "object",
      "required": ["id", "title", "createdAt"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "title": { "type": "string" },
        "description": { "type": "string" },
        "createdAt": { "type": "string", "format": "date-time" },
        "completedAt": { "type": ["string", "null"], "format": "date-time" },
        "sectionId": { "type": "string" }
      }
    }
  }
}`

var compiledSnapshotSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchema)); err != nil {
		return nil, fmt.Errorf("add snapshot schema: %w", err)
	}
	schema, err := compiler.Compile(snapshotSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}
	return schema, nil
})

// SnapshotError lists the problems found in a persisted snapshot.
type SnapshotError struct {
	Problems []string
}

func (e *SnapshotError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid snapshot: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid snapshot: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// EncodeSnapshot serializes sections, tasks included, preserving order.
func EncodeSnapshot(sections []Section) ([]byte, error) {
	if sections == nil {
		sections = []Section{}
	}
	normalized := make([]Section, len(sections))
	for i, section := range sections {
		if section.Tasks == nil {
			section.Tasks = []Task{}
		}
		normalized[i] = section
	}

	data, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeSnapshot parses and validates a snapshot produced by EncodeSnapshot.
//
// Task back-references are derived from containment, so a snapshot with a
// missing or stale sectionId still loads. Anything else that breaks the
// tree's invariants is an error.
func DecodeSnapshot(data []byte) ([]Section, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	schema, err := compiledSnapshotSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(raw); err != nil {
		return nil, snapshotErrorFrom(err)
	}

	var sections []Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	for i := range sections {
		if sections[i].Tasks == nil {
			sections[i].Tasks = []Task{}
		}
	}

	relinkSections(sections)
	if err := CheckInvariants(sections); err != nil {
		return nil, &SnapshotError{Problems: []string{err.Error()}}
	}
	return sections, nil
}

func snapshotErrorFrom(err error) error {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("validate snapshot: %w", err)
	}

	result := &SnapshotError{}
	collectSchemaProblems(result, validationErr)
	if len(result.Problems) == 0 {
		result.Problems = append(result.Problems, validationErr.Message)
	}
	return result
}

func collectSchemaProblems(result *SnapshotError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		location := jsonPointerToPath(err.InstanceLocation)
		if location == "" {
			result.Problems = append(result.Problems, err.Message)
			return
		}
		result.Problems = append(result.Problems, fmt.Sprintf("%s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaProblems(result, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&path, "[%d]", idx)
			continue
		}
		if path.Len() > 0 {
			path.WriteByte('.')
		}
		path.WriteString(part)
	}
	return path.String()
}
