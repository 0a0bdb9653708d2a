package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/WillyV3/todot/internal/todo"
)

// tasksSchema describes the persisted document: a bare array of tasks.
const tasksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text", "completed"],
    "properties": {
      "text": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var schema = jsonschema.MustCompileString("tasks.schema.json", tasksSchema)

// decodeTasks validates data against the task schema and decodes it.
// Blank input decodes to an empty list.
func decodeTasks(data []byte) ([]todo.Task, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}

	var tasks []todo.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// encodeTasks marshals tasks as a single-line JSON array. A nil list
// encodes as [] so the peer and the file never hold null.
func encodeTasks(tasks []todo.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}
