package models

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"
)

// TaskKey is the hierarchical identity of a task: the project segment comes
// first, the task segment second. A key may be created with only the project
// segment set; the task segment is then a placeholder until the store assigns
// one. The key can only be turned into a record address once both segments
// are known.
//
// In SurrealDB the key maps to an array-form record ID,
// tasks:[project_uuid, task_uuid], so every task record carries its ancestor
// in its own address. In PostgreSQL the two segments are the composite
// primary key of the tasks table.
type TaskKey struct {
	Project ProjectID `gorm:"type:uuid;primary_key;column:project_id"`
	Task    TaskID    `gorm:"type:uuid;primary_key;column:id"`
}

// NewTaskKey builds a complete key from both segments.
func NewTaskKey(project ProjectID, task TaskID) TaskKey {
	return TaskKey{Project: project, Task: task}
}

// PartialTaskKey builds a key whose task segment is still unassigned.
func PartialTaskKey(project ProjectID) TaskKey {
	return TaskKey{Project: project}
}

// ParseTaskKey parses the two path segments of a task URL.
func ParseTaskKey(project, task string) (TaskKey, error) {
	projectID, err := ParseProjectID(project)
	if err != nil {
		return TaskKey{}, err
	}
	taskID, err := ParseTaskID(task)
	if err != nil {
		return TaskKey{}, err
	}
	return TaskKey{Project: projectID, Task: taskID}, nil
}

// WithTask returns a copy of the key with the task segment filled in.
func (k TaskKey) WithTask(id TaskID) TaskKey {
	k.Task = id
	return k
}

// Complete reports whether both segments are set.
func (k TaskKey) Complete() bool {
	return !k.Project.IsZero() && !k.Task.IsZero()
}

func (k TaskKey) String() string {
	return fmt.Sprintf("%s/%s", k.Project, k.Task)
}

// RecordID returns the SurrealDB address of the task. It fails while the key
// is incomplete: a record can only be addressed once the ancestor segment and
// the task segment are both known.
func (k TaskKey) RecordID() (surrealdb_models.RecordID, error) {
	if k.Project.IsZero() {
		return surrealdb_models.RecordID{}, fmt.Errorf("task key has no project segment")
	}
	if k.Task.IsZero() {
		return surrealdb_models.RecordID{}, fmt.Errorf("task key %s is not finalized", k.Project)
	}
	return surrealdb_models.RecordID{
		Table: "tasks",
		ID:    []any{k.Project.String(), k.Task.String()},
	}, nil
}

func (k TaskKey) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  8,
		Content: []any{"tasks", []any{k.Project.String(), k.Task.String()}},
	})
}

func (k *TaskKey) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty CBOR data")
	}

	majorType := data[0] >> 5
	if majorType != 6 {
		return fmt.Errorf("expected RecordID tag for task key")
	}

	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return err
	}
	if tag.Number != 8 {
		return fmt.Errorf("expected RecordID tag (8), got %d", tag.Number)
	}

	arr, ok := tag.Content.([]any)
	if !ok || len(arr) != 2 {
		return fmt.Errorf("invalid RecordID content format")
	}
	table, ok := arr[0].(string)
	if !ok || table != "tasks" {
		return fmt.Errorf("expected tasks RecordID, got table %v", arr[0])
	}

	segments, ok := arr[1].([]any)
	if !ok || len(segments) != 2 {
		return fmt.Errorf("invalid composite task ID format")
	}
	projectStr, ok := segments[0].(string)
	if !ok {
		return fmt.Errorf("invalid project segment in task ID")
	}
	taskStr, ok := segments[1].(string)
	if !ok {
		return fmt.Errorf("invalid task segment in task ID")
	}

	projectUUID, err := uuid.Parse(projectStr)
	if err != nil {
		return fmt.Errorf("invalid UUID in project segment: %w", err)
	}
	taskUUID, err := uuid.Parse(taskStr)
	if err != nil {
		return fmt.Errorf("invalid UUID in task segment: %w", err)
	}

	k.Project = NewProjectIDFromUUID(projectUUID)
	k.Task = NewTaskIDFromUUID(taskUUID)
	return nil
}
