// Package models defines the entities of the task tracker and the typed
// identifiers they are addressed by.
//
// The central piece is the parent/child relationship between [Project] and
// [Task]. A task does not have a standalone identifier: its identity is the
// composite [TaskKey] pairing the owning project's ID with the task's own ID.
// The key types marshal to SurrealDB record IDs over CBOR and to uuid columns
// over GORM, so the same structs serve both storage backends unchanged.
package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Project is the parent record. Tasks are only ever created under an
// existing project.
type Project struct {
	ID   ProjectID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"not null" json:"name"`
	// UpdatedAt is refreshed on every write, by GORM on the relational
	// backend and by the store layer elsewhere.
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID.IsZero() {
		p.ID = NewProjectID()
	}
	return nil
}

// Task is the child record. Its Key carries the owning project as the
// ancestor segment, so a task's address always names its parent. ModifiedBy
// records the signed-in user who last wrote the record.
type Task struct {
	Key        TaskKey   `gorm:"embedded" cbor:"id" json:"-"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedBy UserID    `gorm:"type:uuid;not null" json:"modified_by"`
}

// BeforeCreate hook to finalize the key if the task segment is not set
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.Key.Task.IsZero() {
		t.Key = t.Key.WithTask(NewTaskID())
	}
	return nil
}

// taskJSON is the wire form of a task. The composite key is flattened into
// the two alias fields id and project so API payloads never expose the key
// as a nested object.
type taskJSON struct {
	ID         string    `json:"id,omitempty"`
	Project    string    `json:"project,omitempty"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedBy UserID    `json:"modified_by"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{
		Title:      t.Title,
		Notes:      t.Notes,
		CreatedAt:  t.CreatedAt,
		ModifiedBy: t.ModifiedBy,
	}
	if !t.Key.Task.IsZero() {
		out.ID = t.Key.Task.String()
	}
	if !t.Key.Project.IsZero() {
		out.Project = t.Key.Project.String()
	}
	return json.Marshal(out)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var in taskJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var key TaskKey
	if in.Project != "" {
		projectID, err := ParseProjectID(in.Project)
		if err != nil {
			return err
		}
		key.Project = projectID
	}
	if in.ID != "" {
		taskID, err := ParseTaskID(in.ID)
		if err != nil {
			return err
		}
		key.Task = taskID
	}
	t.Key = key
	t.Title = in.Title
	t.Notes = in.Notes
	t.CreatedAt = in.CreatedAt
	t.ModifiedBy = in.ModifiedBy
	return nil
}

// User represents an account that signs in and modifies tasks
type User struct {
	ID        UserID    `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID.IsZero() {
		u.ID = NewUserID()
	}
	return nil
}
