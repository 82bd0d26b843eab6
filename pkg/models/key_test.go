package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealtask/pkg/models"
)

func TestPartialTaskKeyIsNotComplete(t *testing.T) {
	key := models.PartialTaskKey(models.NewProjectID())
	require.False(t, key.Complete())
	require.True(t, key.Task.IsZero())

	_, err := key.RecordID()
	require.Error(t, err)
}

func TestTaskKeyWithTaskFinalizes(t *testing.T) {
	project := models.NewProjectID()
	key := models.PartialTaskKey(project)

	finalized := key.WithTask(models.NewTaskID())
	require.True(t, finalized.Complete())
	require.Equal(t, project, finalized.Project)

	// The original key is a value and stays partial
	require.False(t, key.Complete())
}

func TestTaskKeyRecordIDRequiresProject(t *testing.T) {
	key := models.NewTaskKey(models.ProjectID{}, models.NewTaskID())
	_, err := key.RecordID()
	require.Error(t, err)
	require.Contains(t, err.Error(), "project segment")
}

func TestTaskKeyRecordIDCarriesBothSegments(t *testing.T) {
	project := models.NewProjectID()
	task := models.NewTaskID()
	key := models.NewTaskKey(project, task)

	rid, err := key.RecordID()
	require.NoError(t, err)
	require.Equal(t, "tasks", rid.Table)
	require.Equal(t, []any{project.String(), task.String()}, rid.ID)
}

func TestTaskKeyCBORRoundTrip(t *testing.T) {
	key := models.NewTaskKey(models.NewProjectID(), models.NewTaskID())

	data, err := key.MarshalCBOR()
	require.NoError(t, err)

	var decoded models.TaskKey
	require.NoError(t, decoded.UnmarshalCBOR(data))
	require.Equal(t, key, decoded)
}

func TestTaskKeyUnmarshalCBORRejectsOtherTables(t *testing.T) {
	data, err := models.NewProjectID().MarshalCBOR()
	require.NoError(t, err)

	var key models.TaskKey
	require.Error(t, key.UnmarshalCBOR(data))
}

func TestParseTaskKey(t *testing.T) {
	project := models.NewProjectID()
	task := models.NewTaskID()

	key, err := models.ParseTaskKey(project.String(), task.String())
	require.NoError(t, err)
	require.Equal(t, models.NewTaskKey(project, task), key)

	_, err = models.ParseTaskKey("not-a-uuid", task.String())
	require.Error(t, err)

	_, err = models.ParseTaskKey(project.String(), "not-a-uuid")
	require.Error(t, err)
}
