package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatuses_PerFamily(t *testing.T) {
	assert.Equal(t, []string{StatusNotIssued, StatusPendingExec, StatusInProgress, StatusCompleted},
		ValidStatuses(FamilyPeriodicInspection))
	assert.Equal(t, []string{StatusPendingConfirm, StatusConfirmed, StatusNotStarted, StatusInProgress, StatusCompleted},
		ValidStatuses(FamilyTemporaryRepair))
	assert.Equal(t, []string{StatusPendingApprove, StatusReturned, StatusNotStarted, StatusInProgress, StatusApproved, StatusCompleted},
		ValidStatuses(FamilySpotWork))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusNotIssued, InitialStatus(FamilyPeriodicInspection))
	assert.Equal(t, StatusPendingConfirm, InitialStatus(FamilyTemporaryRepair))
	assert.Equal(t, StatusPendingApprove, InitialStatus(FamilySpotWork))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(FamilyTemporaryRepair, StatusNotStarted))
	assert.True(t, IsValidStatus(FamilySpotWork, StatusReturned))

	// Статус чужого типа работы недопустим
	assert.False(t, IsValidStatus(FamilyPeriodicInspection, StatusPendingApprove))
	assert.False(t, IsValidStatus(FamilyTemporaryRepair, "произвольная строка"))
}

func TestIsCompletedStatus_Partition(t *testing.T) {
	completed := []string{StatusCompleted, StatusConfirmed, StatusApproved}
	for _, s := range completed {
		assert.True(t, IsCompletedStatus(s), "статус %s должен считаться завершенным", s)
	}

	open := []string{StatusPendingConfirm, StatusNotIssued, StatusNotStarted,
		StatusPendingApprove, StatusReturned, StatusPendingExec, StatusInProgress}
	for _, s := range open {
		assert.False(t, IsCompletedStatus(s), "статус %s должен считаться открытым", s)
	}
}

// Статус 已确认 числится в наборе временного ремонта как промежуточный,
// но для классификации считается завершенным
func TestConfirmedStatus_CompletedForClassification(t *testing.T) {
	assert.True(t, IsValidStatus(FamilyTemporaryRepair, StatusConfirmed))
	assert.True(t, IsCompletedStatus(StatusConfirmed))
}

func TestCompletedStatusList(t *testing.T) {
	list := CompletedStatusList()
	assert.Len(t, list, 3)
	for _, s := range list {
		assert.True(t, IsCompletedStatus(s))
	}
}

func TestFamilyPrefix(t *testing.T) {
	assert.Equal(t, "XJ", FamilyPeriodicInspection.Prefix())
	assert.Equal(t, "WX", FamilyTemporaryRepair.Prefix())
	assert.Equal(t, "YG", FamilySpotWork.Prefix())
	assert.Equal(t, "", WorkOrderFamily("unknown").Prefix())
}

func TestIsManagerRole(t *testing.T) {
	assert.True(t, IsManagerRole(RoleAdmin))
	assert.True(t, IsManagerRole(RoleDepartmentManager))
	assert.True(t, IsManagerRole(RoleSupervisor))
	assert.False(t, IsManagerRole(RoleWorker))
	assert.False(t, IsManagerRole(""))
}
