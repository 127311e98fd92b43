package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadside-assist-server/models"
)

func TestRequestCreate(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)

	svc := NewRequestService(db)

	request, err := svc.Create(&models.ServiceRequestCreate{
		ClientID:    client.ID,
		WorkerID:    worker.ID,
		ServiceType: "mechanic",
		Description: "Car won't start",
	})
	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.False(t, request.CreatedAt.IsZero())
}

func TestRequestCreateUnknownPrincipals(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)

	svc := NewRequestService(db)

	_, err := svc.Create(&models.ServiceRequestCreate{
		ClientID: 999, WorkerID: worker.ID, ServiceType: "mechanic",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(&models.ServiceRequestCreate{
		ClientID: client.ID, WorkerID: 999, ServiceType: "mechanic",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// A client id pointing at a worker principal is rejected too
	_, err = svc.Create(&models.ServiceRequestCreate{
		ClientID: worker.ID, WorkerID: worker.ID, ServiceType: "mechanic",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestTransitionGraph(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	request := createTestRequest(t, db, client.ID, worker.ID)

	svc := NewRequestService(db)

	// pending cannot jump straight to completed
	_, err := svc.TransitionStatus(request.ID, models.RequestStatusCompleted, worker.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// unknown status values are rejected before any lookup
	_, err = svc.TransitionStatus(request.ID, "finished", worker.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	updated, err := svc.TransitionStatus(request.ID, models.RequestStatusAccepted, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, updated.Status)

	updated, err = svc.TransitionStatus(request.ID, models.RequestStatusCompleted, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, updated.Status)

	// completed is terminal
	_, err = svc.TransitionStatus(request.ID, models.RequestStatusCancelled, worker.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRequestTransitionOwnership(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	outsider := createClient(t, db, "lucia")
	request := createTestRequest(t, db, client.ID, worker.ID)

	svc := NewRequestService(db)

	_, err := svc.TransitionStatus(request.ID, models.RequestStatusAccepted, outsider.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.TransitionStatus(999, models.RequestStatusAccepted, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestListForPrincipal(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)

	first := createTestRequest(t, db, client.ID, worker.ID)
	// Force distinct timestamps so the ordering is deterministic
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error)
	second := createTestRequest(t, db, client.ID, worker.ID)

	svc := NewRequestService(db)

	requests, err := svc.ListForPrincipal(client.ID, models.RoleClient, "")
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, second.ID, requests[0].ID, "newest first")
	assert.Equal(t, first.ID, requests[1].ID)

	// Listing twice yields an identical sequence
	again, err := svc.ListForPrincipal(client.ID, models.RoleClient, "")
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, requests[0].ID, again[0].ID)
	assert.Equal(t, requests[1].ID, again[1].ID)

	// Status filter
	_, err = svc.TransitionStatus(second.ID, models.RequestStatusAccepted, worker.ID)
	require.NoError(t, err)

	pending, err := svc.ListForPrincipal(client.ID, models.RoleClient, models.RequestStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	// Worker sees the same requests through their own side
	workerView, err := svc.ListForPrincipal(worker.ID, models.RoleWorker, "")
	require.NoError(t, err)
	assert.Len(t, workerView, 2)
}
