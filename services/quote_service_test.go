package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadside-assist-server/models"
)

func TestQuoteCreateWithLineItems(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	request := createTestRequest(t, db, client.ID, worker.ID)

	svc := NewQuoteService(db)

	quote, err := svc.Create(worker.ID, &models.QuoteCreate{
		RequestID: request.ID,
		Services: []models.QuoteLineItemCreate{
			{Description: "Brake pads", Price: 40},
			{Description: "Labor", Price: 10},
		},
		TransportFee: 10,
		TotalPrice:   60,
	})
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusPending, quote.Status)
	assert.Equal(t, client.ID, quote.ClientID, "client id denormalized from the request")
	assert.Len(t, quote.Services, 2)

	var count int64
	db.Model(&models.QuoteLineItem{}).Where("quote_id = ?", quote.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestQuoteCreateUnknownRequest(t *testing.T) {
	db := newTestDB(t)
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)

	svc := NewQuoteService(db)

	_, err := svc.Create(worker.ID, &models.QuoteCreate{
		RequestID:  999,
		Services:   []models.QuoteLineItemCreate{{Description: "Labor", Price: 10}},
		TotalPrice: 10,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuoteCreateAtomicity(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	request := createTestRequest(t, db, client.ID, worker.ID)

	svc := NewQuoteService(db)

	// The second line item is invalid, so the whole insert must roll back
	_, err := svc.Create(worker.ID, &models.QuoteCreate{
		RequestID: request.ID,
		Services: []models.QuoteLineItemCreate{
			{Description: "Brake pads", Price: 40},
			{Description: "", Price: 10},
		},
		TotalPrice: 50,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	var quoteCount, itemCount int64
	db.Model(&models.Quote{}).Count(&quoteCount)
	db.Model(&models.QuoteLineItem{}).Count(&itemCount)
	assert.Zero(t, quoteCount, "no quote row persists after a failed line item")
	assert.Zero(t, itemCount, "no line-item rows persist after a failed line item")

	quotes, err := svc.ListForWorker(worker.ID)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuoteAccept(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	request := createTestRequest(t, db, client.ID, worker.ID)
	quote := createTestQuote(t, db, request.ID, worker.ID, 50)

	svc := NewQuoteService(db)
	require.NoError(t, svc.Accept(quote.ID, client.ID))

	var reloaded models.Quote
	require.NoError(t, db.First(&reloaded, quote.ID).Error)
	assert.Equal(t, models.QuoteStatusAccepted, reloaded.Status)

	// Accepting transitions the parent request
	var parentRequest models.ServiceRequest
	require.NoError(t, db.First(&parentRequest, request.ID).Error)
	assert.Equal(t, models.RequestStatusAccepted, parentRequest.Status)

	// A terminal quote cannot be re-accepted
	assert.ErrorIs(t, svc.Accept(quote.ID, client.ID), ErrInvalidState)
}

func TestQuoteAcceptRejectsSiblings(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	rival := createWorker(t, db, "juan", models.WorkerTypeMechanic)
	request := createTestRequest(t, db, client.ID, worker.ID)

	quoteA := createTestQuote(t, db, request.ID, worker.ID, 50)
	// Competing quote from another worker on the same request
	quoteB := models.Quote{
		RequestID:  request.ID,
		WorkerID:   rival.ID,
		ClientID:   client.ID,
		TotalPrice: 45,
		Status:     models.QuoteStatusPending,
	}
	require.NoError(t, db.Create(&quoteB).Error)

	svc := NewQuoteService(db)
	require.NoError(t, svc.Accept(quoteA.ID, client.ID))

	var sibling models.Quote
	require.NoError(t, db.First(&sibling, quoteB.ID).Error)
	assert.Equal(t, models.QuoteStatusRejected, sibling.Status, "sibling pending quotes are auto-rejected")

	// Accepting the rejected sibling afterwards fails
	assert.ErrorIs(t, svc.Accept(quoteB.ID, client.ID), ErrInvalidState)

	// Exactly one accepted quote on the request
	var acceptedCount int64
	db.Model(&models.Quote{}).
		Where("request_id = ? AND status = ?", request.ID, models.QuoteStatusAccepted).
		Count(&acceptedCount)
	assert.EqualValues(t, 1, acceptedCount)
}

func TestQuoteAcceptOnCancelledRequest(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	request := createTestRequest(t, db, client.ID, worker.ID)
	quote := createTestQuote(t, db, request.ID, worker.ID, 50)

	// The request goes stale and gets cancelled before the client decides
	require.NoError(t, db.Model(&models.ServiceRequest{}).
		Where("id = ?", request.ID).
		Update("status", models.RequestStatusCancelled).Error)

	svc := NewQuoteService(db)
	assert.ErrorIs(t, svc.Accept(quote.ID, client.ID), ErrInvalidState)

	// Nothing moved: the quote is still pending, the request still cancelled
	var reloaded models.Quote
	require.NoError(t, db.First(&reloaded, quote.ID).Error)
	assert.Equal(t, models.QuoteStatusPending, reloaded.Status)

	var parentRequest models.ServiceRequest
	require.NoError(t, db.First(&parentRequest, request.ID).Error)
	assert.Equal(t, models.RequestStatusCancelled, parentRequest.Status)
}

func TestQuoteAcceptOwnership(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	outsider := createClient(t, db, "lucia")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	request := createTestRequest(t, db, client.ID, worker.ID)
	quote := createTestQuote(t, db, request.ID, worker.ID, 50)

	svc := NewQuoteService(db)

	assert.ErrorIs(t, svc.Accept(quote.ID, outsider.ID), ErrForbidden)
	assert.ErrorIs(t, svc.Accept(999, client.ID), ErrNotFound)
}

func TestQuoteReject(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	request := createTestRequest(t, db, client.ID, worker.ID)
	quote := createTestQuote(t, db, request.ID, worker.ID, 50)

	svc := NewQuoteService(db)
	require.NoError(t, svc.Reject(quote.ID, client.ID, "Muy caro"))

	var reloaded models.Quote
	require.NoError(t, db.First(&reloaded, quote.ID).Error)
	assert.Equal(t, models.QuoteStatusRejected, reloaded.Status)
	assert.Equal(t, "Muy caro", reloaded.RejectionReason)

	// Rejection is terminal for the quote but not the request
	var parentRequest models.ServiceRequest
	require.NoError(t, db.First(&parentRequest, request.ID).Error)
	assert.Equal(t, models.RequestStatusPending, parentRequest.Status)

	assert.ErrorIs(t, svc.Reject(quote.ID, client.ID, ""), ErrInvalidState)
}

func TestQuoteListIncludesLineItems(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	request := createTestRequest(t, db, client.ID, worker.ID)
	createTestQuote(t, db, request.ID, worker.ID, 50)

	svc := NewQuoteService(db)

	forWorker, err := svc.ListForWorker(worker.ID)
	require.NoError(t, err)
	require.Len(t, forWorker, 1)
	assert.NotEmpty(t, forWorker[0].Services)

	forClient, err := svc.ListForClient(client.ID)
	require.NoError(t, err)
	require.Len(t, forClient, 1)
	assert.NotEmpty(t, forClient[0].Services)
}
