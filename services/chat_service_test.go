package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadside-assist-server/models"
)

func TestGetOrCreateRoomIdempotent(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	request := createTestRequest(t, db, client.ID, worker.ID)

	svc := NewChatService(db)

	room, err := svc.GetOrCreateRoom(client.ID, worker.ID, &request.ID)
	require.NoError(t, err)
	assert.NotZero(t, room.ID)

	again, err := svc.GetOrCreateRoom(client.ID, worker.ID, &request.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, again.ID, "same pair maps to the same room")

	var count int64
	db.Model(&models.ChatRoom{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateRoomValidatesPrincipals(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)

	svc := NewChatService(db)

	_, err := svc.GetOrCreateRoom(999, worker.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetOrCreateRoom(client.ID, 999, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	// Roles must match the sides of the room
	_, err = svc.GetOrCreateRoom(worker.ID, client.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendAndListMessages(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)
	outsider := createClient(t, db, "lucia")

	svc := NewChatService(db)
	room, err := svc.GetOrCreateRoom(client.ID, worker.ID, nil)
	require.NoError(t, err)

	first, err := svc.SendMessage(room.ID, client.ID, "Hola, ¿cuánto cuesta?", "text", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "client", first.SenderType)

	second, err := svc.SendMessage(room.ID, worker.ID, "Depende del repuesto", "text", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "worker", second.SenderType)

	messages, err := svc.ListMessages(room.ID, client.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, first.ID, messages[0].ID, "oldest first")

	// The room tracks the last message
	reloadedRoom, err := svc.GetRoom(room.ID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Depende del repuesto", reloadedRoom.LastMessageText)

	// Non-participants are kept out
	_, err = svc.ListMessages(room.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.SendMessage(room.ID, outsider.ID, "Hola", "text", nil, 0)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSendPurchaseMessageValidation(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	shop := createWorker(t, db, "repuestos", models.WorkerTypeShop)

	svc := NewChatService(db)
	room, err := svc.GetOrCreateRoom(client.ID, shop.ID, nil)
	require.NoError(t, err)

	// Purchase messages need a product and a positive quantity
	_, err = svc.SendMessage(room.ID, shop.ID, "Compra", "purchase", nil, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	productID := uint(999)
	_, err = svc.SendMessage(room.ID, shop.ID, "Compra", "purchase", &productID, 3)
	assert.ErrorIs(t, err, ErrNotFound)

	product, err := NewInventoryService(db).CreateProduct(shop.ID, &models.ProductCreate{
		Name: "Filtro de aire", Quantity: 4, Price: 6,
	})
	require.NoError(t, err)

	_, err = svc.SendMessage(room.ID, shop.ID, "Compra", "purchase", &product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	message, err := svc.SendMessage(room.ID, shop.ID, "Compra", "purchase", &product.ID, 2)
	require.NoError(t, err)
	assert.True(t, message.IsPurchase())
	assert.Equal(t, models.PurchaseStatusPending, message.PurchaseStatus)
}

func TestMarkMessagesRead(t *testing.T) {
	db := newTestDB(t)
	client := createClient(t, db, "maria")
	worker := createWorker(t, db, "pedro", models.WorkerTypeMechanic)

	svc := NewChatService(db)
	room, err := svc.GetOrCreateRoom(client.ID, worker.ID, nil)
	require.NoError(t, err)

	_, err = svc.SendMessage(room.ID, worker.ID, "Ya llegué", "text", nil, 0)
	require.NoError(t, err)
	mine, err := svc.SendMessage(room.ID, client.ID, "Ok", "text", nil, 0)
	require.NoError(t, err)

	require.NoError(t, svc.MarkMessagesRead(room.ID, client.ID))

	messages, err := svc.ListMessages(room.ID, client.ID)
	require.NoError(t, err)
	for _, m := range messages {
		if m.ID == mine.ID {
			assert.False(t, m.IsRead, "own messages are not marked")
		} else {
			assert.True(t, m.IsRead)
			assert.NotNil(t, m.ReadAt)
		}
	}
}
