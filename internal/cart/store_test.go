package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/acarreras/tienda-backend/pkg/errors"
)

// memoryStorage round-trips snapshots through JSON the way the Redis
// storage does, so serialization bugs surface here too.
type memoryStorage struct {
	snapshots map[string][]byte
	saves     int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{snapshots: map[string][]byte{}}
}

func (m *memoryStorage) Load(_ context.Context, sessionID string) (*Cart, error) {
	raw, ok := m.snapshots[sessionID]
	if !ok {
		return &Cart{}, nil
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *memoryStorage) Save(_ context.Context, sessionID string, cart *Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	m.snapshots[sessionID] = raw
	m.saves++
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, sessionID string) error {
	delete(m.snapshots, sessionID)
	return nil
}

func TestNewStoreRequiresStorage(t *testing.T) {
	_, err := NewStore(nil)
	require.Error(t, err)
}

func TestStoreGetEmptySession(t *testing.T) {
	store, err := NewStore(newMemoryStorage())
	require.NoError(t, err)

	c, err := store.Get(context.Background(), NewSessionID())
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestStoreMutationsPersist(t *testing.T) {
	storage := newMemoryStorage()
	store, err := NewStore(storage)
	require.NoError(t, err)

	ctx := context.Background()
	session := NewSessionID()
	p := product(t, "Lamp", "LMP-001", "25.00")

	_, err = store.AddItem(ctx, session, p)
	require.NoError(t, err)
	_, err = store.AddItem(ctx, session, p)
	require.NoError(t, err)

	assert.Equal(t, 2, storage.saves, "every mutation writes a snapshot")

	// a fresh load sees the merged line
	c, err := store.Get(ctx, session)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestStoreSetQuantityRemovesAtZero(t *testing.T) {
	store, err := NewStore(newMemoryStorage())
	require.NoError(t, err)

	ctx := context.Background()
	session := NewSessionID()
	p := product(t, "Lamp", "LMP-001", "25.00")

	_, err = store.AddItem(ctx, session, p)
	require.NoError(t, err)

	c, err := store.SetQuantity(ctx, session, p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestStoreRemoveAbsentIsNoop(t *testing.T) {
	store, err := NewStore(newMemoryStorage())
	require.NoError(t, err)

	c, err := store.RemoveItem(context.Background(), NewSessionID(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestStoreClearDropsSnapshot(t *testing.T) {
	storage := newMemoryStorage()
	store, err := NewStore(storage)
	require.NoError(t, err)

	ctx := context.Background()
	session := NewSessionID()

	_, err = store.AddItem(ctx, session, product(t, "Lamp", "LMP-001", "25.00"))
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, session))
	assert.NotContains(t, storage.snapshots, session)

	c, err := store.Get(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestStoreRejectsEmptySession(t *testing.T) {
	store, err := NewStore(newMemoryStorage())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = store.AddItem(context.Background(), "", product(t, "Lamp", "LMP-001", "25.00"))
	require.NotNil(t, pkgerrors.As(err))
}

func TestSnapshotExcludesDerivedValues(t *testing.T) {
	var c Cart
	c.AddItem(product(t, "Lamp", "LMP-001", "25.00"))

	raw, err := json.Marshal(&c)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "subtotal")
	assert.NotContains(t, decoded, "totalItems")
}
