package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/app/board"
	"github.com/ukemeuu/mani24-kds/internal/domain"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

type fakeRepo struct {
	mu sync.Mutex

	orders []domain.Order

	statusCalls []statusCall
	bulkIDs     []string
	bulkFrom    domain.Status
	bulkTo      domain.Status
	updated     []domain.Order
	deletedItem string

	updateStatusErr error
	seq             *callSeq
}

// callSeq records the order of store and broker calls across fakes.
type callSeq struct {
	mu    sync.Mutex
	calls []string
}

func (s *callSeq) add(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

type statusCall struct {
	id           string
	status       domain.Status
	dispatchedAt *int64
}

func (r *fakeRepo) CreateOrder(context.Context, *domain.Order) error { return nil }

func (r *fakeRepo) CreateItems(context.Context, string, []domain.OrderItem) error { return nil }

func (r *fakeRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *fakeRepo) FindByExternalID(context.Context, string, string) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

func (r *fakeRepo) List(context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.Status, dispatchedAt *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusCalls = append(r.statusCalls, statusCall{id, status, dispatchedAt})
	return r.updateStatusErr
}

func (r *fakeRepo) UpdateStatusBulk(_ context.Context, ids []string, from, to domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulkIDs = ids
	r.bulkFrom = from
	r.bulkTo = to
	if r.seq != nil {
		r.seq.add("bulk_update")
	}
	return nil
}

func (r *fakeRepo) UpdateDetails(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, *order)
	return nil
}

func (r *fakeRepo) DeleteItem(_ context.Context, _, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedItem = itemID
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []interfaces.OrderEvent
	seq    *callSeq
}

func (p *fakePublisher) PublishOrderEvent(_ context.Context, event interfaces.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	if p.seq != nil {
		p.seq.add("publish")
	}
	return nil
}

func (p *fakePublisher) published() []interfaces.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]interfaces.OrderEvent, len(p.events))
	copy(out, p.events)
	return out
}

type fakeSyncer struct {
	calls chan syncCall
}

type syncCall struct {
	storeID    string
	externalID string
	status     domain.Status
}

func (s *fakeSyncer) SyncStatus(_ context.Context, storeID, externalID string, status domain.Status) error {
	s.calls <- syncCall{storeID, externalID, status}
	return nil
}

func newEngine(t *testing.T, seed ...domain.Order) (*Engine, *board.Board, *fakeRepo, *fakePublisher) {
	t.Helper()

	repo := &fakeRepo{orders: seed}
	b := board.New(repo, logger.NewNop())
	require.NoError(t, b.Refresh(context.Background()))

	pub := &fakePublisher{}
	eng := NewEngine(b, repo, pub, nil, logger.NewNop())
	eng.now = func() int64 { return 42000 }
	return eng, b, repo, pub
}

func TestAdvance_HappyPath(t *testing.T) {
	eng, b, repo, pub := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "PJ-001", Status: domain.StatusNew, CreatedAt: 100,
	})

	got, err := eng.Advance(context.Background(), domain.StationChef, "o1", domain.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, got.Status)

	onBoard, ok := b.Get("o1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPreparing, onBoard.Status)

	require.Len(t, repo.statusCalls, 1)
	assert.Equal(t, statusCall{"o1", domain.StatusPreparing, nil}, repo.statusCalls[0])

	events := pub.published()
	require.Len(t, events, 1)
	assert.Equal(t, interfaces.EventStatusChanged, events[0].Event)
	assert.Equal(t, "CHEF", events[0].ChangedBy)
}

func TestAdvance_WrongStationRejected(t *testing.T) {
	eng, b, repo, _ := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "PJ-001", Status: domain.StatusPacking,
	})

	_, err := eng.Advance(context.Background(), domain.StationChef, "o1", domain.StatusReady)
	assert.ErrorIs(t, err, domain.ErrRoleNotPermitted)

	onBoard, _ := b.Get("o1")
	assert.Equal(t, domain.StatusPacking, onBoard.Status)
	assert.Empty(t, repo.statusCalls)
}

func TestAdvance_StampsDispatchedAt(t *testing.T) {
	eng, _, repo, _ := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "PJ-001", Status: domain.StatusReady,
	})

	got, err := eng.Advance(context.Background(), domain.StationFrontDesk, "o1", domain.StatusDispatched)
	require.NoError(t, err)
	require.NotNil(t, got.DispatchedAt)
	assert.Equal(t, int64(42000), *got.DispatchedAt)

	require.Len(t, repo.statusCalls, 1)
	require.NotNil(t, repo.statusCalls[0].dispatchedAt)
	assert.Equal(t, int64(42000), *repo.statusCalls[0].dispatchedAt)
}

func TestAdvance_UnknownOrder(t *testing.T) {
	eng, _, _, _ := newEngine(t)

	_, err := eng.Advance(context.Background(), domain.StationChef, "missing", domain.StatusPreparing)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestAdvance_StoreFailureKeepsLocalState(t *testing.T) {
	eng, b, repo, pub := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "PJ-001", Status: domain.StatusNew,
	})
	repo.updateStatusErr = errors.New("connection reset")

	got, err := eng.Advance(context.Background(), domain.StationChef, "o1", domain.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, got.Status)

	onBoard, _ := b.Get("o1")
	assert.Equal(t, domain.StatusPreparing, onBoard.Status)
	assert.Len(t, pub.published(), 1)
}

func TestAdvance_SyncsGlovoOrders(t *testing.T) {
	eng, _, _, _ := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "GL-001", Status: domain.StatusPreparing,
		Metadata: map[string]any{
			"source":         "glovo",
			"glovo_order_id": "abc-123",
			"store_id":       "store-9",
		},
	})
	syncer := &fakeSyncer{calls: make(chan syncCall, 1)}
	eng.syncer = syncer

	_, err := eng.Advance(context.Background(), domain.StationChef, "o1", domain.StatusPacking)
	require.NoError(t, err)

	select {
	case call := <-syncer.calls:
		assert.Equal(t, syncCall{"store-9", "abc-123", domain.StatusPacking}, call)
	case <-time.After(time.Second):
		t.Fatal("expected a platform sync call")
	}
}

func TestBulkReady_MovesOnlyPreparing(t *testing.T) {
	eng, b, repo, pub := newEngine(t,
		domain.Order{ID: "a", OrderNumber: "PJ-001", Status: domain.StatusPreparing},
		domain.Order{ID: "b", OrderNumber: "PJ-002", Status: domain.StatusPreparing},
		domain.Order{ID: "c", OrderNumber: "PJ-003", Status: domain.StatusPreparing},
		domain.Order{ID: "d", OrderNumber: "PJ-004", Status: domain.StatusNew},
	)

	moved, err := eng.BulkReady(context.Background(), domain.StationFrontDesk)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, moved)

	assert.Equal(t, moved, repo.bulkIDs)
	assert.Equal(t, domain.StatusPreparing, repo.bulkFrom, "store write is guarded on the snapshot status")
	assert.Equal(t, domain.StatusReady, repo.bulkTo)

	for _, id := range []string{"a", "b", "c"} {
		o, _ := b.Get(id)
		assert.Equal(t, domain.StatusReady, o.Status)
	}
	untouched, _ := b.Get("d")
	assert.Equal(t, domain.StatusNew, untouched.Status)
	assert.Len(t, pub.published(), 3)
}

func TestBulkReady_WritesStoreBeforePublishing(t *testing.T) {
	eng, _, repo, pub := newEngine(t,
		domain.Order{ID: "a", OrderNumber: "PJ-001", Status: domain.StatusPreparing},
		domain.Order{ID: "b", OrderNumber: "PJ-002", Status: domain.StatusPreparing},
	)
	seq := &callSeq{}
	repo.seq = seq
	pub.seq = seq

	_, err := eng.BulkReady(context.Background(), domain.StationFrontDesk)
	require.NoError(t, err)

	// A board refresh triggered by a notification must re-read READY, so
	// every publish comes after the bulk store write.
	assert.Equal(t, []string{"bulk_update", "publish", "publish"}, seq.calls)
}

func TestBulkReady_FrontDeskOnly(t *testing.T) {
	eng, _, repo, _ := newEngine(t, domain.Order{
		ID: "a", OrderNumber: "PJ-001", Status: domain.StatusPreparing,
	})

	_, err := eng.BulkReady(context.Background(), domain.StationChef)
	assert.ErrorIs(t, err, domain.ErrRoleNotPermitted)
	assert.Empty(t, repo.bulkIDs)
}

func TestBulkReady_NothingToMove(t *testing.T) {
	eng, _, repo, pub := newEngine(t, domain.Order{
		ID: "a", OrderNumber: "PJ-001", Status: domain.StatusReady,
	})

	moved, err := eng.BulkReady(context.Background(), domain.StationFrontDesk)
	require.NoError(t, err)
	assert.Nil(t, moved)
	assert.Empty(t, repo.bulkIDs)
	assert.Empty(t, pub.published())
}

func TestUpdateOrder_EditsAndPersists(t *testing.T) {
	eng, b, repo, _ := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "PJ-001", CustomerName: "Amaka",
		Type: domain.TypeDineIn, Status: domain.StatusPreparing,
	})

	name := "Amaka O."
	orderType := "Takeout"
	got, err := eng.UpdateOrder(context.Background(), "o1", interfaces.UpdateOrderCommand{
		CustomerName: &name,
		OrderType:    &orderType,
		Items: []interfaces.CreateOrderItemCommand{
			{Name: "Party Jollof Rice", Quantity: 2, Category: "Main"},
			{Name: "Zobo Drink", Quantity: 1, Category: "Drink"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Amaka O.", got.CustomerName)
	assert.Equal(t, domain.TypeTakeout, got.Type)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 15, got.Items[0].EstimatedPrepTime)
	assert.Equal(t, 2, got.Items[1].EstimatedPrepTime)
	assert.NotEmpty(t, got.Items[0].ID)

	onBoard, _ := b.Get("o1")
	assert.Equal(t, "Amaka O.", onBoard.CustomerName)
	require.Len(t, repo.updated, 1)
}

func TestUpdateOrder_KeepsCarriedItemIDs(t *testing.T) {
	eng, b, _, _ := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "PJ-001", Status: domain.StatusNew,
		Items: []domain.OrderItem{{ID: "i1", Name: "Party Jollof Rice", Quantity: 2}},
	})

	got, err := eng.UpdateOrder(context.Background(), "o1", interfaces.UpdateOrderCommand{
		Items: []interfaces.CreateOrderItemCommand{
			{ID: "i1", Name: "Party Jollof Rice", Quantity: 3},
			{Name: "Fried Plantain (Dodo)", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "i1", got.Items[0].ID, "an edited line keeps its id")
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.NotEmpty(t, got.Items[1].ID)
	assert.NotEqual(t, "i1", got.Items[1].ID)

	// A delete against the pre-edit id still resolves.
	require.NoError(t, eng.DeleteItem(context.Background(), "o1", "i1"))
	onBoard, _ := b.Get("o1")
	require.Len(t, onBoard.Items, 1)
	assert.Equal(t, "Fried Plantain (Dodo)", onBoard.Items[0].Name)
}

func TestUpdateOrder_LockedAfterPreparation(t *testing.T) {
	eng, _, repo, _ := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "PJ-001", Status: domain.StatusReady,
	})

	name := "Someone"
	_, err := eng.UpdateOrder(context.Background(), "o1", interfaces.UpdateOrderCommand{CustomerName: &name})
	assert.ErrorIs(t, err, domain.ErrOrderLocked)
	assert.Empty(t, repo.updated)
}

func TestUpdateOrder_RejectsZeroQuantity(t *testing.T) {
	eng, _, repo, _ := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "PJ-001", Status: domain.StatusNew,
	})

	_, err := eng.UpdateOrder(context.Background(), "o1", interfaces.UpdateOrderCommand{
		Items: []interfaces.CreateOrderItemCommand{{Name: "Moin Moin", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrQuantityTooLow)
	assert.Empty(t, repo.updated)
}

func TestDeleteItem(t *testing.T) {
	eng, b, repo, _ := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "PJ-001", Status: domain.StatusNew,
		Items: []domain.OrderItem{
			{ID: "i1", Name: "Jollof", Quantity: 1},
			{ID: "i2", Name: "Dodo", Quantity: 1},
		},
	})

	require.NoError(t, eng.DeleteItem(context.Background(), "o1", "i1"))
	assert.Equal(t, "i1", repo.deletedItem)

	onBoard, _ := b.Get("o1")
	require.Len(t, onBoard.Items, 1)
	assert.Equal(t, "i2", onBoard.Items[0].ID)
}

func TestDeleteItem_LockedOrder(t *testing.T) {
	eng, _, repo, _ := newEngine(t, domain.Order{
		ID: "o1", OrderNumber: "PJ-001", Status: domain.StatusPacking,
		Items: []domain.OrderItem{{ID: "i1", Name: "Jollof", Quantity: 1}},
	})

	err := eng.DeleteItem(context.Background(), "o1", "i1")
	assert.ErrorIs(t, err, domain.ErrOrderLocked)
	assert.Empty(t, repo.deletedItem)
}
