package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

// fakeEventStore is an in-memory EventStore. A single mutex plays the role of
// the database row lock: transactions on any event are serialized, writes
// apply only when the callback returns nil.
type fakeEventStore struct {
	mu           sync.Mutex
	nextID       uint
	events       map[uint]*domain.Event
	participants map[uint]*domain.EventParticipant
}

func newFakeEventStore(events ...domain.Event) *fakeEventStore {
	s := &fakeEventStore{
		nextID:       1000,
		events:       make(map[uint]*domain.Event),
		participants: make(map[uint]*domain.EventParticipant),
	}
	for i := range events {
		ev := events[i]
		s.events[ev.ID] = &ev
	}

	return s
}

func (s *fakeEventStore) WithEventLock(_ context.Context, eventID uint, fn func(tx repository.EventTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return repository.ErrEventNotFound
	}

	tx := &fakeEventTx{
		store:  s,
		event:  *ev,
		staged: make(map[uint]domain.EventParticipant),
	}
	if err := fn(tx); err != nil {
		return err
	}

	*ev = tx.event
	for id, p := range tx.staged {
		saved := p
		s.participants[id] = &saved
	}

	return nil
}

func (s *fakeEventStore) participation(eventID, userID uint) (domain.EventParticipant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.participants {
		if p.EventID == eventID && p.UserID == userID {
			return *p, true
		}
	}

	return domain.EventParticipant{}, false
}

func (s *fakeEventStore) event(eventID uint) domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.events[eventID]
}

type fakeEventTx struct {
	store  *fakeEventStore
	event  domain.Event
	staged map[uint]domain.EventParticipant
}

func (t *fakeEventTx) Event() domain.Event {
	return t.event
}

func (t *fakeEventTx) FindParticipation(userID uint) (domain.EventParticipant, error) {
	for _, p := range t.staged {
		if p.EventID == t.event.ID && p.UserID == userID {
			return p, nil
		}
	}
	for _, p := range t.store.participants {
		if p.EventID == t.event.ID && p.UserID == userID {
			return *p, nil
		}
	}

	return domain.EventParticipant{}, repository.ErrParticipantNotFound
}

func (t *fakeEventTx) FindParticipantByID(participantID uint) (domain.EventParticipant, error) {
	if p, ok := t.staged[participantID]; ok {
		return p, nil
	}
	if p, ok := t.store.participants[participantID]; ok && p.EventID == t.event.ID {
		return *p, nil
	}

	return domain.EventParticipant{}, repository.ErrParticipantNotFound
}

func (t *fakeEventTx) SaveParticipation(p domain.EventParticipant) (domain.EventParticipant, error) {
	if p.ID == 0 {
		t.store.nextID++
		p.ID = t.store.nextID
	}
	t.staged[p.ID] = p

	return p, nil
}

func (t *fakeEventTx) AdjustParticipantCount(delta int) error {
	next := t.event.CurrentParticipants + delta
	if next < 0 || next > t.event.MaxParticipants {
		return repository.ErrConcurrencyConflict
	}
	t.event.CurrentParticipants = next

	return nil
}

type recordingDispatcher struct {
	mu      sync.Mutex
	events  []domain.ParticipationEvent
	updates []domain.EventUpdate
}

func (d *recordingDispatcher) DispatchParticipation(_ context.Context, e domain.ParticipationEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.events = append(d.events, e)
}

func (d *recordingDispatcher) BroadcastEventUpdate(_ context.Context, u domain.EventUpdate) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.updates = append(d.updates, u)
}

func (d *recordingDispatcher) dispatched() []domain.ParticipationEvent {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]domain.ParticipationEvent(nil), d.events...)
}

func publishedEvent(id uint, max int) domain.Event {
	return domain.Event{
		ID:              id,
		Title:           "Go Meetup",
		OrganizerID:     1,
		Status:          domain.EventStatusPublished,
		MaxParticipants: max,
	}
}

func newTestEngine(events ...domain.Event) (*ParticipationService, *fakeEventStore, *recordingDispatcher) {
	store := newFakeEventStore(events...)
	dispatcher := &recordingDispatcher{}
	svc := NewParticipationService(store, dispatcher, zap.NewNop())

	return svc, store, dispatcher
}

func TestParticipationService_Register(t *testing.T) {
	t.Run("creates a pending participation without touching the counter", func(t *testing.T) {
		svc, store, dispatcher := newTestEngine(publishedEvent(1, 10))

		p, err := svc.Register(context.Background(), 1, 42)

		require.NoError(t, err)
		assert.Equal(t, domain.ParticipationPending, p.Status)
		assert.Equal(t, uint(42), p.UserID)
		assert.Equal(t, 0, store.event(1).CurrentParticipants)

		events := dispatcher.dispatched()
		require.Len(t, events, 1)
		assert.Equal(t, domain.ParticipantRegistered, events[0].Type)
		assert.Equal(t, uint(1), events[0].OrganizerID)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, _ := newTestEngine(publishedEvent(1, 10))

		_, err := svc.Register(context.Background(), 99, 42)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("draft event is not open", func(t *testing.T) {
		ev := publishedEvent(1, 10)
		ev.Status = domain.EventStatusDraft
		svc, _, _ := newTestEngine(ev)

		_, err := svc.Register(context.Background(), 1, 42)

		assert.ErrorIs(t, err, ErrEventNotOpen)
	})

	t.Run("full event", func(t *testing.T) {
		ev := publishedEvent(1, 1)
		ev.CurrentParticipants = 1
		svc, _, _ := newTestEngine(ev)

		_, err := svc.Register(context.Background(), 1, 42)

		assert.ErrorIs(t, err, ErrEventFull)
	})

	t.Run("double registration", func(t *testing.T) {
		svc, _, _ := newTestEngine(publishedEvent(1, 10))

		_, err := svc.Register(context.Background(), 1, 42)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), 1, 42)
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("re-registration after cancel reuses the row and resets the date", func(t *testing.T) {
		svc, store, _ := newTestEngine(publishedEvent(1, 10))

		first, err := svc.Register(context.Background(), 1, 42)
		require.NoError(t, err)

		_, err = svc.Cancel(context.Background(), 1, 42)
		require.NoError(t, err)

		second, err := svc.Register(context.Background(), 1, 42)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, domain.ParticipationPending, second.Status)
		assert.True(t, second.RegistrationDate.After(first.RegistrationDate) ||
			second.RegistrationDate.Equal(first.RegistrationDate))
		assert.Equal(t, 0, store.event(1).CurrentParticipants)
	})
}

func TestParticipationService_Cancel(t *testing.T) {
	t.Run("not registered", func(t *testing.T) {
		svc, _, _ := newTestEngine(publishedEvent(1, 10))

		_, err := svc.Cancel(context.Background(), 1, 42)

		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("cancelling a pending participation leaves the counter alone", func(t *testing.T) {
		svc, store, _ := newTestEngine(publishedEvent(1, 10))

		_, err := svc.Register(context.Background(), 1, 42)
		require.NoError(t, err)

		cancelled, err := svc.Cancel(context.Background(), 1, 42)

		require.NoError(t, err)
		assert.Equal(t, domain.ParticipationCancelled, cancelled.Status)
		assert.Equal(t, 0, store.event(1).CurrentParticipants)
	})

	t.Run("cancelling a confirmed participation frees a slot", func(t *testing.T) {
		svc, store, dispatcher := newTestEngine(publishedEvent(1, 10))

		p, err := svc.Register(context.Background(), 1, 42)
		require.NoError(t, err)

		_, err = svc.SetParticipantStatus(context.Background(), 1, p.ID, domain.ParticipationConfirmed, 1)
		require.NoError(t, err)
		require.Equal(t, 1, store.event(1).CurrentParticipants)

		_, err = svc.Cancel(context.Background(), 1, 42)

		require.NoError(t, err)
		assert.Equal(t, 0, store.event(1).CurrentParticipants)

		events := dispatcher.dispatched()
		last := events[len(events)-1]
		assert.Equal(t, domain.ParticipantUnregistered, last.Type)
		assert.Equal(t, domain.ParticipationConfirmed, last.OldStatus)
	})

	t.Run("cancelling twice reports not registered", func(t *testing.T) {
		svc, _, _ := newTestEngine(publishedEvent(1, 10))

		_, err := svc.Register(context.Background(), 1, 42)
		require.NoError(t, err)
		_, err = svc.Cancel(context.Background(), 1, 42)
		require.NoError(t, err)

		_, err = svc.Cancel(context.Background(), 1, 42)
		assert.ErrorIs(t, err, ErrNotRegistered)
	})
}

func TestParticipationService_SetParticipantStatus(t *testing.T) {
	register := func(t *testing.T, svc *ParticipationService, userID uint) domain.EventParticipant {
		t.Helper()
		p, err := svc.Register(context.Background(), 1, userID)
		require.NoError(t, err)
		return p
	}

	t.Run("only the organizer may manage the roster", func(t *testing.T) {
		svc, _, _ := newTestEngine(publishedEvent(1, 10))
		p := register(t, svc, 42)

		_, err := svc.SetParticipantStatus(context.Background(), 1, p.ID, domain.ParticipationConfirmed, 42)

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc, _, _ := newTestEngine(publishedEvent(1, 10))
		p := register(t, svc, 42)

		_, err := svc.SetParticipantStatus(context.Background(), 1, p.ID, "approved", 1)

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("participant must belong to the event", func(t *testing.T) {
		svc, _, _ := newTestEngine(publishedEvent(1, 10), publishedEvent(2, 10))
		p := register(t, svc, 42)

		_, err := svc.SetParticipantStatus(context.Background(), 2, p.ID, domain.ParticipationConfirmed, 1)

		assert.ErrorIs(t, err, ErrParticipantNotFound)
	})

	t.Run("no-op transition is rejected", func(t *testing.T) {
		svc, _, _ := newTestEngine(publishedEvent(1, 10))
		p := register(t, svc, 42)

		_, err := svc.SetParticipantStatus(context.Background(), 1, p.ID, domain.ParticipationPending, 1)

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("confirming increments, unconfirming decrements", func(t *testing.T) {
		svc, store, _ := newTestEngine(publishedEvent(1, 10))
		p := register(t, svc, 42)

		update, err := svc.SetParticipantStatus(context.Background(), 1, p.ID, domain.ParticipationConfirmed, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.ParticipationPending, update.OldStatus)
		assert.Equal(t, domain.ParticipationConfirmed, update.NewStatus)
		assert.Equal(t, 1, store.event(1).CurrentParticipants)

		update, err = svc.SetParticipantStatus(context.Background(), 1, p.ID, domain.ParticipationAttended, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, store.event(1).CurrentParticipants)
		assert.Equal(t, domain.ParticipationAttended, update.NewStatus)
	})

	t.Run("pending to attended skips the counter entirely", func(t *testing.T) {
		svc, store, _ := newTestEngine(publishedEvent(1, 10))
		p := register(t, svc, 42)

		_, err := svc.SetParticipantStatus(context.Background(), 1, p.ID, domain.ParticipationAttended, 1)

		require.NoError(t, err)
		assert.Equal(t, 0, store.event(1).CurrentParticipants)
	})

	t.Run("confirming past capacity reports the event full", func(t *testing.T) {
		svc, store, _ := newTestEngine(publishedEvent(1, 1))
		a := register(t, svc, 42)
		b := register(t, svc, 43)

		_, err := svc.SetParticipantStatus(context.Background(), 1, a.ID, domain.ParticipationConfirmed, 1)
		require.NoError(t, err)

		_, err = svc.SetParticipantStatus(context.Background(), 1, b.ID, domain.ParticipationConfirmed, 1)
		assert.ErrorIs(t, err, ErrEventFull)
		assert.Equal(t, 1, store.event(1).CurrentParticipants)

		got, ok := store.participation(1, 43)
		require.True(t, ok)
		assert.Equal(t, domain.ParticipationPending, got.Status, "failed confirmation must roll back")
	})

	t.Run("organizer cancellation frees a slot for the next registration", func(t *testing.T) {
		ev := publishedEvent(1, 1)
		svc, store, _ := newTestEngine(ev)
		a := register(t, svc, 42)

		_, err := svc.SetParticipantStatus(context.Background(), 1, a.ID, domain.ParticipationConfirmed, 1)
		require.NoError(t, err)
		require.Equal(t, 1, store.event(1).CurrentParticipants)

		_, err = svc.Register(context.Background(), 1, 43)
		assert.ErrorIs(t, err, ErrEventFull)

		_, err = svc.SetParticipantStatus(context.Background(), 1, a.ID, domain.ParticipationCancelled, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, store.event(1).CurrentParticipants)

		_, err = svc.Register(context.Background(), 1, 43)
		assert.NoError(t, err)
	})
}

// Mirrors the capacity walkthrough: pending registrations never move the
// counter, confirmations fill the event, and the next registration bounces.
func TestParticipationService_CapacityScenario(t *testing.T) {
	svc, store, _ := newTestEngine(publishedEvent(1, 2))
	ctx := context.Background()

	a, err := svc.Register(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, store.event(1).CurrentParticipants)

	_, err = svc.SetParticipantStatus(ctx, 1, a.ID, domain.ParticipationConfirmed, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.event(1).CurrentParticipants)

	b, err := svc.Register(ctx, 1, 11)
	require.NoError(t, err)
	_, err = svc.SetParticipantStatus(ctx, 1, b.ID, domain.ParticipationConfirmed, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, store.event(1).CurrentParticipants)

	_, err = svc.Register(ctx, 1, 12)
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestParticipationService_ConcurrentConfirmations(t *testing.T) {
	const users = 20
	const capacity = 5

	svc, store, _ := newTestEngine(publishedEvent(1, capacity))
	ctx := context.Background()

	ids := make([]uint, 0, users)
	for i := uint(0); i < users; i++ {
		p, err := svc.Register(ctx, 1, 100+i)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	var wg sync.WaitGroup
	errs := make([]error, users)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			_, errs[i] = svc.SetParticipantStatus(ctx, 1, id, domain.ParticipationConfirmed, 1)
		}(i, id)
	}
	wg.Wait()

	confirmed := 0
	for _, err := range errs {
		if err == nil {
			confirmed++
		} else {
			assert.ErrorIs(t, err, ErrEventFull)
		}
	}

	assert.Equal(t, capacity, confirmed)
	assert.Equal(t, capacity, store.event(1).CurrentParticipants)
}

func TestParticipationService_DispatchCarriesEventMetadata(t *testing.T) {
	svc, _, dispatcher := newTestEngine(publishedEvent(7, 3))

	before := time.Now()
	_, err := svc.Register(context.Background(), 7, 42)
	require.NoError(t, err)

	events := dispatcher.dispatched()
	require.Len(t, events, 1)
	assert.Equal(t, uint(7), events[0].EventID)
	assert.Equal(t, "Go Meetup", events[0].EventTitle)
	assert.False(t, events[0].OccurredAt.Before(before))
}
