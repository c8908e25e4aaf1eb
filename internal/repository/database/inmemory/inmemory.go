package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/repository/database"
)

var _ database.Repository = (*inmemoryProvider)(nil)

type sequences struct {
	payment uint
	archive uint
	trash   uint
	log     uint
	group   uint
	member  uint
}

type dataset struct {
	payments map[uint]entities.Payment
	archive  map[uint]entities.ArchivedPayment
	trash    map[uint]entities.TrashedPayment
	logs     map[uint]entities.PaymentLog
	groups   map[uint]entities.Group
	members  map[uint]entities.Member
	seq      sequences
}

func newDataset() *dataset {
	return &dataset{
		payments: make(map[uint]entities.Payment),
		archive:  make(map[uint]entities.ArchivedPayment),
		trash:    make(map[uint]entities.TrashedPayment),
		logs:     make(map[uint]entities.PaymentLog),
		groups:   make(map[uint]entities.Group),
		members:  make(map[uint]entities.Member),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func (d *dataset) clone() *dataset {
	return &dataset{
		payments: cloneMap(d.payments),
		archive:  cloneMap(d.archive),
		trash:    cloneMap(d.trash),
		logs:     cloneMap(d.logs),
		groups:   cloneMap(d.groups),
		members:  cloneMap(d.members),
		seq:      d.seq,
	}
}

type state struct {
	mu   sync.RWMutex
	data *dataset
}

type inmemoryProvider struct {
	state *state
	// tx is the private copy of a running unit of work, nil outside of Transaction.
	tx  *dataset
	now func() time.Time
}

func NewInMemoryProvider() database.Repository {
	return &inmemoryProvider{
		state: &state{data: newDataset()},
		now:   time.Now,
	}
}

func (m *inmemoryProvider) Migrate() error {
	// Nothing to do here
	return nil
}

// Transaction works on a copy of the whole dataset and swaps it in when fn succeeds.
//
// Units of work are serialized, so the loser of two competing moves sees the state
// the winner committed.
func (m *inmemoryProvider) Transaction(ctx context.Context, fn func(tx database.Repository) error) error {
	if m.tx != nil {
		return fn(m)
	}

	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	working := m.state.data.clone()
	txProvider := &inmemoryProvider{
		state: m.state,
		tx:    working,
		now:   m.now,
	}

	if err := fn(txProvider); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	m.state.data = working
	return nil
}

func (m *inmemoryProvider) read(fn func(d *dataset)) {
	if m.tx != nil {
		fn(m.tx)
		return
	}

	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	fn(m.state.data)
}

func (m *inmemoryProvider) write(fn func(d *dataset) error) error {
	if m.tx != nil {
		return fn(m.tx)
	}

	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	return fn(m.state.data)
}

// nextID hands out the next value of seq, or takes over an explicit id and moves
// the sequence past it. Ids are never handed out twice.
func nextID(seq *uint, explicit uint) uint {
	if explicit == 0 {
		*seq++
		return *seq
	}

	if explicit > *seq {
		*seq = explicit
	}
	return explicit
}
