package reconcile

import "sync"

// orderLocks serializes reconciliation per order. The reserve step is a
// read-modify-write over inventory rows; two concurrent runs for the same
// order could otherwise double-reserve or under-reserve.
type orderLockTable struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

var orderLocks = &orderLockTable{locks: make(map[uint]*sync.Mutex)}

func (t *orderLockTable) lock(orderID uint) *sync.Mutex {
	t.mu.Lock()
	m, ok := t.locks[orderID]
	if !ok {
		m = &sync.Mutex{}
		t.locks[orderID] = m
	}
	t.mu.Unlock()

	m.Lock()
	return m
}
