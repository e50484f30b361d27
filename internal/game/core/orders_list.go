package core

import "fmt"

// OrdersList is a player's queue of pending orders. It owns its orders;
// removing an order from the list discards it.
type OrdersList struct {
	orders []Order
}

func NewOrdersList() *OrdersList {
	return &OrdersList{}
}

func (l *OrdersList) Add(o Order) { l.orders = append(l.orders, o) }
func (l *OrdersList) Len() int    { return len(l.orders) }
func (l *OrdersList) Clear()      { l.orders = nil }

// At returns the order at index i.
func (l *OrdersList) At(i int) (Order, error) {
	if i < 0 || i >= len(l.orders) {
		return nil, fmt.Errorf("orders index %d: %w", i, ErrIndexOutOfRange)
	}
	return l.orders[i], nil
}

// Orders returns a snapshot of the queue.
func (l *OrdersList) Orders() []Order {
	out := make([]Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Remove deletes and returns the order at index i.
func (l *OrdersList) Remove(i int) (Order, error) {
	o, err := l.At(i)
	if err != nil {
		return nil, err
	}
	l.orders = append(l.orders[:i], l.orders[i+1:]...)
	return o, nil
}

// Move relocates the order at index from so that it ends up at index to.
func (l *OrdersList) Move(from, to int) error {
	if to < 0 || to >= len(l.orders) {
		return fmt.Errorf("orders index %d: %w", to, ErrIndexOutOfRange)
	}
	o, err := l.Remove(from)
	if err != nil {
		return err
	}
	l.orders = append(l.orders, nil)
	copy(l.orders[to+1:], l.orders[to:])
	l.orders[to] = o
	return nil
}

// PopFront removes and returns the first order.
func (l *OrdersList) PopFront() (Order, bool) {
	if len(l.orders) == 0 {
		return nil, false
	}
	o := l.orders[0]
	l.orders = l.orders[1:]
	return o, true
}

// TakeType removes every order of the given type, preserving relative order,
// and returns them.
func (l *OrdersList) TakeType(t OrderType) []Order {
	var taken []Order
	kept := l.orders[:0]
	for _, o := range l.orders {
		if o.Type() == t {
			taken = append(taken, o)
		} else {
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(l.orders); i++ {
		l.orders[i] = nil
	}
	l.orders = kept
	return taken
}
