package feedback

import (
	"sync"
	"time"
)

// Observer is called for each delivered message.
type Observer func(msg Message)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier fans feedback messages out to observers.
type Notifier struct {
	mu sync.RWMutex

	// Observers receiving every message
	observers map[uint64]Observer

	// Observers restricted to one kind
	kindObservers map[Kind]map[uint64]Observer

	nextID uint64

	async  bool
	buffer chan Message
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool

	now func() time.Time
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables queued delivery from a dedicated goroutine.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Message, bufferSize)
		}
	}
}

// WithClock sets the time source used to stamp messages.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		if now != nil {
			n.now = now
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		observers:     make(map[uint64]Observer),
		kindObservers: make(map[Kind]map[uint64]Observer),
		done:          make(chan struct{}),
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all messages.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeKinds registers an observer for the given kinds only.
func (n *Notifier) SubscribeKinds(observer Observer, kinds ...Kind) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	for _, k := range kinds {
		if n.kindObservers[k] == nil {
			n.kindObservers[k] = make(map[uint64]Observer)
		}
		n.kindObservers[k][id] = observer
	}

	return &Subscription{id: id, notifier: n}
}

// Report publishes msg. A zero Time is stamped with the current time.
// Messages published after Close are dropped.
func (n *Notifier) Report(msg Message) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if msg.Time.IsZero() {
		msg.Time = n.now()
	}

	if n.async {
		select {
		case n.buffer <- msg:
		case <-n.done:
		}
		return
	}

	n.deliver(msg)
}

// Close stops delivery after draining queued messages.
// It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.observers, id)
	for k, observers := range n.kindObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.kindObservers, k)
		}
	}
}

func (n *Notifier) deliver(msg Message) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	for _, obs := range n.kindObservers[msg.Kind] {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(msg)
	}
}

func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case msg := <-n.buffer:
			n.deliver(msg)
		case <-n.done:
			// Drain remaining buffered messages
			for {
				select {
				case msg := <-n.buffer:
					n.deliver(msg)
				default:
					return
				}
			}
		}
	}
}
