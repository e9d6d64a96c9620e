package common

// Subject holds a value and notifies subscribers synchronously whenever it
// changes. Preferences, visibility and the resolved effect policy are all
// subjects so dependents re-derive immediately instead of polling.
type Subject[T comparable] struct {
	value  T
	nextID int
	subs   map[int]func(T)
	order  []int
}

// NewSubject returns a subject holding initial.
func NewSubject[T comparable](initial T) *Subject[T] {
	return &Subject[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (s *Subject[T]) Get() T {
	return s.value
}

// Set stores v and notifies subscribers when it differs from the current value.
func (s *Subject[T]) Set(v T) {
	if v == s.value {
		return
	}
	s.value = v
	for _, id := range append([]int(nil), s.order...) {
		if fn, ok := s.subs[id]; ok {
			fn(v)
		}
	}
}

// Subscribe registers fn and returns the function that removes it.
// fn is not called with the current value.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	return func() {
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, o := range s.order {
			if o == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (s *Subject[T]) Subscribers() int {
	return len(s.subs)
}
