package cart

import "pizza-storefront/internal/domain"

// Subscribe returns a channel that receives every state stored for the
// session. Slow readers only see the latest state. cancel must be called to
// release the subscription.
func (s *Service) Subscribe(sessionID string) (<-chan domain.Cart, func()) {
	ch := make(chan domain.Cart, 1)

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	if s.subs[sessionID] == nil {
		s.subs[sessionID] = make(map[int]chan domain.Cart)
	}
	s.subs[sessionID][id] = ch
	s.subsMu.Unlock()

	cancel := func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		subs, ok := s.subs[sessionID]
		if !ok {
			return
		}
		if _, ok := subs[id]; !ok {
			return
		}
		delete(subs, id)
		close(ch)
		if len(subs) == 0 {
			delete(s.subs, sessionID)
		}
	}
	return ch, cancel
}

func (s *Service) publish(sessionID string, state domain.Cart) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs[sessionID] {
		select {
		case ch <- state:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}
