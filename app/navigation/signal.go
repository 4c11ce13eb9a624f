// Package navigation carries the one-shot refresh request that the add
// form hands to the catalog view after a successful submission.
package navigation

// Event is a pending refresh. Notice is an acknowledgement to show once
// on arrival, and may be empty.
type Event struct {
	Notice string
}

// Signal is a coalescing, one-shot refresh flag shared by two views.
// The zero value is not usable; create one with NewSignal.
type Signal struct {
	ch chan Event
}

func NewSignal() *Signal {
	return &Signal{ch: make(chan Event, 1)}
}

// Request marks a refresh as pending. A request that has not been
// consumed yet is replaced, so the latest notice wins.
func (s *Signal) Request(notice string) {
	for {
		select {
		case s.ch <- Event{Notice: notice}:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// Consume returns the pending event and clears it.
func (s *Signal) Consume() (Event, bool) {
	select {
	case ev := <-s.ch:
		return ev, true
	default:
		return Event{}, false
	}
}
