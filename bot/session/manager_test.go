package session

import (
	"sync"
	"testing"
)

func TestManagerKeepsPendingPerUser(t *testing.T) {
	m := NewManager()

	m.Do(1, func(p Pending) (Pending, []Effect) {
		return Transition(p, BtnWeather)
	})
	m.Do(2, func(p Pending) (Pending, []Effect) {
		return Transition(p, BtnHotels)
	})

	if _, ok := m.PendingFor(1).(AwaitWeatherCity); !ok {
		t.Fatalf("user 1: %#v", m.PendingFor(1))
	}
	if _, ok := m.PendingFor(2).(AwaitHotelCity); !ok {
		t.Fatalf("user 2: %#v", m.PendingFor(2))
	}

	m.Reset(1)
	if m.PendingFor(1) != nil {
		t.Fatalf("user 1 after reset: %#v", m.PendingFor(1))
	}
}

func TestManagerSerializesSameUser(t *testing.T) {
	m := NewManager()
	const workers = 32

	// Each goroutine reads the pending state and writes a derived one.
	// With serialized transitions the counter must equal workers.
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			m.Do(7, func(p Pending) (Pending, []Effect) {
				counter++
				return p, nil
			})
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("transitions raced: counter=%d, want %d", counter, workers)
	}
}
