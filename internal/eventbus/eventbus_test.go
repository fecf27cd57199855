package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"rentaldash/internal/domain"
)

func TestPublishDeliversInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	defer b.Close()

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})

	b.Subscribe(EventAlert, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.(AlertEvent).Message)
		if len(got) == 3 {
			close(done)
		}
	})

	for _, m := range []string{"uno", "dos", "tres"} {
		b.Publish(AlertEvent{Level: domain.AlertSuccess, Message: m})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("events not delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"uno", "dos", "tres"}, got)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	defer b.Close()

	first := make(chan DomainEvent, 4)
	second := make(chan DomainEvent, 4)
	unsubscribe := b.Subscribe(EventEntityChanged, func(e DomainEvent) { first <- e })
	b.Subscribe(EventEntityChanged, func(e DomainEvent) { second <- e })

	unsubscribe()
	b.Publish(EntityChangedEvent{Entity: "clientes", Kind: domain.ChangeLoaded})

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber not called")
	}
	assert.Empty(t, first)
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	defer b.Close()

	delivered := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { delivered <- struct{}{} })

	b.Publish(ErrorEvent{Operation: "fetch", Message: "falló"})

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler not called after panic")
	}
}

func TestPublishAfterCloseIsIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	b.Close()
	require.NotPanics(t, func() {
		b.Publish(AlertEvent{Message: "late"})
		b.Close()
	})
}
