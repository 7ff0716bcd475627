package memorybus

import "testing"

func TestBus_FanOut(t *testing.T) {
	b := New()
	ch1, cancel1 := b.Subscribe()
	defer cancel1()
	ch2, cancel2 := b.Subscribe()
	defer cancel2()

	b.Publish("hero.active", []byte(`{"index":1}`))

	e1 := <-ch1
	e2 := <-ch2
	if e1.Topic != "hero.active" {
		t.Fatalf("topic: want hero.active, got %q", e1.Topic)
	}
	if string(e2.Payload) != `{"index":1}` {
		t.Fatalf("payload: got %s", e2.Payload)
	}
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewWithBuffer(1)
	ch, cancel := b.Subscribe()
	defer cancel()

	b.Publish("a", nil)
	b.Publish("b", nil) // abandonné

	if e := <-ch; e.Topic != "a" {
		t.Fatalf("topic: want a, got %q", e.Topic)
	}
	select {
	case e := <-ch:
		t.Fatalf("unexpected event %q", e.Topic)
	default:
	}
}

func TestBus_CancelAndClose(t *testing.T) {
	b := New()
	ch, cancel := b.Subscribe()
	if n := b.Subscribers(); n != 1 {
		t.Fatalf("subscribers: want 1, got %d", n)
	}
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("channel still open after cancel")
	}
	if n := b.Subscribers(); n != 0 {
		t.Fatalf("subscribers: want 0, got %d", n)
	}

	ch2, _ := b.Subscribe()
	b.Close()
	if _, ok := <-ch2; ok {
		t.Fatalf("channel still open after Close")
	}

	ch3, cancel3 := b.Subscribe()
	defer cancel3()
	if _, ok := <-ch3; ok {
		t.Fatalf("subscribe after Close returned an open channel")
	}
	b.Publish("ignored", nil)
}
