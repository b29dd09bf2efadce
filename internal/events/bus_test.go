package events

import (
	"encoding/json"
	"sync"
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan EgressCreatedEvent, 1)

	unsub := bus.Subscribe(func(e EgressCreatedEvent) {
		received <- e
	})
	defer unsub()

	ev := EgressCreatedEvent{
		Channel:   "main",
		EgressID:  "egress-1",
		Service:   "youtube",
		Timestamp: "2025-01-27T10:30:00Z",
	}
	bus.Publish(ev)

	got := <-received
	if got != ev {
		t.Errorf("received %+v, want %+v", got, ev)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan ServiceSelectedEvent, 1)

	unsub := bus.Subscribe(func(e ServiceSelectedEvent) {
		received <- e
	})

	bus.Publish(ServiceSelectedEvent{Service: "twitch"})
	<-received

	unsub()

	bus.Publish(ServiceSelectedEvent{Service: "youtube"})
	select {
	case <-received:
		t.Fatal("received an event after unsubscribe")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_TypeSafety(t *testing.T) {
	bus := New()

	profileReceived := make(chan bool, 1)
	skillsReceived := make(chan bool, 1)

	unsub1 := bus.Subscribe(func(_ ProfileChangedEvent) {
		profileReceived <- true
	})
	defer unsub1()

	unsub2 := bus.Subscribe(func(_ SkillsReloadedEvent) {
		skillsReceived <- true
	})
	defer unsub2()

	bus.Publish(ProfileChangedEvent{MediaType: "video", Encoder: "libx264"})
	<-profileReceived

	select {
	case <-skillsReceived:
		t.Fatal("skills subscriber received a ProfileChangedEvent")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_ThreadSafety(_ *testing.T) {
	bus := New()
	var wg sync.WaitGroup
	numGoroutines := 10
	eventsPerGoroutine := 100
	expected := numGoroutines * eventsPerGoroutine

	receivedCh := make(chan bool, expected)

	unsub := bus.Subscribe(func(_ ProfileChangedEvent) {
		receivedCh <- true
	})
	defer unsub()

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range eventsPerGoroutine {
				bus.Publish(ProfileChangedEvent{
					MediaType: "audio",
					Timestamp: time.Now().Format(time.RFC3339),
				})
			}
		}()
	}

	wg.Wait()

	for range expected {
		<-receivedCh
	}
}

func TestBus_UnknownHandler(_ *testing.T) {
	bus := New()
	unsub := bus.Subscribe(func(string) {})
	unsub()

	var nilBus *Bus
	nilBus.Publish(EgressCreatedEvent{})
}

func TestEventJSONSerialization(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		key   string
	}{
		{"ServiceSelectedEvent", ServiceSelectedEvent{Channel: "main", Service: "youtube"}, "service"},
		{"ProfileChangedEvent", ProfileChangedEvent{MediaType: "video", Automatic: true}, "media_type"},
		{"EgressCreatedEvent", EgressCreatedEvent{EgressID: "e1"}, "egress_id"},
		{"SkillsReloadedEvent", SkillsReloadedEvent{FFmpegVersion: "5.1.2"}, "ffmpeg_version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.event)
			if err != nil {
				t.Fatalf("Failed to marshal: %v", err)
			}

			var result map[string]any
			if unmarshalErr := json.Unmarshal(data, &result); unmarshalErr != nil {
				t.Fatalf("Failed to unmarshal: %v", unmarshalErr)
			}

			if _, ok := result[tt.key]; !ok {
				t.Errorf("%s missing key %q: %s", tt.name, tt.key, data)
			}
		})
	}
}

func TestSubscribeToChannel(t *testing.T) {
	bus := New()
	ch := make(chan any, 10)

	unsub := SubscribeToChannel[EgressCreatedEvent](bus, ch)
	defer unsub()

	bus.Publish(EgressCreatedEvent{EgressID: "e1"})

	received := <-ch
	ev, ok := received.(EgressCreatedEvent)
	if !ok {
		t.Fatalf("received %T, want EgressCreatedEvent", received)
	}
	if ev.EgressID != "e1" {
		t.Errorf("EgressID = %q, want e1", ev.EgressID)
	}
}

func TestSubscribeToChannel_NonBlocking(_ *testing.T) {
	bus := New()
	ch := make(chan any)

	unsub := SubscribeToChannel[ProfileChangedEvent](bus, ch)
	defer unsub()

	done := make(chan bool, 1)
	go func() {
		bus.Publish(ProfileChangedEvent{MediaType: "video"})
		done <- true
	}()

	<-done
}
