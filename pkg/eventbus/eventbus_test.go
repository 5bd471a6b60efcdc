package eventbus

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/talentflowhq/talentflow/pkg/logging"
)

type args struct {
	data interface{}
}

func TestPublisher_Publish_NoSubscribers(t *testing.T) {
	type other struct {
		data interface{}
	}
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	log.SetLevel(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *args) {
		t.Error("should not be called")
	})
	publisher.Publish(&other{data: "test"})

	if output := logBuffer.String(); output == "" {
		t.Error("should have logged")
	} else if !strings.Contains(output, "eventbus.Publish: no matching subscribers") {
		t.Errorf("should have contained no matching subscribers but got: %q", output)
	}
}

func TestPublisher_Subscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	called := false
	var data interface{}
	publisher.Subscribe(func(e *args) {
		called = true
		data = e.data
	})
	publisher.Publish(&args{data: "test"})
	if !called {
		t.Error("should be called")
	}
	if data != "test" {
		t.Errorf("expected: %v, got: %v", "test", data)
	}
}

func TestPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.PanicLevel))
	removedCalled := false
	removed := func(e *args) { removedCalled = true }
	keptCalled := false
	kept := func(e *args) { keptCalled = true }

	publisher.Subscribe(removed)
	publisher.Subscribe(kept)
	if publisher.SubscribersCount() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", publisher.SubscribersCount())
	}

	publisher.Unsubscribe(removed)
	if publisher.SubscribersCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", publisher.SubscribersCount())
	}

	publisher.Publish(&args{data: "test"})
	if removedCalled {
		t.Error("removed handler should not be called")
	}
	if !keptCalled {
		t.Error("remaining handler should be called")
	}
}

func TestPublisher_PanickingHandlerDoesNotPropagate(t *testing.T) {
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *args) {
		panic("boom")
	})
	publisher.Publish(&args{data: "test"})
	if !strings.Contains(logBuffer.String(), "panicked") {
		t.Errorf("expected panic to be logged, got: %q", logBuffer.String())
	}
}

func TestMatchSignature(t *testing.T) {
	type first struct{}
	type second struct{}
	if !MatchSignature(func(e *first) {}, []interface{}{&first{}}) {
		t.Error("expected true")
	}
	if MatchSignature(func(e *first) {}, []interface{}{&second{}}) {
		t.Error("expected false")
	}
	if MatchSignature(func(e *first) {}, []interface{}{}) {
		t.Error("expected false")
	}
	if MatchSignature(func(e *first) {}, []interface{}{&first{}, &first{}}) {
		t.Error("expected false")
	}
	if !MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}) {
		t.Error("expected true")
	}
}
