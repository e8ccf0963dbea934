package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"cryptoledger/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingSubscriber struct {
	name     string
	received []domain.Event
	fail     bool
}

func (s *recordingSubscriber) Name() string { return s.name }

func (s *recordingSubscriber) Receive(_ context.Context, e domain.Event) error {
	s.received = append(s.received, e)
	if s.fail {
		return errors.New("delivery refused")
	}
	return nil
}

func changeSetWith(types ...string) *domain.ChangeSet {
	cs := &domain.ChangeSet{}
	for _, typ := range types {
		cs.Record(domain.Event{Type: typ, Asset: "btc", Amount: 1})
	}
	return cs
}

func TestDispatcher_DeliversToAllSubscribersInOrder(t *testing.T) {
	d := NewDispatcher(zerolog.New(io.Discard))
	a := &recordingSubscriber{name: "a"}
	b := &recordingSubscriber{name: "b"}
	d.Register(a)
	d.Register(b)

	d.Dispatch(context.Background(), changeSetWith(domain.EventDepositReceived, domain.EventConfirmationUpdate))

	for _, sub := range []*recordingSubscriber{a, b} {
		assert.Len(t, sub.received, 2)
		assert.Equal(t, domain.EventDepositReceived, sub.received[0].Type)
		assert.Equal(t, domain.EventConfirmationUpdate, sub.received[1].Type)
	}
}

type countingSubscriber struct {
	name string
	n    atomic.Int64
}

func (s *countingSubscriber) Name() string { return s.name }

func (s *countingSubscriber) Receive(context.Context, domain.Event) error {
	s.n.Add(1)
	return nil
}

func TestDispatcher_ConcurrentRegisterAndDispatch(t *testing.T) {
	d := NewDispatcher(zerolog.New(io.Discard))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		name := "sub-" + strconv.Itoa(i)
		go func() {
			defer wg.Done()
			d.Register(&countingSubscriber{name: name})
		}()
		go func() {
			defer wg.Done()
			d.Dispatch(context.Background(), changeSetWith(domain.EventDepositReceived))
		}()
	}
	wg.Wait()

	assert.Len(t, d.subs, 8)
}

func TestDispatcher_FailingSubscriberDoesNotBlockOthers(t *testing.T) {
	d := NewDispatcher(zerolog.New(io.Discard))
	bad := &recordingSubscriber{name: "bad", fail: true}
	good := &recordingSubscriber{name: "good"}
	d.Register(bad)
	d.Register(good)

	d.Dispatch(context.Background(), changeSetWith(domain.EventDepositReceived))

	assert.Len(t, bad.received, 1)
	assert.Len(t, good.received, 1, "a failing subscriber must not stop delivery")
}

func TestDispatcher_FailedDeliveryIsNotRetried(t *testing.T) {
	d := NewDispatcher(zerolog.New(io.Discard))
	bad := &recordingSubscriber{name: "bad", fail: true}
	d.Register(bad)

	d.Dispatch(context.Background(), changeSetWith(domain.EventDepositReceived))

	assert.Len(t, bad.received, 1, "at-least-once here means exactly one attempt")
}

func TestDispatcher_NoSubscribersIsSafe(t *testing.T) {
	d := NewDispatcher(zerolog.New(io.Discard))
	d.Dispatch(context.Background(), changeSetWith(domain.EventDepositReceived))
}

func TestDispatcher_EmptyChangeSetIsNoOp(t *testing.T) {
	d := NewDispatcher(zerolog.New(io.Discard))
	sub := &recordingSubscriber{name: "sub"}
	d.Register(sub)

	d.Dispatch(context.Background(), &domain.ChangeSet{})
	d.Dispatch(context.Background(), nil)

	assert.Empty(t, sub.received)
}
