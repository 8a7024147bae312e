package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"courier-payouts/internal/service/deliveries"
	testlog "courier-payouts/internal/testutil"
)

type fakeSession struct {
	ctx context.Context

	mu     sync.Mutex
	marked int
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(*sarama.ConsumerMessage, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked++
}

func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "" }
func (s *fakeSession) GenerationID() int32                      { return 0 }

func (s *fakeSession) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked
}

type fakeClaim struct {
	ch chan *sarama.ConsumerMessage
}

func (c fakeClaim) Topic() string              { return "t" }
func (c fakeClaim) Partition() int32           { return 0 }
func (c fakeClaim) InitialOffset() int64       { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.ch
}

func runClaim(t *testing.T, c *Consumer, payloads ...[]byte) (*fakeSession, error) {
	t.Helper()
	h := &groupHandler{c: c}
	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, len(payloads))
	for i, p := range payloads {
		msgCh <- &sarama.ConsumerMessage{Value: p, Offset: int64(i)}
	}
	close(msgCh)
	return sess, h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
}

func TestConsumeClaim_BadJSON_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, deliveries.Event) error {
			t.Fatal("handler must not be called")
			return nil
		},
	}

	sess, err := runClaim(t, c, []byte("not-json"), []byte(`{"order_id":"o1","shipping_cost":"abc"}`))
	require.NoError(t, err)
	require.Equal(t, 2, sess.MarkedCount())
	require.True(t, hasMsg(rec.Entries(), "kafka bad json"))
}

func TestConsumeClaim_EmptyOrderID_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, deliveries.Event) error {
			calls++
			return nil
		},
	}

	b, _ := json.Marshal(EventDTO{OrderID: "   ", Status: "delivered"})
	sess, err := runClaim(t, c, b)
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Equal(t, 0, calls)
	require.True(t, hasMsg(rec.Entries(), "kafka empty order_id"))
}

func TestConsumeClaim_PermanentError_SkipsButMarks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, deliveries.Event) error {
			return Permanent(errors.New("unknown courier"))
		},
	}

	sess, err := runClaim(t, c, []byte(`{"order_id":"o1","courier_id":3,"status":"delivered","shipping_cost":12.5}`))
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.True(t, hasMsg(rec.Entries(), "kafka permanent error, skipping message"))
}

func TestConsumeClaim_TransientError_StopsWithoutMarking(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	sentinel := errors.New("db down")
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, deliveries.Event) error {
			return sentinel
		},
	}

	b, _ := json.Marshal(EventDTO{OrderID: "o1", Status: "delivered"})
	sess, err := runClaim(t, c, b, b)
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 0, sess.MarkedCount())
	require.True(t, hasMsg(rec.Entries(), "kafka handle failed, retry"))
}

func TestConsumeClaim_Success_Marks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var got []deliveries.Event
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(_ context.Context, ev deliveries.Event) error {
			got = append(got, ev)
			return nil
		},
	}

	sess, err := runClaim(t, c,
		[]byte(`{"order_id":"o1","courier_id":7,"status":"delivered","shipping_cost":"35.50","delivered_at":"2024-08-01T18:00:00Z"}`),
		[]byte(`{"order_id":"o2","courier_id":7,"status":"created","shipping_cost":0}`),
	)
	require.NoError(t, err)
	require.Equal(t, 2, sess.MarkedCount())
	require.Len(t, got, 2)
	require.Equal(t, "o1", got[0].OrderID)
	require.Equal(t, int64(7), got[0].CourierID)
	require.Equal(t, "35.50", got[0].ShippingCost.StringFixed(2))
}

func hasMsg(entries []testlog.Entry, msg string) bool {
	for _, e := range entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}
