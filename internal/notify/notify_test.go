package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
	"github.com/Dannesh12/urban-slot-finder/pkg/retry"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	args := m.Called(ctx, rs)
	return args.Get(0).(kgo.ProduceResults)
}

func (m *MockProducer) Close() {
	m.Called()
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, Notification) error {
	return errors.New("sink down")
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(2)
	_, ok := r.Last()
	assert.False(t, ok)

	ctx := context.Background()
	require.NoError(t, r.Notify(ctx, Notification{Title: "a"}))
	require.NoError(t, r.Notify(ctx, Notification{Title: "b"}))
	require.NoError(t, r.Notify(ctx, Notification{Title: "c"}))

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "c", last.Title)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Title)
}

func TestMulti(t *testing.T) {
	r1, r2 := NewRecorder(0), NewRecorder(0)
	m := Multi{r1, failingNotifier{}, r2, NewLogNotifier(logger.NewNop())}

	err := m.Notify(context.Background(), Notification{Title: "Logged out", Variant: VariantDefault})
	assert.Error(t, err)

	// failures do not stop delivery to the rest
	_, ok := r1.Last()
	assert.True(t, ok)
	_, ok = r2.Last()
	assert.True(t, ok)
}

func TestKafkaNotifier(t *testing.T) {
	ctx := context.Background()
	n := Notification{
		Title:       "Welcome back!",
		Description: "Logged in as admin",
		Variant:     VariantDefault,
		UserID:      "1",
		At:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("publishes json keyed by user", func(t *testing.T) {
		p := new(MockProducer)
		p.On("ProduceSync", mock.Anything, mock.MatchedBy(func(rs []*kgo.Record) bool {
			if len(rs) != 1 || rs[0].Topic != "user.notifications" || string(rs[0].Key) != "1" {
				return false
			}
			var got Notification
			return json.Unmarshal(rs[0].Value, &got) == nil && got.Title == "Welcome back!"
		})).Return(kgo.ProduceResults{{}}).Once()

		k := NewKafkaNotifierWithProducer(p, "user.notifications", 0)
		require.NoError(t, k.Notify(ctx, n))
		p.AssertExpectations(t)
	})

	t.Run("produce failure is returned", func(t *testing.T) {
		p := new(MockProducer)
		p.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: errors.New("no leader")}})

		k := NewKafkaNotifierWithProducer(p, "user.notifications", time.Second)
		assert.Error(t, k.Notify(ctx, n))
	})

	t.Run("transient produce failure is retried", func(t *testing.T) {
		p := new(MockProducer)
		p.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: errors.New("not leader for partition")}}).Once()
		p.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{}}).Once()

		k := NewKafkaNotifierWithProducer(p, "user.notifications", time.Second)
		k.retry = retry.Fixed(1, time.Millisecond)
		require.NoError(t, k.Notify(ctx, n))
		p.AssertExpectations(t)
	})

	t.Run("close closes producer", func(t *testing.T) {
		p := new(MockProducer)
		p.On("Close").Return().Once()

		NewKafkaNotifierWithProducer(p, "t", 0).Close()
		p.AssertExpectations(t)
	})
}
