package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ N int }
type pong struct{ N int }

func TestPublishDispatchesByType(t *testing.T) {
	Use(New())
	defer Use(nil)

	var pings, pongs []int
	Subscribe(func(ctx context.Context, e ping) { pings = append(pings, e.N) })
	Subscribe(func(ctx context.Context, e pong) { pongs = append(pongs, e.N) })

	Publish(context.Background(), ping{N: 1})
	Publish(context.Background(), pong{N: 2})
	Publish(context.Background(), ping{N: 3})

	require.Equal(t, []int{1, 3}, pings)
	require.Equal(t, []int{2}, pongs)
}

func TestUnsubscribe(t *testing.T) {
	Use(New())
	defer Use(nil)

	var got []int
	unsubscribe := Subscribe(func(ctx context.Context, e ping) { got = append(got, e.N) })

	Publish(context.Background(), ping{N: 1})
	unsubscribe()
	Publish(context.Background(), ping{N: 2})

	require.Equal(t, []int{1}, got)
}

func TestNilBusIsSafe(t *testing.T) {
	Use(nil)
	require.NotPanics(t, func() {
		Publish(context.Background(), ping{N: 1})
		unsubscribe := Subscribe(func(ctx context.Context, e ping) {})
		unsubscribe()
	})
}

func TestMultipleHandlersSameType(t *testing.T) {
	Use(New())
	defer Use(nil)

	var a, b int
	Subscribe(func(ctx context.Context, e ping) { a++ })
	Subscribe(func(ctx context.Context, e ping) { b++ })

	Publish(context.Background(), ping{})
	require.Equal(t, 1, a)
	require.Equal(t, 1, b)
}
