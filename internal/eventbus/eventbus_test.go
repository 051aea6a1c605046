package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type started struct{ name string }
type finished struct{ name string }

func TestBus_DispatchesByType(t *testing.T) {
	b := New()
	var got []string
	On(b, func(_ context.Context, e started) { got = append(got, "start:"+e.name) })
	On(b, func(_ context.Context, e finished) { got = append(got, "finish:"+e.name) })

	Emit(b, context.Background(), started{"a"})
	Emit(b, context.Background(), finished{"a"})
	Emit(b, context.Background(), 42)

	require.Equal(t, []string{"start:a", "finish:a"}, got)
}

func TestBus_UnsubscribeRemovesOnlyThatHandler(t *testing.T) {
	b := New()
	var first, second int
	// Both handlers come from the same closure literal.
	subscribe := func(counter *int) func() {
		return On(b, func(context.Context, started) { *counter++ })
	}
	unsubFirst := subscribe(&first)
	subscribe(&second)

	unsubFirst()
	unsubFirst()
	Emit(b, context.Background(), started{})

	require.Equal(t, 0, first)
	require.Equal(t, 1, second)
}

func TestGlobalBus(t *testing.T) {
	Use(nil)
	Publish(context.Background(), started{"ignored"})

	b := New()
	Use(b)
	t.Cleanup(func() { Use(nil) })

	var names []string
	unsub := Subscribe(func(_ context.Context, e started) { names = append(names, e.name) })
	Publish(context.Background(), started{"x"})
	unsub()
	Publish(context.Background(), started{"y"})

	require.Equal(t, []string{"x"}, names)
	require.Same(t, b, Global())
}
