package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmit_RegistrationOrder(t *testing.T) {
	var s Signal[int]
	var got []string
	s.Connect(func(v int) { got = append(got, "a") })
	s.Connect(func(v int) { got = append(got, "b") })
	s.Connect(func(v int) { got = append(got, "c") })

	s.Emit(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestDisconnect(t *testing.T) {
	var s Signal[string]
	var got []string
	first := s.Connect(func(v string) { got = append(got, "first:"+v) })
	s.Connect(func(v string) { got = append(got, "second:"+v) })

	first.Disconnect()
	first.Disconnect() // idempotent
	s.Emit("x")

	assert.Equal(t, []string{"second:x"}, got)
	assert.Equal(t, 1, s.Len())
}

func TestDisconnectDuringEmit(t *testing.T) {
	var s Signal[int]
	calls := 0
	var sub Subscription
	sub = s.Connect(func(int) {
		calls++
		sub.Disconnect()
	})
	s.Connect(func(int) { calls++ })

	s.Emit(1)
	assert.Equal(t, 2, calls, "both handlers run during the emission that disconnects")

	s.Emit(2)
	assert.Equal(t, 3, calls)
}

func TestZeroSubscription(t *testing.T) {
	var sub Subscription
	assert.NotPanics(t, sub.Disconnect)
}

func TestGroup_DisconnectAll(t *testing.T) {
	var a Signal[int]
	var b Signal[bool]
	var g Group
	g.Add(a.Connect(func(int) {}))
	g.Add(a.Connect(func(int) {}))
	g.Add(b.Connect(func(bool) {}))

	g.DisconnectAll()
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, b.Len())
}
