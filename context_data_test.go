package hostmux

import (
	"testing"

	"github.com/rohanthewiz/assert"
)

func TestContextDataBag(t *testing.T) {
	s := NewServer()
	ctx := s.newContext()

	// Empty bag
	assert.False(t, ctx.Has("missing"))
	assert.Nil(t, ctx.Get("missing"))

	// Mixed value types
	ctx.Set("tenant", "acme")
	ctx.Set("attempts", 7)
	ctx.Set("scopes", []string{"read", "write"})

	assert.Equal(t, ctx.Get("tenant"), "acme")
	assert.Equal(t, ctx.Get("attempts"), 7)
	assert.True(t, ctx.Has("scopes"))

	scopes := ctx.Get("scopes").([]string)
	assert.Equal(t, len(scopes), 2)
	assert.Equal(t, scopes[1], "write")

	// Overwrite keeps the latest value
	ctx.Set("attempts", 8)
	assert.Equal(t, ctx.Get("attempts"), 8)

	// Delete removes only its key; deleting again is harmless
	ctx.Delete("tenant")
	ctx.Delete("tenant")
	assert.False(t, ctx.Has("tenant"))
	assert.True(t, ctx.Has("attempts"))

	// Struct values round-trip by type assertion
	type session struct {
		ID    string
		Admin bool
		Quota int
	}
	ctx.Set("session", session{ID: "s-99", Admin: true, Quota: 250})
	got := ctx.Get("session").(session)
	assert.Equal(t, got.ID, "s-99")
	assert.True(t, got.Admin)
	assert.Equal(t, got.Quota, 250)

	// Clean empties the bag and it is usable again afterward
	ctx.Clean()
	assert.False(t, ctx.Has("attempts"))
	assert.False(t, ctx.Has("scopes"))
	assert.False(t, ctx.Has("session"))

	ctx.Set("fresh", true)
	assert.Equal(t, ctx.Get("fresh"), true)
}

func TestContextDataZeroValue(t *testing.T) {
	// A zero context has no bag yet; reads, deletes and Clean must not panic
	ctx := &context{}

	assert.Nil(t, ctx.Get("any"))
	assert.False(t, ctx.Has("any"))
	ctx.Delete("any")
	ctx.Clean()

	// The first Set initializes the bag
	ctx.Set("key", "value")
	assert.True(t, ctx.Has("key"))
	assert.Equal(t, ctx.Get("key"), "value")
}

func TestContextResetClearsRequestState(t *testing.T) {
	s := NewServer()
	ctx := s.newContext()

	// Dirty every piece of per-request state a pooled context carries
	ctx.Set("leftover", 1)
	ctx.response.SetStatus(500)
	ctx.response.SetHeader("X-Stale", "yes")
	_ = ctx.WriteString("stale body")
	ctx.handlerCount = 3
	ctx.routed = true

	ctx.reset()

	assert.False(t, ctx.Has("leftover"))
	assert.Equal(t, ctx.response.Status(), 200)
	assert.Equal(t, len(ctx.response.Body()), 0)
	assert.Equal(t, ctx.response.Header("X-Stale"), "")
	assert.Equal(t, int(ctx.handlerCount), 0)
	assert.False(t, ctx.routed)
}
