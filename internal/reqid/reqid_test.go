package reqid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewContextStoresID(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, id, got)
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	require.False(t, ok)
}

func TestNestedContextsKeepDistinctIDs(t *testing.T) {
	outer, outerID := NewContext(context.Background())
	inner, innerID := NewContext(outer)

	got, _ := FromContext(inner)
	require.Equal(t, innerID, got)
	require.NotEqual(t, outerID, innerID)

	got, _ = FromContext(outer)
	require.Equal(t, outerID, got)
}
