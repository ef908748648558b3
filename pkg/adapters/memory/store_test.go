package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/witgo/pkg/adapters/memory"
	"github.com/aretw0/witgo/pkg/domain"
	"github.com/aretw0/witgo/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunContextStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	original := domain.Context{"slot": "a"}
	require.NoError(t, store.Save(ctx, "s1", original))

	// Mutating the caller's map after Save must not leak into the store.
	original["slot"] = "b"

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a", loaded["slot"])

	// Mutating a loaded copy must not leak either.
	loaded["slot"] = "c"
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a", again["slot"])
}
