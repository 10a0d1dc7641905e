package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/depot/internal/core/domain"
)

func TestDepsEntry_DeclaredIsCopied(t *testing.T) {
	id := uuid.New()
	src := map[string]uuid.UUID{"Pub": id}

	entry := domain.NewDeclaredDeps(src)
	src["Other"] = uuid.New()

	assert.Equal(t, domain.Declared, entry.Kind)
	assert.Equal(t, 1, entry.Len())
	got, ok := entry.Get("Pub")
	assert.True(t, ok)
	assert.Equal(t, id, got)
	_, ok = entry.Get("Other")
	assert.False(t, ok)
}

func TestDepsEntry_EmptyDeclaredVersusFlat(t *testing.T) {
	empty := domain.NewDeclaredDeps(nil)
	flat := domain.FlatDeps()

	assert.Equal(t, domain.Declared, empty.Kind)
	assert.Equal(t, domain.NoProjectFile, flat.Kind)
	assert.Zero(t, empty.Len())
	assert.Zero(t, flat.Len())
	assert.NotEqual(t, empty.Kind, flat.Kind)
}

func TestDepsEntry_NamesSorted(t *testing.T) {
	entry := domain.NewDeclaredDeps(map[string]uuid.UUID{
		"Zebra": uuid.New(),
		"Apple": uuid.New(),
		"Mango": uuid.New(),
	})
	assert.Equal(t, []string{"Apple", "Mango", "Zebra"}, entry.Names())
}

func TestLookup_String(t *testing.T) {
	assert.Equal(t, "unknown", domain.LookupUnknown.String())
	assert.Equal(t, "missing", domain.LookupMissing.String())
	assert.Equal(t, "found", domain.LookupFound.String())
}
