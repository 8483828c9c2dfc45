package shop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidepost/internal/model"
)

func TestFileRepo_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	r, err := NewFileRepo(dir, nil)
	require.NoError(t, err)

	p, err := r.CreateProduct(model.Product{Name: "Mug", PriceCents: 1200})
	require.NoError(t, err)
	ready, err := r.Readiness()
	require.NoError(t, err)
	ready.DANVerified = true
	_, err = r.SetReadiness(ready)
	require.NoError(t, err)

	reopened, err := NewFileRepo(dir, nil)
	require.NoError(t, err)

	got, err := reopened.ListProducts()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].ID)
	assert.Equal(t, "Mug", got[0].Name)

	back, err := reopened.Readiness()
	require.NoError(t, err)
	assert.True(t, back.DANVerified)
}

func TestFileRepo_CorruptFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shop.json"), []byte("{broken"), 0o644))

	r, err := NewFileRepo(dir, nil)
	require.NoError(t, err)

	products, err := r.ListProducts()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFileRepo_MissingDirIsCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	r, err := NewFileRepo(dir, nil)
	require.NoError(t, err)

	_, err = r.CreateCustomer(model.Customer{Name: "Ada"})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "shop.json"))
	assert.NoError(t, err)
}
