package shops_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Spok95/wb-sales-bot/internal/domain/shops"
)

func newTestRegistry(t *testing.T) (*shops.Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shops.json")
	reg, err := shops.Load(shops.NewFileStore(path))
	require.NoError(t, err)
	return reg, path
}

func TestRegistryRoundTrip(t *testing.T) {
	reg, path := newTestRegistry(t)

	require.NoError(t, reg.Add("Первый", "key-1"))
	require.NoError(t, reg.Add("Второй", "key-2"))

	reloaded, err := shops.Load(shops.NewFileStore(path))
	require.NoError(t, err)
	require.Equal(t, reg.List(), reloaded.List())
	require.Equal(t, []shops.Shop{
		{Name: "Первый", APIKey: "key-1"},
		{Name: "Второй", APIKey: "key-2"},
	}, reloaded.List())
}

func TestAddDuplicate(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.Add("Магазин", "key-1"))
	err := reg.Add("Магазин", "key-2")
	require.ErrorIs(t, err, shops.ErrDuplicate)

	items := reg.List()
	require.Len(t, items, 1)
	require.Equal(t, "key-1", items[0].APIKey)
}

func TestRemove(t *testing.T) {
	reg, path := newTestRegistry(t)

	require.NoError(t, reg.Add("Магазин", "key"))
	require.NoError(t, reg.Remove("Магазин"))
	require.Empty(t, reg.List())

	reloaded, err := shops.Load(shops.NewFileStore(path))
	require.NoError(t, err)
	require.Empty(t, reloaded.List())
}

func TestRemoveNotFound(t *testing.T) {
	reg, _ := newTestRegistry(t)
	require.ErrorIs(t, reg.Remove("нет такого"), shops.ErrNotFound)
}

func TestFindByName(t *testing.T) {
	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.Add("Магазин", "key"))

	s, err := reg.FindByName("Магазин")
	require.NoError(t, err)
	require.Equal(t, "key", s.APIKey)

	_, err = reg.FindByName("другой")
	require.ErrorIs(t, err, shops.ErrNotFound)
}

func TestLoadMissingFile(t *testing.T) {
	reg, err := shops.Load(shops.NewFileStore(filepath.Join(t.TempDir(), "absent.json")))
	require.NoError(t, err)
	require.Empty(t, reg.List())
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shops.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := shops.Load(shops.NewFileStore(path))
	require.Error(t, err)
}

type failingStore struct{}

func (failingStore) Load() ([]shops.Shop, error) { return nil, nil }
func (failingStore) Save([]shops.Shop) error     { return errors.New("disk full") }

func TestAddKeepsRegistryOnSaveFailure(t *testing.T) {
	reg, err := shops.Load(failingStore{})
	require.NoError(t, err)

	require.Error(t, reg.Add("Магазин", "key"))
	require.Empty(t, reg.List())
}
