package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-promo/models"
	"course-promo/poster"
)

func TestEmbeddedCatalog(t *testing.T) {
	repo, err := NewCatalogRepository("")
	require.NoError(t, err)

	catalog := repo.GetCatalog()
	assert.Equal(t, []string{"C", "Cpp", "CSharp", "Python"}, catalog.IDs())

	csharp, ok := catalog.Get("CSharp")
	require.True(t, ok)
	assert.Equal(t, "C#", csharp.Name)
	assert.Equal(t, "1,459฿", csharp.Price)
	assert.Equal(t, "rgba(139, 92, 246, 0.15)", csharp.Theme.Gradient)
	assert.Equal(t, 33, csharp.TopicCount())
	assert.Equal(t, "พื้นฐาน", csharp.Topics[0].Title)

	// Section order follows the file.
	c, _ := catalog.Get("C")
	assert.Equal(t, "Reference", c.Topics[len(c.Topics)-1].Title)

	assert.Equal(t, 918, poster.TotalPrice([]string{"C", "Python"}, catalog))
	assert.Equal(t, 3106, poster.TotalPrice(catalog.IDs(), catalog))
}

func TestNewCatalogRepositoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
offerings:
  - id: Go
    name: Go
    price: "990฿"
    theme: {gradient: "rgba(0, 173, 216, 0.2)"}
    topics:
      - title: Basics
        topics: [Syntax, Types]
`), 0o644))

	repo, err := NewCatalogRepository(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, repo.GetCatalog().IDs())

	_, err = NewCatalogRepository(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseCatalogRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "offerings: ["},
		{name: "empty", yaml: "offerings: []"},
		{name: "missing name", yaml: "offerings:\n  - id: X\n"},
		{name: "missing id", yaml: "offerings:\n  - name: X\n"},
		{name: "duplicate id", yaml: "offerings:\n  - {id: X, name: X}\n  - {id: X, name: Y}\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCatalog([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}

	_, err := ParseCatalog([]byte("offerings:\n  - {id: X, name: X}\n  - {id: X, name: Y}\n"))
	assert.ErrorIs(t, err, models.ErrDuplicateOffering)
}
