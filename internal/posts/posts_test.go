package posts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrdinal(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"0_2024-01-01-first-post.json", 0, false},
		{"12_2024-06-30-a-dozen.json", 12, false},
		{"nounderscore.json", 0, true},
		{"_leading-underscore.json", 0, true},
		{"abc_not-numeric.json", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseOrdinal(tt.name)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
			continue
		}
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "hello-world", Slug("Hello World"))
	assert.Equal(t, "already-sluggy", Slug("already-sluggy"))
	assert.Equal(t, "a--b", Slug("A  B"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "3_2024-05-01-my-post.json", Filename(3, "2024-05-01", "My Post"))
}

func TestRepository_WriteAssignsNextOrdinal(t *testing.T) {
	repo := NewRepository(t.TempDir())

	first, err := repo.Write(&Post{Title: "First Post", Body: "one", Date: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "0_2024-01-01-first-post.json", first)

	second, err := repo.Write(&Post{Title: "Second Post", Body: "two", Date: "2024-01-02"})
	require.NoError(t, err)
	assert.Equal(t, "1_2024-01-02-second-post.json", second)
}

func TestRepository_WriteLoadRoundtrip(t *testing.T) {
	repo := NewRepository(t.TempDir())

	name, err := repo.Write(&Post{
		Title: "Round Trip",
		Body:  "# heading\nbody text",
		Date:  "2024-03-03",
		Tags:  []string{"go", "testing"},
	})
	require.NoError(t, err)

	got, err := repo.Load(name)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PostID)
	assert.Equal(t, "Round Trip", got.Title)
	assert.Equal(t, "# heading\nbody text", got.Body)
	assert.Equal(t, "2024-03-03", got.Date)
	assert.Equal(t, []string{"go", "testing"}, got.Tags)
}

func TestRepository_ListIgnoresNonJSON(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "0_2024-01-01-a.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts"), 0755))

	names, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"0_2024-01-01-a.json"}, names)
}

func TestRepository_LoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "0_2024-01-01-bad.json"), []byte("{not json"), 0644))

	_, err := repo.Load("0_2024-01-01-bad.json")
	assert.Error(t, err)
}

func TestRepository_WrittenFileOmitsPostID(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	name, err := repo.Write(&Post{Title: "No ID", Body: "x", Date: "2024-01-01"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "post_id", "the ordinal lives in the file name only")
}
