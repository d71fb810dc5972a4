package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryDirectory struct {
	ids    map[string]int64
	failOn string
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{ids: map[string]int64{}}
}

func (m *memoryDirectory) ensure(key string) (int64, error) {
	if key == m.failOn {
		return 0, errors.New("boom")
	}
	if id, ok := m.ids[key]; ok {
		return id, nil
	}
	id := int64(len(m.ids) + 1)
	m.ids[key] = id
	return id, nil
}

func (m *memoryDirectory) EnsureUniversity(_ context.Context, name string) (int64, error) {
	return m.ensure("u:" + name)
}

func (m *memoryDirectory) EnsureCampus(_ context.Context, universityID int64, name string) (int64, error) {
	return m.ensure(fmt.Sprintf("c:%d:%s", universityID, name))
}

func (m *memoryDirectory) EnsureCourse(_ context.Context, universityID, campusID int64, name string) (int64, error) {
	return m.ensure(fmt.Sprintf("k:%d:%d:%s", universityID, campusID, name))
}

const sample = `
universities:
  - name: UDSM
    campuses:
      - name: Main
        courses: [CS, " ", EE]
      - name: Mbeya
        courses: [Medicine]
`

func TestApplyIsIdempotent(t *testing.T) {
	file, err := Parse([]byte(sample))
	require.NoError(t, err)

	dir := newMemoryDirectory()
	stats, err := Apply(context.Background(), dir, file, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Stats{Universities: 1, Campuses: 2, Courses: 3}, stats)
	assert.Len(t, dir.ids, 6)

	_, err = Apply(context.Background(), dir, file, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, dir.ids, 6)
}

func TestApplyStopsOnError(t *testing.T) {
	file, err := Parse([]byte(sample))
	require.NoError(t, err)

	dir := newMemoryDirectory()
	dir.failOn = "c:1:Mbeya"
	stats, err := Apply(context.Background(), dir, file, zerolog.Nop())
	assert.ErrorContains(t, err, "campus Mbeya")
	assert.Equal(t, 1, stats.Campuses)
}

func TestParseRejectsUnnamedEntries(t *testing.T) {
	_, err := Parse([]byte("universities:\n  - name: ''\n  - name: X\n    campuses:\n      - courses: [A]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "university 1 has no name")
	assert.Contains(t, err.Error(), "campus 1 of X has no name")

	_, err = Parse([]byte("universities: [oops"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	file, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, file.Universities, 1)
	assert.Equal(t, "UDSM", file.Universities[0].Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
