package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Value int `json:"value"`
}

func newTestDoc() *testDoc { return &testDoc{} }

func TestJSONFileRoundTrip(t *testing.T) {
	f := newJSONFile(t.TempDir(), "doc.json")

	err := update(f, newTestDoc, func(doc *testDoc) (bool, error) {
		doc.Value = 7
		return true, nil
	})
	require.NoError(t, err)

	err = view(f, newTestDoc, func(doc *testDoc) error {
		require.Equal(t, 7, doc.Value)
		return nil
	})
	require.NoError(t, err)
}

func TestJSONFileMissingFileIsEmptyDocument(t *testing.T) {
	f := newJSONFile(t.TempDir(), "absent.json")

	err := view(f, newTestDoc, func(doc *testDoc) error {
		require.Zero(t, doc.Value)
		return nil
	})
	require.NoError(t, err)
}

func TestJSONFileUnchangedSkipsWrite(t *testing.T) {
	dir := t.TempDir()
	f := newJSONFile(dir, "doc.json")

	err := update(f, newTestDoc, func(doc *testDoc) (bool, error) {
		doc.Value = 99
		return false, nil
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "doc.json"))
	require.True(t, os.IsNotExist(statErr), "unchanged update still wrote the file")
}

func TestJSONFileCorruptDocumentFailsLoudly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte("{nope"), 0o644))

	f := newJSONFile(dir, "doc.json")
	err := view(f, newTestDoc, func(doc *testDoc) error { return nil })
	require.Error(t, err)
}

func TestJSONFileLeavesNoTempBehind(t *testing.T) {
	dir := t.TempDir()
	f := newJSONFile(dir, "doc.json")

	err := update(f, newTestDoc, func(doc *testDoc) (bool, error) {
		doc.Value = 1
		return true, nil
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "doc.json", entries[0].Name())
}
