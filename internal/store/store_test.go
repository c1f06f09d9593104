package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "gigfin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBlobRoundTrip(t *testing.T) {
	s := openTemp(t)

	data, err := s.LoadBlob(SnapshotKey)
	require.NoError(t, err)
	require.Nil(t, data)

	require.NoError(t, s.SaveBlob(SnapshotKey, []byte(`{"transactions":[]}`)))
	require.NoError(t, s.SaveBlob(SnapshotKey, []byte(`{"transactions":null}`)))

	data, err = s.LoadBlob(SnapshotKey)
	require.NoError(t, err)
	require.Equal(t, `{"transactions":null}`, string(data))
}

func TestBlobSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gigfin.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveBlob(SnapshotKey, []byte("x")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	data, err := s.LoadBlob(SnapshotKey)
	require.NoError(t, err)
	require.Equal(t, "x", string(data))
}

func TestFileTracker(t *testing.T) {
	s := openTemp(t)

	require.NoError(t, s.TrackFile("/a.csv", FileInfo{MtimeNs: 1, SizeBytes: 10, Transactions: 3}))
	require.NoError(t, s.TrackFile("/b.csv", FileInfo{MtimeNs: 2, SizeBytes: 20}))
	require.NoError(t, s.TrackFile("/a.csv", FileInfo{MtimeNs: 5, SizeBytes: 11, Transactions: 4}))

	tracked, err := s.GetTrackedFiles()
	require.NoError(t, err)
	require.Len(t, tracked, 2)
	require.Equal(t, FileInfo{MtimeNs: 5, SizeBytes: 11, Transactions: 4}, tracked["/a.csv"])

	require.NoError(t, s.DeleteFileTracker("/b.csv"))
	tracked, err = s.GetTrackedFiles()
	require.NoError(t, err)
	require.Len(t, tracked, 1)
}

func TestScoreHistory(t *testing.T) {
	s := openTemp(t)

	require.NoError(t, s.RecordScore(ScoreRecord{Day: "2025-03-01", Karma: 40}))
	require.NoError(t, s.RecordScore(ScoreRecord{Day: "2025-03-03", Karma: 70, RunwayDays: 999}))
	require.NoError(t, s.RecordScore(ScoreRecord{Day: "2025-03-02", Karma: 50}))
	require.NoError(t, s.RecordScore(ScoreRecord{Day: "2025-03-01", Karma: 45}))

	all, err := s.ScoreHistory(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "2025-03-03", all[0].Day)
	require.Equal(t, 999, all[0].RunwayDays)
	require.Equal(t, 45, all[2].Karma)

	latest, err := s.ScoreHistory(1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	require.Equal(t, 70, latest[0].Karma)
}
