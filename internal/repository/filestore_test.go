package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schtekar/wells-fug/internal/models"
	"github.com/schtekar/wells-fug/pkg/utils"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir(), utils.NewLogger("debug", "text"))
	require.NoError(t, err)
	return fs
}

func TestNewFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	fs, err := NewFileStore(dir, utils.NewLogger("debug", "text"))
	require.NoError(t, err)
	require.NotNil(t, fs)

	// Каталог создается вместе с родителями
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = NewFileStore("", utils.NewLogger("debug", "text"))
	assert.Error(t, err)
}

func TestFileStore_SnapshotStoreRoundTrip(t *testing.T) {
	fs := newTestFileStore(t)

	doc := models.NewStoreDocument()
	doc.LastRollDate = "2025-06-01"
	snap := models.NewRigSnapshot()
	snap.Current = &models.PositionReport{
		RigName:   "ASKEPOTT",
		Latitude:  59.2,
		Longitude: 2.4,
		MsgTime:   time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
		Source:    models.SourceBarentswatch,
	}
	doc.Rigs["ASKEPOTT"] = snap

	require.NoError(t, fs.SaveSnapshotStore(doc))

	loaded, err := fs.LoadSnapshotStore()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", loaded.LastRollDate)
	require.Contains(t, loaded.Rigs, "ASKEPOTT")
	require.NotNil(t, loaded.Rigs["ASKEPOTT"].Current)
	assert.Equal(t, 59.2, loaded.Rigs["ASKEPOTT"].Current.Latitude)
}

func TestFileStore_LoadSnapshotStore_MissingFile(t *testing.T) {
	fs := newTestFileStore(t)

	doc, err := fs.LoadSnapshotStore()
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Empty(t, doc.Rigs)
	assert.Empty(t, doc.LastRollDate)
}

func TestFileStore_LoadSnapshotStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, utils.NewLogger("debug", "text"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, SnapshotsFile), []byte("{not json"), 0o644))

	// Поврежденный документ дает пустое хранилище, а не ошибку
	doc, err := fs.LoadSnapshotStore()
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Empty(t, doc.Rigs)
}

func TestFileStore_AnalysisRoundTrip(t *testing.T) {
	fs := newTestFileStore(t)

	well := "6407/8-8"
	doc := &models.AnalysisDocument{
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Rigs: map[string]*models.RigResult{
			"DEEPSEA YANTAI": {
				MMSI:             311000483,
				ReferenceHorizon: models.Horizon12h,
				LikelyWell:       &well,
				Status:           models.StatusOnSite,
				Confidence:       models.ConfidenceHigh,
			},
		},
		Wells: map[string]models.WellResult{
			well: {RigName: "DEEPSEA YANTAI", DistanceToRigM: 22.2},
		},
	}

	require.NoError(t, fs.SaveAnalysis(doc))

	loaded, err := fs.LoadAnalysis()
	require.NoError(t, err)
	require.Contains(t, loaded.Rigs, "DEEPSEA YANTAI")
	assert.Equal(t, models.StatusOnSite, loaded.Rigs["DEEPSEA YANTAI"].Status)
	require.NotNil(t, loaded.Rigs["DEEPSEA YANTAI"].LikelyWell)
	assert.Equal(t, well, *loaded.Rigs["DEEPSEA YANTAI"].LikelyWell)
	assert.InDelta(t, 22.2, loaded.Wells[well].DistanceToRigM, 0.001)
}

func TestFileStore_LoadAnalysis_MissingFile(t *testing.T) {
	fs := newTestFileStore(t)

	// В отличие от хранилища снимков, отсутствие анализа — ошибка
	_, err := fs.LoadAnalysis()
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_WellboresRoundTrip(t *testing.T) {
	fs := newTestFileStore(t)

	wells := []*models.Wellbore{
		{Name: "6407/8-8", RigName: "DEEPSEA YANTAI", EntryDate: "2025-05-25", Latitude: 64.3, Longitude: 7.8},
		{Name: "6407/8-9", RigName: "DEEPSEA YANTAI", Latitude: 64.35, Longitude: 7.9},
	}

	require.NoError(t, fs.SaveWellbores(wells))

	loaded, err := fs.LoadWellbores()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "6407/8-8", loaded[0].Name)
	assert.True(t, loaded[0].Activated())
	assert.False(t, loaded[1].Activated())
}

func TestFileStore_SaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, utils.NewLogger("debug", "text"))
	require.NoError(t, err)

	require.NoError(t, fs.SaveKeyStats(&models.KeyStats{NumRigs: 1}))
	require.NoError(t, fs.SaveKeyStats(&models.KeyStats{NumRigs: 2}))

	stats, err := fs.LoadKeyStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.NumRigs)

	// Временные файлы после записи не остаются
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KeyStatsFile, entries[0].Name())
}
