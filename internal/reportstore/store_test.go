package reportstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javerbukh/jwebbinar-prep/report"
)

func openStore(t *testing.T, now func() time.Time) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "db", "runs.db"), WithNow(now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func sampleReport(target string, sigma float64) report.Report {
	return report.Report{
		Target: target,
		Entries: []report.Entry{
			{Section: report.SectionDispersion, Name: "sigma", Value: report.Value{Value: sigma, Unit: "km/s"}},
			{Section: report.SectionDispersion, Name: "log_black_hole_mass", Value: report.Value{Value: 7.37}},
		},
		Caveats: []string{"lower limit"},
	}
}

func clock(start time.Time) func() time.Time {
	n := 0

	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Second)
	}
}

func TestSaveGet(t *testing.T) {
	start := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s := openStore(t, clock(start))

	r := sampleReport("NGC 4151", 129.5)

	run, err := s.Save(r)
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, start.Add(time.Second), run.CreatedAt)

	want, err := report.Digest(r)
	require.NoError(t, err)
	assert.Equal(t, want, run.Digest)

	got, err := s.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "NGC 4151", got.Target)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, r, got.Report)
}

func TestGetUnknown(t *testing.T) {
	s := openStore(t, time.Now)

	_, err := s.Get("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get("not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := openStore(t, clock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	var ids []string

	for i, target := range []string{"NGC 4151", "NGC 1068", "M87"} {
		run, err := s.Save(sampleReport(target, 100+float64(i)))
		require.NoError(t, err)

		ids = append(ids, run.ID)
	}

	all, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, "M87", all[0].Target)
	assert.Equal(t, ids[0], all[2].ID)

	two, err := s.List(2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := Open(path)
	require.NoError(t, err)

	run, err := s.Save(sampleReport("NGC 4151", 129.5))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Digest, got.Digest)
}
