package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/hvacsim/internal/report"
	"github.com/jgoulah/hvacsim/internal/sampler"
	"github.com/jgoulah/hvacsim/internal/simulation"
	"github.com/jgoulah/hvacsim/pkg/models"
)

func simulate(seed uint64) *models.Run {
	src, _ := sampler.NewSource(seed)
	return simulation.Simulate(sampler.New(src), simulation.Options{Seed: seed})
}

func TestDB_WriteAndReadRows(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "energy.db"))
	require.NoError(t, err)
	defer db.Close()

	run := simulate(1)
	require.NoError(t, db.WriteTable(run))

	rows, err := db.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 24)
	assert.Equal(t, report.FormatRows(run), rows)
}

func TestDB_WriteReplacesPreviousRun(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "energy.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.WriteTable(simulate(1)))
	second := simulate(2)
	require.NoError(t, db.WriteTable(second))

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, 24, n)

	rows, err := db.Rows()
	require.NoError(t, err)
	assert.Equal(t, report.FormatRows(second), rows)
}

func TestTable_WriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy.db")
	run := simulate(3)

	var sink report.TableSink = &Table{Path: path}
	require.NoError(t, sink.WriteTable(run))

	db, err := New(path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Rows()
	require.NoError(t, err)
	assert.Len(t, rows, 24)
	assert.Equal(t, "0", rows[0].Hour)
	assert.Equal(t, "23", rows[23].Hour)
}
