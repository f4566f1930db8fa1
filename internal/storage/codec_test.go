package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/leengari/studentdb/internal/domain/record"
	"github.com/leengari/studentdb/internal/domain/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSchema() *schema.Schema {
	return schema.New([]schema.Column{
		{Name: "Name", Type: schema.ColumnTypeText},
		{Name: schema.RollColumn, Type: schema.ColumnTypeInt},
		{Name: "Age", Type: schema.ColumnTypeInt},
	})
}

func sampleRecord(id string, roll int64, name string, age int64) *record.Record {
	rec := record.New(id)
	rec.Fields["Name"] = name
	rec.Fields[schema.RollColumn] = roll
	rec.Fields["Age"] = age
	return rec
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	logger := testLogger()

	records := []*record.Record{
		sampleRecord("1", 10, "Ann Lee", 20),
		sampleRecord("2", 11, "Bob Ray", 21),
	}
	require.NoError(t, Save(path, sampleSchema(), records, logger))

	sch, loaded, err := Load(path, logger)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", schema.RollColumn, "Age"}, sch.Names())
	require.Len(t, loaded, 2)
	assert.Equal(t, "1", loaded[0].ID)
	assert.Equal(t, "Ann Lee", loaded[0].Fields["Name"])
	assert.Equal(t, int64(10), loaded[0].Fields[schema.RollColumn])
	assert.Equal(t, int64(20), loaded[0].Fields["Age"])
	assert.Equal(t, "2", loaded[1].ID)
}

func TestLoadFloatColumnStaysFloat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	logger := testLogger()

	sch := schema.New([]schema.Column{
		{Name: "GPA", Type: schema.ColumnTypeFloat},
	})
	rec := record.New("1")
	rec.Fields["GPA"] = 3.5
	require.NoError(t, Save(path, sch, []*record.Record{rec}, logger))

	_, loaded, err := Load(path, logger)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 3.5, loaded[0].Fields["GPA"])
}

func TestLoadMissingFileYieldsEmptyStore(t *testing.T) {
	sch, records, err := Load(filepath.Join(t.TempDir(), "nope.csv"), testLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, sch.Len())
	assert.Empty(t, records)
}

func TestLoadNormalizesLegacyRollNo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.csv")
	content := `Columns,"[""Name"",""RollNo""]"
1,"{""Name"":""Ann Lee"",""RollNo"":5}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	sch, records, err := Load(path, testLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", schema.RollColumn}, sch.Names())
	require.Len(t, records, 1)
	assert.Equal(t, int64(5), records[0].Fields[schema.RollColumn])
	_, hasLegacy := records[0].Fields[schema.LegacyRollColumn]
	assert.False(t, hasLegacy)
}

func TestLoadSkipsMalformedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := `Columns,"[""Name""]"
1,"{""Name"":""Ann Lee""}"
2,"{not json"
3,"{""Name"":""Cat Doe""}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, records, err := Load(path, testLogger())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "3", records[1].ID)
}

func TestLoadInvalidHeaderAborts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.csv")
	require.NoError(t, os.WriteFile(path, []byte("Columns\n"), 0644))

	sch, records, err := Load(path, testLogger())
	require.Error(t, err)
	assert.Equal(t, 0, sch.Len())
	assert.Empty(t, records)
}

func TestLoadDropsEmbeddedIDField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.csv")
	content := `Columns,"[""Name""]"
7,"{""ID"":""7"",""Name"":""Ann Lee""}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, records, err := Load(path, testLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "7", records[0].ID)
	_, hasID := records[0].Fields[schema.IDColumn]
	assert.False(t, hasID)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "students.csv")
	require.NoError(t, Save(path, sampleSchema(), nil, testLogger()))

	_, err := os.Stat(path)
	require.NoError(t, err)
}
