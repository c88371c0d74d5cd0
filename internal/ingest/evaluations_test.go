package ingest

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportHeader = "Student ID,Src Institution,Src Course ID,Src Offer Nbr,Src Subject,Src Catalog Nbr,Units Taken,Dst Institution,Dst Course ID,Dst Offer Nbr,Dst Subject,Dst Catalog Nbr,Units Transferred\n"

func TestReaderParsesExportRows(t *testing.T) {
	export := exportHeader +
		"12345678,QNS01,100023,1,BIOL,101,3.0,LEH01,200045,1,BIO,226,3.0\n" +
		"87654321,QCC01,100099,2,MATH, 101 ,4.0,LEH01,0,0,,,0.0\n"

	r, err := NewReader(strings.NewReader(export))
	require.NoError(t, err)

	first, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "12345678", first.StudentID)
	assert.Equal(t, "QNS01", first.SrcInstitution)
	assert.Equal(t, 100023, first.SrcCourseID)
	assert.Equal(t, 1, first.SrcOfferNbr)
	assert.Equal(t, 3.0, first.UnitsTaken)
	assert.Equal(t, "LEH01", first.DstInstitution)

	second, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "MATH", second.SrcSubject)
	assert.Equal(t, "101", second.SrcCatalogNbr, "catalog numbers are trimmed")
	assert.Equal(t, 0, second.DstCourseID)

	_, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderReordersColumnsByHeader(t *testing.T) {
	export := "Units Taken,Student ID,Src Institution,Src Course ID,Src Offer Nbr,Src Subject,Src Catalog Nbr,Dst Institution,Dst Course ID,Dst Offer Nbr,Dst Subject,Dst Catalog Nbr,Units Transferred,Extra\n" +
		"3.0,12345678,QNS01,100023,1,BIOL,101,LEH01,200045,1,BIO,226,3.0,ignored\n"

	r, err := NewReader(strings.NewReader(export))
	require.NoError(t, err)

	ev, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, 3.0, ev.UnitsTaken)
	assert.Equal(t, "12345678", ev.StudentID)
}

func TestReaderStripsByteOrderMark(t *testing.T) {
	export := "\uFEFF" + exportHeader +
		"12345678,QNS01,100023,1,BIOL,101,3.0,LEH01,200045,1,BIO,226,3.0\n"

	r, err := NewReader(strings.NewReader(export))
	require.NoError(t, err)

	ev, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "12345678", ev.StudentID)
}

func TestReaderMissingColumn(t *testing.T) {
	_, err := NewReader(strings.NewReader("Student ID,Src Institution\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestReaderRejectsBadRows(t *testing.T) {
	t.Run("unparseable number", func(t *testing.T) {
		export := exportHeader +
			"12345678,QNS01,not-a-number,1,BIOL,101,3.0,LEH01,200045,1,BIO,226,3.0\n"
		r, err := NewReader(strings.NewReader(export))
		require.NoError(t, err)
		_, err = r.Read()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "src_course_id")
	})

	t.Run("failing validation", func(t *testing.T) {
		export := exportHeader +
			",QNS01,100023,1,BIOL,101,3.0,LEH01,200045,1,BIO,226,3.0\n"
		r, err := NewReader(strings.NewReader(export))
		require.NoError(t, err)
		_, err = r.Read()
		assert.Error(t, err)
	})
}

func TestLatestExport(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.csv")
	newer := filepath.Join(dir, "newer.CSV")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	path, modTime, err := LatestExport(dir)
	require.NoError(t, err)
	assert.Equal(t, newer, path)
	assert.True(t, modTime.After(past))
}

func TestLatestExportEmptyDir(t *testing.T) {
	_, _, err := LatestExport(t.TempDir())
	assert.ErrorIs(t, err, ErrNoExport)
}
