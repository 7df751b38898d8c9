package record

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      Raw
		want     Publication
		wantKind ParseKind
	}{
		{name: "plain count", raw: Raw{Title: "A", CitedBy: "5"}, want: Publication{Title: "A", CitedBy: 5}},
		{name: "empty count is zero", raw: Raw{Title: "A", CitedBy: ""}, want: Publication{Title: "A", CitedBy: 0}},
		{name: "blank count is zero", raw: Raw{Title: "A", CitedBy: "  "}, want: Publication{Title: "A", CitedBy: 0}},
		{name: "surrounding space", raw: Raw{Title: "A", CitedBy: " 12\n"}, want: Publication{Title: "A", CitedBy: 12}},
		{name: "title kept verbatim", raw: Raw{Title: "  Deep  Nets ", CitedBy: "1"}, want: Publication{Title: "  Deep  Nets ", CitedBy: 1}},
		{name: "empty title", raw: Raw{Title: "", CitedBy: "3"}, wantKind: KindEmptyTitle},
		{name: "blank title", raw: Raw{Title: " \t", CitedBy: "3"}, wantKind: KindEmptyTitle},
		{name: "letters", raw: Raw{Title: "A", CitedBy: "many"}, wantKind: KindMalformedCount},
		{name: "negative", raw: Raw{Title: "A", CitedBy: "-4"}, wantKind: KindMalformedCount},
		{name: "plus sign", raw: Raw{Title: "A", CitedBy: "+4"}, wantKind: KindMalformedCount},
		{name: "merged marker", raw: Raw{Title: "A", CitedBy: "17*"}, wantKind: KindMalformedCount},
		{name: "overflow", raw: Raw{Title: "A", CitedBy: "99999999999999999999999"}, wantKind: KindMalformedCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantKind != "" {
				require.Error(t, err)
				var perr *ParseError
				require.True(t, errors.As(err, &perr))
				assert.Equal(t, tt.wantKind, perr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrorClassification(t *testing.T) {
	_, err := Parse(Raw{Title: "A", CitedBy: "x"})
	assert.True(t, IsMalformedCount(err))
	assert.False(t, IsEmptyTitle(err))
	assert.ErrorIs(t, err, ErrMalformedCount)

	_, err = Parse(Raw{CitedBy: "1"})
	assert.True(t, IsEmptyTitle(err))
	assert.False(t, IsMalformedCount(err))
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestIngest_SkipsAndContinues(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	raws := []Raw{
		{Title: "A", CitedBy: "5"},
		{Title: "", CitedBy: "2"},
		{Title: "B", CitedBy: "five"},
		{Title: "C", CitedBy: ""},
	}

	result := Ingest(raws, log)

	assert.Equal(t, []Publication{{Title: "A", CitedBy: 5}, {Title: "C", CitedBy: 0}}, result.Records)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, 1, result.Skipped[0].Row)
	assert.Equal(t, KindEmptyTitle, result.Skipped[0].Kind)
	assert.Equal(t, 2, result.Skipped[1].Row)
	assert.Equal(t, KindMalformedCount, result.Skipped[1].Kind)

	assert.Equal(t, 2, logs.FilterMessage("skipping publication row").Len())
}

func TestIngest_NilLoggerAndEmptyInput(t *testing.T) {
	result := Ingest(nil, nil)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Skipped)
}

func TestConcat_PreservesOrder(t *testing.T) {
	a := []Raw{{Title: "A", CitedBy: "1"}, {Title: "B"}}
	b := []Raw{{Title: "A", CitedBy: "1"}}

	got := Concat(a, nil, b)

	assert.Equal(t, []Raw{{Title: "A", CitedBy: "1"}, {Title: "B"}, {Title: "A", CitedBy: "1"}}, got)
}

func TestRawJSONL_WriteThenRead(t *testing.T) {
	raws := []Raw{{Title: "Graph Theory", CitedBy: "12"}, {Title: "Untitled draft"}}

	var buf bytes.Buffer
	require.NoError(t, WriteRawJSONL(&buf, raws))

	path := filepath.Join(t.TempDir(), "records.jsonl")
	// Blank lines are tolerated
	require.NoError(t, os.WriteFile(path, append(buf.Bytes(), '\n'), 0644))

	got, err := ReadRawJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, raws, got)
}

func TestDecodeRawJSONL_BadLine(t *testing.T) {
	_, err := DecodeRawJSONL(bytes.NewBufferString("{\"title\":\"A\"}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadRawJSONL_Missing(t *testing.T) {
	_, err := ReadRawJSONL(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.Error(t, err)
}
