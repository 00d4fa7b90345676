package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/nalgeon/be"
	"github.com/sirkon/deepequal"
	"gopkg.in/yaml.v3"

	"pyplus/internal/diag"
	"pyplus/internal/source"
)

func TestJSONPositionsAndNotes(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	be.Err(t, err, nil)

	var out DiagnosticsOutput
	be.Err(t, json.Unmarshal(buf.Bytes(), &out), nil)
	be.Equal(t, out.Count, 1)

	d := out.Diagnostics[0]
	be.Equal(t, d.Severity, "WARNING")
	be.Equal(t, d.Code, "TRN3002")
	be.Equal(t, d.Location, LocationJSON{
		File:      "prog.py",
		StartByte: 10,
		EndByte:   15,
		StartLine: 2,
		StartCol:  5,
		EndLine:   2,
		EndCol:    10,
	})
	be.Equal(t, len(d.Notes), 1)
	be.Equal(t, d.Notes[0].Message, "first declared here")
}

func TestJSONMaxAndNotesOff(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.py", []byte("a\nb\nc\n"))
	bag := diag.NewBag(10)
	for i := range uint32(3) {
		sp := source.Span{File: fileID, Start: i * 2, End: i*2 + 1}
		bag.Add(diag.New(diag.SevWarning, diag.TrnUnusedValue, sp, "unused").WithNote(sp, "n"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2, PathMode: PathModeBasename})
	be.Equal(t, out.Count, 2)
	be.Equal(t, len(out.Diagnostics[0].Notes), 0)
	// без IncludePositions строки и колонки не заполняются
	be.Equal(t, out.Diagnostics[1].Location.StartLine, uint32(0))
}

func TestJSONTimingsKeepNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.py", []byte("a\n"))
	bag := diag.NewBag(10)
	sp := source.Span{File: fileID}
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, sp, "timings").WithNote(sp, "parse: 1ms"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename})
	be.Equal(t, len(out.Diagnostics[0].Notes), 1)
}

func TestYAMLMatchesBuiltOutput(t *testing.T) {
	bag, fs := sampleBag(t)
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}

	var buf bytes.Buffer
	be.Err(t, YAML(&buf, bag, fs, opts), nil)

	var got DiagnosticsOutput
	be.Err(t, yaml.Unmarshal(buf.Bytes(), &got), nil)
	deepequal.SideBySide(t, "diagnostics", BuildDiagnosticsOutput(bag, fs, opts), got)
}
