package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"solartally/internal/production"
)

func TestLoadMissingFileYieldsEmptyDataset(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "data.json"))
	d, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Stats == nil || len(d.Stats) != 0 {
		t.Fatalf("expected empty stats, got %+v", d.Stats)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "data.json"))

	want := Dataset{Stats: []production.RawDailyRecord{
		record(1718150400, fp(100), nil, fp(200)),
	}}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Stats) != 1 || got.Stats[0].StartTime != 1718150400 {
		t.Fatalf("round trip lost the record: %+v", got.Stats)
	}
	if got.Stats[0].Production[1] != nil {
		t.Errorf("null sample not preserved through persistence")
	}
}

func TestSaveWritesPrettyPrintedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewStore(path)

	if err := s.Save(Dataset{Stats: []production.RawDailyRecord{record(100, fp(1))}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !bytes.Contains(raw, []byte("\n    \"stats\"")) {
		t.Errorf("document is not 4-space indented:\n%s", raw)
	}
}

func TestSaveIsByteStableForIdenticalData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewStore(path)
	d := Dataset{Stats: []production.RawDailyRecord{record(100, fp(1), nil)}}

	if err := s.Save(d); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	first, _ := os.ReadFile(path)

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := s.Save(Merge(loaded, d.Stats)); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	second, _ := os.ReadFile(path)

	if !bytes.Equal(first, second) {
		t.Fatalf("identical data produced different bytes")
	}
}

func TestSaveLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "data.json"))
	if err := s.Save(Dataset{Stats: []production.RawDailyRecord{}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "data.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}
