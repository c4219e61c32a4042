package ingest

import (
	"errors"
	"testing"
	"time"
)

func stagedResult(filename string) *ParseResult {
	return &ParseResult{
		Filename: filename,
		Fecha:    time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		Records: []Record{
			{NombreTrabajador: "Ana Ruiz", Cedula: "123", HoraIngreso: "07:00", HoraSalida: "15:00"},
		},
	}
}

func TestStagingDuplicateFileGuard(t *testing.T) {
	s := NewStaging()

	gen, err := s.Begin(1, "DIARIO_Norte_20250702.xlsx")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := s.Complete(1, gen, stagedResult("DIARIO_Norte_20250702.xlsx"), nil); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	// Re-selecting the same file is rejected without touching staged data.
	if _, err := s.Begin(1, "DIARIO_Norte_20250702.xlsx"); !errors.Is(err, ErrDuplicateFile) {
		t.Fatalf("Begin error = %v, want ErrDuplicateFile", err)
	}

	result, ok := s.Peek(1)
	if !ok {
		t.Fatal("staged result was lost after duplicate rejection")
	}
	if result.Filename != "DIARIO_Norte_20250702.xlsx" {
		t.Errorf("staged filename = %q", result.Filename)
	}
}

func TestStagingStaleGenerationDropped(t *testing.T) {
	s := NewStaging()

	gen1, err := s.Begin(1, "DIARIO_Norte_20250701.xlsx")
	if err != nil {
		t.Fatalf("Begin gen1 failed: %v", err)
	}
	gen2, err := s.Begin(1, "DIARIO_Norte_20250702.xlsx")
	if err != nil {
		t.Fatalf("Begin gen2 failed: %v", err)
	}

	// The newer selection completes first.
	if err := s.Complete(1, gen2, stagedResult("DIARIO_Norte_20250702.xlsx"), nil); err != nil {
		t.Fatalf("Complete gen2 failed: %v", err)
	}

	// The slow, superseded parse must not overwrite it.
	if err := s.Complete(1, gen1, stagedResult("DIARIO_Norte_20250701.xlsx"), nil); !errors.Is(err, ErrSuperseded) {
		t.Fatalf("Complete gen1 error = %v, want ErrSuperseded", err)
	}

	result, ok := s.Peek(1)
	if !ok || result.Filename != "DIARIO_Norte_20250702.xlsx" {
		t.Fatalf("staged = %+v, want the newer selection", result)
	}
}

func TestStagingParseFailureClearsBuffer(t *testing.T) {
	s := NewStaging()

	gen, _ := s.Begin(1, "DIARIO_Norte_20250701.xlsx")
	if err := s.Complete(1, gen, stagedResult("DIARIO_Norte_20250701.xlsx"), nil); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	gen, _ = s.Begin(1, "DIARIO_Norte_20250702.xlsx")
	parseErr := ErrHeaderNotFound
	if err := s.Complete(1, gen, nil, parseErr); !errors.Is(err, ErrHeaderNotFound) {
		t.Fatalf("Complete error = %v, want the parse error back", err)
	}

	if _, ok := s.Peek(1); ok {
		t.Fatal("failed upload left a staged result behind")
	}
}

func TestStagingClearRemembersFilename(t *testing.T) {
	s := NewStaging()

	gen, _ := s.Begin(1, "DIARIO_Norte_20250702.xlsx")
	if err := s.Complete(1, gen, stagedResult("DIARIO_Norte_20250702.xlsx"), nil); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	s.Clear(1)
	if _, ok := s.Peek(1); ok {
		t.Fatal("Clear did not discard the staged result")
	}

	// The accepted filename still guards against an immediate re-upload.
	if _, err := s.Begin(1, "DIARIO_Norte_20250702.xlsx"); !errors.Is(err, ErrDuplicateFile) {
		t.Fatalf("Begin error = %v, want ErrDuplicateFile", err)
	}
}

func TestStagingIsolatedPerUser(t *testing.T) {
	s := NewStaging()

	gen, _ := s.Begin(1, "DIARIO_Norte_20250702.xlsx")
	if err := s.Complete(1, gen, stagedResult("DIARIO_Norte_20250702.xlsx"), nil); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	// Another user uploading the same filename is not a duplicate.
	if _, err := s.Begin(2, "DIARIO_Norte_20250702.xlsx"); err != nil {
		t.Fatalf("Begin for second user failed: %v", err)
	}
	if _, ok := s.Peek(2); ok {
		t.Fatal("second user unexpectedly has staged data")
	}
}
