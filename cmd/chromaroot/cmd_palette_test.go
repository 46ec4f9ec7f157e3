package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/chromaroot/internal/chroma"
	"github.com/nvandessel/chromaroot/internal/palette"
)

func TestPaletteCmd_AddListShowRemove(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	if _, err := executeCmd(t, "palette", "add", "violet", "--fraction", "7/4", "--root", tmpDir); err != nil {
		t.Fatalf("palette add violet failed: %v", err)
	}
	if _, err := executeCmd(t, "palette", "add", "amber", "--digit", "1", "--root", tmpDir); err != nil {
		t.Fatalf("palette add amber failed: %v", err)
	}

	out, err := executeCmd(t, "palette", "list", "--json", "--root", tmpDir)
	if err != nil {
		t.Fatalf("palette list failed: %v", err)
	}
	var list struct {
		Swatches []palette.Swatch `json:"swatches"`
		Count    int              `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if list.Count != 2 {
		t.Fatalf("count = %d, want 2", list.Count)
	}
	if list.Swatches[0].Name != "amber" || list.Swatches[1].Name != "violet" {
		t.Errorf("names = %q, %q, want amber, violet", list.Swatches[0].Name, list.Swatches[1].Name)
	}

	out, err = executeCmd(t, "palette", "show", "violet", "--root", tmpDir)
	if err != nil {
		t.Fatalf("palette show failed: %v", err)
	}
	for _, want := range []string{"Name: violet", "Seed: 7/4@0x60", "CSS:  #3300ff"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	if _, err := executeCmd(t, "palette", "rm", "violet", "--root", tmpDir); err != nil {
		t.Fatalf("palette rm failed: %v", err)
	}
	if _, err := executeCmd(t, "palette", "show", "violet", "--root", tmpDir); err == nil {
		t.Error("expected error showing removed swatch")
	}
}

func TestPaletteAddCmd_SeedFlags(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no seed", []string{"palette", "add", "empty"}, chroma.ErrInvalidInput},
		{"both seeds", []string{"palette", "add", "both", "--digit", "3", "--fraction", "7/4"}, chroma.ErrInvalidInput},
		{"zero denominator", []string{"palette", "add", "broken", "--fraction", "1/0"}, chroma.ErrDivisionByZero},
		{"padded name", []string{"palette", "add", " padded", "--digit", "3"}, chroma.ErrInvalidInput},
		{"control characters", []string{"palette", "add", "bad\x07name\x1b[31m", "--digit", "3"}, chroma.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, append(tt.args, "--root", tmpDir)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaletteCmd_ExportImport(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	isolateHome(t, srcDir)

	for _, args := range [][]string{
		{"palette", "add", "violet", "--fraction", "7/4", "--step", "2", "--base-angle", "30"},
		{"palette", "add", "teal", "--digit", "5"},
	} {
		if _, err := executeCmd(t, append(args, "--root", srcDir)...); err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
	}

	exportPath := filepath.Join(srcDir, "palette.yaml")
	if _, err := executeCmd(t, "palette", "export", "-o", exportPath, "--root", srcDir); err != nil {
		t.Fatalf("palette export failed: %v", err)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "name: violet") {
		t.Errorf("export missing violet:\n%s", data)
	}

	out, err := executeCmd(t, "palette", "import", exportPath, "--json", "--root", dstDir)
	if err != nil {
		t.Fatalf("palette import failed: %v", err)
	}
	var result struct {
		Imported int `json:"imported"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if result.Imported != 2 {
		t.Errorf("imported = %d, want 2", result.Imported)
	}

	out, err = executeCmd(t, "palette", "show", "violet", "--json", "--root", dstDir)
	if err != nil {
		t.Fatalf("palette show failed: %v", err)
	}
	var shown struct {
		Swatch palette.Swatch `json:"swatch"`
		Valid  bool           `json:"valid"`
	}
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if !shown.Valid {
		t.Error("imported swatch failed validation")
	}
	if shown.Swatch.Seed.Rotation == nil || shown.Swatch.Seed.Rotation.Step != 2 || shown.Swatch.Seed.Rotation.BaseAngle != 30 {
		t.Errorf("rotation = %+v, want step 2 base 30", shown.Swatch.Seed.Rotation)
	}
}

func TestPaletteListCmd_Empty(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	out, err := executeCmd(t, "palette", "list", "--root", tmpDir)
	if err != nil {
		t.Fatalf("palette list failed: %v", err)
	}
	if !strings.Contains(out, "No swatches saved.") {
		t.Errorf("output = %q", out)
	}
}

func TestPaletteRenderCmd(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	if _, err := executeCmd(t, "palette", "add", "violet", "--digit", "7", "--root", tmpDir); err != nil {
		t.Fatalf("palette add failed: %v", err)
	}

	out, err := executeCmd(t, "palette", "render", "--root", tmpDir)
	if err != nil {
		t.Fatalf("palette render failed: %v", err)
	}
	if !strings.HasPrefix(out, "graph chromaroot {") || !strings.Contains(out, `fillcolor="#3300ff"`) {
		t.Errorf("unexpected DOT output:\n%s", out)
	}

	htmlPath := filepath.Join(tmpDir, "palette.html")
	if _, err := executeCmd(t, "palette", "render", "--format", "html", "-o", htmlPath, "--root", tmpDir); err != nil {
		t.Fatalf("palette render html failed: %v", err)
	}
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") || !strings.Contains(string(data), "violet") {
		t.Errorf("unexpected HTML output:\n%s", data)
	}

	if _, err := executeCmd(t, "palette", "render", "--format", "svg", "--root", tmpDir); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := executeCmd(t, "palette", "render", "--open", "--root", tmpDir); err == nil {
		t.Error("expected error for --open without --output")
	}
}
