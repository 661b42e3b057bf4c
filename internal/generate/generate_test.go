package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phobologic/iconsheet/internal/config"
	"github.com/phobologic/iconsheet/internal/console"
	"github.com/phobologic/iconsheet/internal/model"
)

const (
	leftIcon  = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24"><path d="M15 18l-6-6 6-6"/></svg>`
	rightIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24"><path d="M9 18l6-6-6-6"/></svg>`
)

func setup(t *testing.T, job config.Job) (config.Job, *Generator, *bytes.Buffer) {
	t.Helper()
	if job.Cwd == "" {
		job.Cwd = t.TempDir()
	}
	if job.InputDir == "" {
		job.InputDir = "icons"
	}
	if job.OutputDir == "" {
		job.OutputDir = "public/icons"
	}
	resolved, err := job.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	var logs bytes.Buffer
	return resolved, New(console.New(&logs, console.Options{NoColor: true})), &logs
}

func TestRunWritesSheetAndTypes(t *testing.T) {
	t.Parallel()

	job, g, _ := setup(t, config.Job{WithTypes: true})
	writeFile(t, job.InputDir, "arrow-left.svg", leftIcon)
	writeFile(t, job.InputDir, "arrow-right.svg", rightIcon)

	res, err := g.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(Result{Icons: 2, Symbols: 2, SheetWritten: true, TypesWritten: true}, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	wantSheet := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="0" height="0">
<defs>
<symbol viewBox="0 0 24 24" id="ArrowLeft"><path d="M15 18l-6-6 6-6"></path></symbol>
<symbol viewBox="0 0 24 24" id="ArrowRight"><path d="M9 18l6-6-6-6"></path></symbol>
</defs>
</svg>`
	if got := readFile(t, job.SheetPath()); got != wantSheet {
		t.Errorf("sheet mismatch\ngot:\n%s\nwant:\n%s", got, wantSheet)
	}

	types := readFile(t, job.TypesOutputFile)
	for _, want := range []string{`  "ArrowLeft",`, `  "ArrowRight",`, "export type IconName = typeof iconNames[number]"} {
		if !strings.Contains(types, want) {
			t.Errorf("types missing %q:\n%s", want, types)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	job, g, logs := setup(t, config.Job{WithTypes: true})
	writeFile(t, job.InputDir, "home.svg", leftIcon)

	if _, err := g.Run(context.Background(), job); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	first := readFile(t, job.SheetPath())
	logs.Reset()

	res, err := g.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res.SheetWritten || res.TypesWritten {
		t.Errorf("second run rewrote outputs: %+v", res)
	}
	if logs.Len() != 0 {
		t.Errorf("second run logged: %q", logs.String())
	}
	if got := readFile(t, job.SheetPath()); got != first {
		t.Error("sheet content changed between identical runs")
	}
}

func TestRunSkipsBrokenIcon(t *testing.T) {
	t.Parallel()

	job, g, logs := setup(t, config.Job{})
	writeFile(t, job.InputDir, "a-good.svg", leftIcon)
	writeFile(t, job.InputDir, "b-broken.svg", "<p>not an svg</p>")
	writeFile(t, job.InputDir, "c-good.svg", rightIcon)

	res, err := g.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Icons != 3 || res.Symbols != 2 {
		t.Errorf("result = %+v", res)
	}

	got := readFile(t, job.SheetPath())
	if strings.Contains(got, "BBroken") {
		t.Errorf("broken icon present in sheet:\n%s", got)
	}
	if !strings.Contains(got, `id="AGood"`) || !strings.Contains(got, `id="CGood"`) {
		t.Errorf("valid icons missing:\n%s", got)
	}
	if !strings.Contains(logs.String(), "No SVG tag found in b-broken.svg") {
		t.Errorf("missing warning:\n%s", logs.String())
	}
}

func TestRunListsBrokenIconName(t *testing.T) {
	t.Parallel()

	job, g, _ := setup(t, config.Job{WithTypes: true})
	writeFile(t, job.InputDir, "arrow-left.svg", leftIcon)
	writeFile(t, job.InputDir, "broken.svg", "<div>not an icon</div>")

	res, err := g.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Icons != 2 || res.Symbols != 1 {
		t.Errorf("result = %+v", res)
	}

	if strings.Contains(readFile(t, job.SheetPath()), `id="Broken"`) {
		t.Error("broken icon present in sheet")
	}

	types := readFile(t, job.TypesOutputFile)
	if !strings.Contains(types, "  \"ArrowLeft\",\n  \"Broken\",\n] as const") {
		t.Errorf("listing should name every discovered icon:\n%s", types)
	}
}

func TestRunEmptyInputKeepsExistingOutput(t *testing.T) {
	t.Parallel()

	job, g, logs := setup(t, config.Job{WithTypes: true})
	if err := os.MkdirAll(job.InputDir, 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := g.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Skipped {
		t.Errorf("expected skipped run: %+v", res)
	}
	if _, err := os.Stat(job.OutputDir); !os.IsNotExist(err) {
		t.Errorf("output dir created for empty input: %v", err)
	}
	if !strings.Contains(logs.String(), "No SVG files found in icons") {
		t.Errorf("missing warning: %q", logs.String())
	}

	writeFile(t, job.OutputDir, "sprite.svg", "previous")
	if _, err := g.Run(context.Background(), job); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := readFile(t, job.SheetPath()); got != "previous" {
		t.Errorf("existing sheet overwritten: %q", got)
	}
}

func TestRunDuplicatePolicies(t *testing.T) {
	t.Parallel()

	t.Run("suffix", func(t *testing.T) {
		t.Parallel()
		job, g, _ := setup(t, config.Job{WithTypes: true, Duplicates: model.DuplicatesSuffix})
		writeFile(t, job.InputDir, "home.svg", leftIcon)
		writeFile(t, job.InputDir, "nav/home.svg", rightIcon)

		if _, err := g.Run(context.Background(), job); err != nil {
			t.Fatalf("Run: %v", err)
		}
		got := readFile(t, job.SheetPath())
		if !strings.Contains(got, `id="Home"`) || !strings.Contains(got, `id="Home2"`) {
			t.Errorf("expected Home and Home2:\n%s", got)
		}
		if types := readFile(t, job.TypesOutputFile); !strings.Contains(types, `"Home2",`) {
			t.Errorf("listing missing Home2:\n%s", types)
		}
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		job, g, logs := setup(t, config.Job{Duplicates: model.DuplicatesError})
		writeFile(t, job.InputDir, "home.svg", leftIcon)
		writeFile(t, job.InputDir, "nav/home.svg", rightIcon)

		res, err := g.Run(context.Background(), job)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !res.Skipped {
			t.Errorf("expected skipped run: %+v", res)
		}
		if _, err := os.Stat(job.SheetPath()); !os.IsNotExist(err) {
			t.Error("sheet written despite duplicate names")
		}
		if !strings.Contains(logs.String(), "duplicate icon names") {
			t.Errorf("collision not reported: %q", logs.String())
		}
	})

	t.Run("keep", func(t *testing.T) {
		t.Parallel()
		job, g, _ := setup(t, config.Job{WithTypes: true})
		writeFile(t, job.InputDir, "home.svg", leftIcon)
		writeFile(t, job.InputDir, "nav/home.svg", rightIcon)

		if _, err := g.Run(context.Background(), job); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if n := strings.Count(readFile(t, job.TypesOutputFile), `"Home",`); n != 2 {
			t.Errorf("expected duplicate entries to pass through, got %d", n)
		}
	})
}

func TestApplyDuplicatePolicySkipsTakenSuffix(t *testing.T) {
	t.Parallel()

	in := []model.IconSource{
		{Path: "home.svg", Name: "Home"},
		{Path: "home2.svg", Name: "Home2"},
		{Path: "a/home.svg", Name: "Home"},
	}
	got, dupes := applyDuplicatePolicy(in, model.DuplicatesSuffix)
	if len(dupes) != 0 {
		t.Fatalf("dupes = %v", dupes)
	}
	var names []string
	for _, s := range got {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"Home", "Home2", "Home3"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if in[2].Name != "Home" {
		t.Error("input slice modified")
	}
}

func TestRunGoTypesWithFormatter(t *testing.T) {
	t.Parallel()

	job, g, _ := setup(t, config.Job{
		WithTypes:       true,
		TypesOutputFile: "internal/icons/names.go",
		Formatter:       "goimports",
	})
	writeFile(t, job.InputDir, "arrow-left.svg", leftIcon)

	if _, err := g.Run(context.Background(), job); err != nil {
		t.Fatalf("Run: %v", err)
	}
	types := readFile(t, job.TypesOutputFile)
	if !strings.Contains(types, "package icons\n") || !strings.Contains(types, "\t\"ArrowLeft\",\n") {
		t.Errorf("unexpected Go listing:\n%s", types)
	}
	if sheet := readFile(t, job.SheetPath()); !strings.HasPrefix(sheet, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<svg ") {
		t.Errorf("goimports should leave the sheet untouched:\n%s", sheet)
	}
}

func TestRunIndentFormatter(t *testing.T) {
	t.Parallel()

	job, g, _ := setup(t, config.Job{Formatter: "indent"})
	writeFile(t, job.InputDir, "arrow-left.svg", leftIcon)

	if _, err := g.Run(context.Background(), job); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := readFile(t, job.SheetPath())
	if !strings.Contains(got, "\n  <defs>\n    <symbol viewBox=\"0 0 24 24\" id=\"ArrowLeft\">\n      <path d=\"M15 18l-6-6 6-6\"/>\n") {
		t.Errorf("sheet not indented:\n%s", got)
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
