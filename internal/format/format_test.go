package format

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/phobologic/iconsheet/internal/console"
	"github.com/phobologic/iconsheet/internal/typegen"
)

const messyTS = `// This file is generated by icon spritesheet generator

export const iconNames = [
"ArrowLeft",
      "ArrowRight",
   ] as const

    export type IconName = typeof iconNames[number]
`

var leadingSpace = regexp.MustCompile(`(?m)^[ \t]+`)

func TestIndentTypeScript(t *testing.T) {
	t.Parallel()

	got, err := Indent{}.Format(context.Background(), messyTS, KindTypeScript, nil)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := typegen.Generate([]string{"ArrowLeft", "ArrowRight"}, typegen.TypeScript, "")
	if got != want {
		t.Errorf("Format mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestIndentTypeScriptWidth(t *testing.T) {
	t.Parallel()

	got, err := Indent{}.Format(context.Background(), messyTS, KindTypeScript, Options{"tabWidth": float64(4)})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(got, "\n    \"ArrowLeft\",\n") {
		t.Errorf("expected four-space indent:\n%s", got)
	}

	got, err = Indent{}.Format(context.Background(), messyTS, KindTypeScript, Options{"formatter": map[string]any{"indentStyle": "tab"}})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(got, "\n\t\"ArrowLeft\",\n") {
		t.Errorf("expected tab indent from nested config:\n%s", got)
	}
}

func TestIndentGo(t *testing.T) {
	t.Parallel()

	want := typegen.Generate([]string{"ArrowLeft", "Home"}, typegen.Go, "icons")
	flat := leadingSpace.ReplaceAllString(want, "")

	got, err := Indent{}.Format(context.Background(), flat, KindGo, nil)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != want {
		t.Errorf("Format mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestIndentRejectsBrokenCode(t *testing.T) {
	t.Parallel()

	if _, err := (Indent{}).Format(context.Background(), "export const = [[\n", KindTypeScript, nil); err == nil {
		t.Fatal("expected error for malformed TypeScript")
	}
}

func TestIndentMarkup(t *testing.T) {
	t.Parallel()

	got, err := Indent{}.Format(context.Background(), "<svg><defs><symbol id=\"A\"></symbol></defs></svg>", KindMarkup, nil)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := "<svg>\n  <defs>\n    <symbol id=\"A\"/>\n  </defs>\n</svg>\n"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestGoImports(t *testing.T) {
	t.Parallel()

	b := GoImports{}
	if b.Supports(KindMarkup) || b.Supports(KindTypeScript) {
		t.Error("goimports should only support Go")
	}

	want := typegen.Generate([]string{"Home"}, typegen.Go, "icons")
	got, err := b.Format(context.Background(), strings.ReplaceAll(want, "\t", "  "), KindGo, nil)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != want {
		t.Errorf("Format mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestLoadOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(good, []byte(`{"useTabs": true, "tabWidth": 4}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := LoadOptions(good)
	if v, ok := opts.Bool("useTabs"); !ok || !v {
		t.Errorf("useTabs = %v, %v", v, ok)
	}
	if n, ok := opts.Int("tabWidth"); !ok || n != 4 {
		t.Errorf("tabWidth = %v, %v", n, ok)
	}

	for _, path := range []string{"", bad, filepath.Join(dir, "missing.json")} {
		if opts := LoadOptions(path); opts != nil {
			t.Errorf("LoadOptions(%q) = %v, want nil", path, opts)
		}
	}
}

func TestAdapterApply(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var logs bytes.Buffer
	a := &Adapter{Log: console.New(&logs, console.Options{NoColor: true})}

	if got := a.Apply(ctx, Selection{}, KindTypeScript, messyTS); got != messyTS {
		t.Error("no selection should be the identity")
	}
	if logs.Len() != 0 {
		t.Errorf("identity path logged: %q", logs.String())
	}

	if got := a.Apply(ctx, Selection{Backend: "goimports"}, KindMarkup, "<svg></svg>"); got != "<svg></svg>" {
		t.Errorf("unsupported kind changed text: %q", got)
	}
	if !strings.Contains(logs.String(), "goimports cannot format svg") {
		t.Errorf("unsupported kind not logged: %q", logs.String())
	}

	if got := a.Apply(ctx, Selection{Backend: "indent", ConfigPath: "/does/not/exist.json"}, KindTypeScript, messyTS); !strings.Contains(got, "\n  \"ArrowLeft\",\n") {
		t.Errorf("missing config should fall back to defaults:\n%s", got)
	}

	broken := "export const = [[\n"
	if got := a.Apply(ctx, Selection{Backend: "indent"}, KindTypeScript, broken); got != broken {
		t.Errorf("failed format should return input, got %q", got)
	}
	if !strings.Contains(logs.String(), "Warning: indent") {
		t.Errorf("format failure not logged: %q", logs.String())
	}

	if got := a.Apply(ctx, Selection{Backend: "nope"}, KindGo, "x"); got != "x" {
		t.Errorf("unknown backend changed text: %q", got)
	}
}

func TestKindForPath(t *testing.T) {
	t.Parallel()

	tests := map[string]Kind{
		"public/icons/sprite.svg": KindMarkup,
		"app/icons/types.ts":      KindTypeScript,
		"app/icons/types.mts":     KindTypeScript,
		"app/icons/types.d.ts":    KindTypeScript,
		"internal/icons/names.go": KindGo,
		"names":                   KindTypeScript,
	}
	for path, want := range tests {
		if got := KindForPath(path); got != want {
			t.Errorf("KindForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	got := strings.Join(Names(), ",")
	if got != "goimports,indent" {
		t.Errorf("Names = %q", got)
	}

	_, err := Lookup("prettier")
	if err == nil || !strings.Contains(err.Error(), "available: goimports, indent") {
		t.Errorf("Lookup error = %v", err)
	}
}
