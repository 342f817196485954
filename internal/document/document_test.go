package document

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jacoelho/jsonset/internal/flatten"
	"github.com/jacoelho/jsonset/internal/jsonvalue"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newLoader(t *testing.T, opts Options) *Loader {
	t.Helper()

	l, err := NewLoader(opts, nil)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	return l
}

func TestFormatFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want jsonvalue.Format
	}{
		{name: "a.json", want: jsonvalue.FormatJSON},
		{name: "a.yaml", want: jsonvalue.FormatYAML},
		{name: "dir/a.YML", want: jsonvalue.FormatYAML},
		{name: "no-extension", want: jsonvalue.FormatJSON},
	}

	for _, tt := range tests {
		if got := FormatFor(tt.name); got != tt.want {
			t.Errorf("FormatFor(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestLoadAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jsonFile := writeFile(t, dir, "a.json", `{"x": 1, "y": [1, 2]}`)
	yamlFile := writeFile(t, dir, "b.yaml", "x: 1\ny:\n  - 2\n  - 1\n")

	docs, err := newLoader(t, Options{}).LoadAll(context.Background(), []string{jsonFile, yamlFile})
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	if len(docs) != 2 || docs[0].Name != jsonFile || docs[1].Name != yamlFile {
		t.Fatalf("LoadAll() returned %+v, want both files in order", docs)
	}
	if !docs[0].Set.Equal(docs[1].Set) {
		t.Fatal("documents with reordered lists should flatten equally without list order")
	}

	inputs := Inputs(docs)
	if len(inputs) != 2 || inputs[0].Label != jsonFile || !inputs[1].Set.Equal(docs[1].Set) {
		t.Fatalf("Inputs() = %+v", inputs)
	}
}

func TestLoadPreservesListOrder(t *testing.T) {
	t.Parallel()

	l := newLoader(t, Options{Flatten: flatten.Options{PreserveListOrder: true}})

	a, err := l.Parse("a.json", []byte(`{"y": [1, 2]}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.Parse("b.json", []byte(`{"y": [2, 1]}`))
	if err != nil {
		t.Fatal(err)
	}
	if a.Set.Equal(b.Set) {
		t.Fatal("reordered lists should differ when list order is preserved")
	}
}

func TestLoadSelect(t *testing.T) {
	t.Parallel()

	l := newLoader(t, Options{Select: "$.spec"})

	doc, err := l.Parse("a.json", []byte(`{"meta": {"rev": 7}, "spec": {"replicas": 3}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tuples := doc.Set.Tuples()
	if len(tuples) != 1 || tuples[0].Key().Name != "replicas" {
		t.Fatalf("selected set = %v, want only the replicas leaf", tuples)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		opts    Options
		file    string
		content string
		wantErr error
	}{
		{
			name:    "invalid json",
			file:    "bad.json",
			content: `{"x": `,
			wantErr: jsonvalue.ErrInvalidDocument,
		},
		{
			name:    "invalid yaml",
			file:    "bad.yaml",
			content: "x: [1, 2\n",
			wantErr: jsonvalue.ErrInvalidDocument,
		},
		{
			name:    "root array",
			file:    "array.json",
			content: `[1, 2]`,
			wantErr: flatten.ErrRootNotObject,
		},
		{
			name:    "root scalar",
			file:    "scalar.json",
			content: `"text"`,
			wantErr: flatten.ErrRootNotObject,
		},
		{
			name:    "select matches nothing",
			opts:    Options{Select: "$.missing"},
			file:    "nomatch.json",
			content: `{"x": 1}`,
			wantErr: ErrSelectNoMatch,
		},
		{
			name:    "select matches a scalar",
			opts:    Options{Select: "$.x"},
			file:    "selscalar.json",
			content: `{"x": 1}`,
			wantErr: flatten.ErrRootNotObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, dir, tt.file, tt.content)
			_, err := newLoader(t, tt.opts).Load(path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAllStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"x": 1}`)
	missing := filepath.Join(dir, "missing.json")

	docs, err := newLoader(t, Options{}).LoadAll(context.Background(), []string{good, missing, good})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("LoadAll() error = %v, want fs.ErrNotExist", err)
	}
	if docs != nil {
		t.Fatalf("LoadAll() returned %d documents alongside an error", len(docs))
	}
}

func TestLoadAllHonorsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newLoader(t, Options{}).LoadAll(ctx, []string{"unused.json"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("LoadAll() error = %v, want context.Canceled", err)
	}
}

func TestNewLoaderInvalidSelect(t *testing.T) {
	t.Parallel()

	if _, err := NewLoader(Options{Select: "$[?"}, nil); !errors.Is(err, ErrInvalidSelect) {
		t.Fatalf("NewLoader() error = %v, want ErrInvalidSelect", err)
	}
	if err := ValidateSelect("$.a.b"); err != nil {
		t.Fatalf("ValidateSelect() error = %v", err)
	}
}
