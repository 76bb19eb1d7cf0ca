package graphrender

import (
	"bytes"
	"testing"

	"github.com/mathcrusader/vargen/pkg/value"
)

func TestRenderProducesWellFormedSVG(t *testing.T) {
	g := &value.Graph{
		NumNodes: 4,
		Edges: []value.Edge{
			{U: 0, V: 1},
			{U: 1, V: 2},
			{U: 2, V: 3},
		},
	}
	out, err := Render(g, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(out, []byte("<svg")) {
		t.Fatalf("output does not look like an SVG document: %s", out)
	}
	if !bytes.Contains(out, []byte("</svg>")) {
		t.Fatalf("output is missing a closing </svg>: %s", out)
	}
}

func TestRenderWithNodeLabels(t *testing.T) {
	g := &value.Graph{
		NumNodes:   2,
		Edges:      []value.Edge{{U: 0, V: 1, Label: value.Str("road")}},
		NodeLabels: []value.Value{value.Str("start"), value.Str("end")},
	}
	out, err := Render(g, Options{Title: "test graph", ShowLabels: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(out, []byte("start")) || !bytes.Contains(out, []byte("end")) {
		t.Fatalf("expected node labels in output: %s", out)
	}
	if !bytes.Contains(out, []byte("road")) {
		t.Fatalf("expected edge label in output: %s", out)
	}
}

func TestRenderRejectsNilGraph(t *testing.T) {
	if _, err := Render(nil, DefaultOptions()); err == nil {
		t.Fatal("expected an error for a nil graph")
	}
}
