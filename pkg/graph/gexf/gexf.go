// Package gexf loads a victory graph from a GEXF file, the XML graph format
// written by the offline scraper (networkx write_gexf).
package gexf

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/papercomputeco/beatpath/pkg/graph"
)

type document struct {
	XMLName xml.Name  `xml:"gexf"`
	Graph   graphElem `xml:"graph"`
}

type graphElem struct {
	DefaultEdgeType string       `xml:"defaultedgetype,attr"`
	Attributes      []attributes `xml:"attributes"`
	Nodes           []nodeElem   `xml:"nodes>node"`
	Edges           []edgeElem   `xml:"edges>edge"`
}

type attributes struct {
	Class string      `xml:"class,attr"`
	Attrs []attribute `xml:"attribute"`
}

type attribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
}

type attvalue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type nodeElem struct {
	ID        string     `xml:"id,attr"`
	Label     string     `xml:"label,attr"`
	AttValues []attvalue `xml:"attvalues>attvalue"`
}

type edgeElem struct {
	Source    string     `xml:"source,attr"`
	Target    string     `xml:"target,attr"`
	Weight    string     `xml:"weight,attr"`
	Label     string     `xml:"label,attr"`
	Type      string     `xml:"type,attr"`
	AttValues []attvalue `xml:"attvalues>attvalue"`
}

// Source reads the graph from a GEXF file on every Load.
type Source struct {
	Path string
}

// NewSource creates a GEXF file source.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// Load implements graph.Source. A missing file yields an error wrapping
// os.ErrNotExist.
func (s *Source) Load(_ context.Context) (*graph.Graph, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.Path, err)
	}
	return g, nil
}

// Decode parses a GEXF document.
func Decode(r io.Reader) (*graph.Graph, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing GEXF: %w", err)
	}

	titles := map[string]map[string]string{}
	for _, set := range doc.Graph.Attributes {
		byID := titles[set.Class]
		if byID == nil {
			byID = map[string]string{}
			titles[set.Class] = byID
		}
		for _, a := range set.Attrs {
			byID[a.ID] = a.Title
		}
	}

	b := graph.NewBuilder()
	for _, n := range doc.Graph.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node without id")
		}
		label := n.Label
		if label == "" {
			label = lookupAttr(titles["node"], n.AttValues, "label")
		}
		b.AddNode(n.ID, label)
	}

	undirectedDefault := strings.EqualFold(doc.Graph.DefaultEdgeType, "undirected")
	for _, e := range doc.Graph.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("edge without source or target")
		}

		weight, err := edgeWeight(e, titles["edge"])
		if err != nil {
			return nil, err
		}

		label := e.Label
		if label == "" {
			label = lookupAttr(titles["edge"], e.AttValues, "label")
		}

		if err := b.AddEdge(e.Source, e.Target, weight, label); err != nil {
			return nil, err
		}

		undirected := undirectedDefault
		if e.Type != "" {
			undirected = strings.EqualFold(e.Type, "undirected")
		}
		if undirected {
			if err := b.AddEdge(e.Target, e.Source, weight, label); err != nil {
				return nil, err
			}
		}
	}

	return b.Build(), nil
}

func edgeWeight(e edgeElem, titles map[string]string) (float64, error) {
	raw := e.Weight
	if raw == "" {
		raw = lookupAttr(titles, e.AttValues, "weight")
	}
	if raw == "" {
		return graph.DefaultWeight, nil
	}

	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("edge %s -> %s: invalid weight %q: %w", e.Source, e.Target, raw, err)
	}
	return w, nil
}

func lookupAttr(titles map[string]string, values []attvalue, title string) string {
	for _, v := range values {
		if t, ok := titles[v.For]; ok && t == title {
			return v.Value
		}
		if v.For == title {
			return v.Value
		}
	}
	return ""
}
