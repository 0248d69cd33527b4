// Package graphml loads topology graphs from GraphML files.
//
// Only the subset of GraphML the topology format uses is understood: <key>
// declarations mapping data ids to attribute names, and an undirected
// <graph> of <node> and <edge> elements carrying <data> attributes.
package graphml

import (
	"encoding/xml"
	"os"
	"strings"

	"netcost/core/graph"
	"netcost/internal/errors"
)

type xmlDocument struct {
	XMLName xml.Name   `xml:"graphml"`
	Keys    []xmlKey   `xml:"key"`
	Graphs  []xmlGraph `xml:"graph"`
}

type xmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
}

type xmlGraph struct {
	EdgeDefault string    `xml:"edgedefault,attr"`
	Nodes       []xmlNode `xml:"node"`
	Edges       []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []xmlData `xml:"data"`
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Load reads a GraphML file into a graph. A missing file yields a not found
// error; unparseable content yields a malformed data error.
func Load(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("graph file", path)
		}
		return nil, errors.Wrapf(errors.TypeInternal, err, "reading graph file %s", path)
	}
	return Parse(data)
}

// Parse decodes GraphML content into a graph. Edges appear in document
// order, which becomes the graph's stable edge iteration order.
func Parse(data []byte) (*graph.Graph, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Malformed("decoding graphml", err)
	}
	if len(doc.Graphs) == 0 {
		return nil, errors.Malformed("graphml has no <graph> element", nil)
	}

	// Data elements reference <key> ids; resolve them to attribute names.
	// Keys without an attr.name fall back to their id.
	attrNames := make(map[string]string, len(doc.Keys))
	for _, key := range doc.Keys {
		name := key.AttrName
		if name == "" {
			name = key.ID
		}
		attrNames[key.ID] = name
	}

	g := graph.New()
	for _, xg := range doc.Graphs {
		for _, node := range xg.Nodes {
			g.AddNode(node.ID, toAttrs(node.Data, attrNames))
		}
		for _, edge := range xg.Edges {
			g.AddEdge(edge.Source, edge.Target, toAttrs(edge.Data, attrNames))
		}
	}
	return g, nil
}

func toAttrs(data []xmlData, attrNames map[string]string) graph.Attrs {
	attrs := make(graph.Attrs, len(data))
	for _, d := range data {
		name, ok := attrNames[d.Key]
		if !ok {
			name = d.Key
		}
		attrs[name] = strings.TrimSpace(d.Value)
	}
	return attrs
}
