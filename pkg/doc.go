// Package pkg provides the core libraries for mipviz model visualization.
//
// # Overview
//
// Mipviz turns mixed-integer programming files into pictures of their
// variable structure: variables become nodes, shared constraints become
// edges, and betweenness centrality highlights the variables that hold the
// model together. The pkg directory is organized into four main areas:
//
//  1. [parse] - Input formats (LP and MPS readers, format detection)
//  2. [model], [graph] - Domain structures (variables, constraints, co-occurrence graph)
//  3. [layout], [centrality], [render] - Analysis and drawing
//  4. [pipeline] - Orchestration (parse → graph → analyze → render) with caching
//
// # Architecture
//
// The typical data flow through mipviz:
//
//	LP/MPS file (optionally .gz or .tar.gz)
//	         ↓
//	    [parse] package (variable/constraint structure)
//	         ↓
//	    [graph] package (co-occurrence projection)
//	         ↓
//	    [layout] + [centrality] packages (positions, scores)
//	         ↓
//	    [render] package (PNG output)
//
// # Quick Start
//
// Run the full pipeline with caching:
//
//	import (
//	    "context"
//	    "github.com/mipviz/mipviz/pkg/cache"
//	    "github.com/mipviz/mipviz/pkg/pipeline"
//	)
//
//	c, _ := cache.NewFileCache("/tmp/mipviz-cache")
//	runner := pipeline.NewRunner(c, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Input: "model.lp.gz",
//	    Dark:  true,
//	})
//
// [parse]: github.com/mipviz/mipviz/pkg/parse
// [model]: github.com/mipviz/mipviz/pkg/model
// [graph]: github.com/mipviz/mipviz/pkg/graph
// [layout]: github.com/mipviz/mipviz/pkg/layout
// [centrality]: github.com/mipviz/mipviz/pkg/centrality
// [render]: github.com/mipviz/mipviz/pkg/render
// [pipeline]: github.com/mipviz/mipviz/pkg/pipeline
package pkg
