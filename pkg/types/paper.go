// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-digest pipeline:
// the Paper record produced by the listing source, its summarized form, the
// ephemeral chat exchange, and the configuration blocks for every stage.
package types

import "time"

// Paper holds the listing metadata for one recently published paper.
// Papers are value objects: created by the source and never mutated.
type Paper struct {
	// ID is the stable external identifier, the arXiv entry id URL
	// (e.g. "http://arxiv.org/abs/2410.01234v1").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with wrapped whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract with wrapped whitespace collapsed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order. May be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the first-version publication instant in UTC.
	Published time.Time `json:"published" yaml:"published"`

	// PDFURL links to the paper PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}

// SummarizedPaper is a Paper together with its generated summary.
type SummarizedPaper struct {
	Paper `yaml:",inline"`

	// Summary is the model-generated bullet-point summary.
	Summary string `json:"summary" yaml:"summary"`
}

// ChatExchange records one question answered from cached papers. It is not persisted.
type ChatExchange struct {
	Question      string  `json:"question"`
	ContextPapers []Paper `json:"context_papers"`
	Answer        string  `json:"answer"`
}
