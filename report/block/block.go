/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package block maps text chunks onto document blocks.
package block

// Kind identifies the type of a document block.
type Kind string

// Paragraph is a plain text block.
const Paragraph Kind = "paragraph"

// Block is a single unit of page content in the document store.
type Block struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Build wraps each chunk in a paragraph block, preserving order.
// An empty input yields an empty output.
func Build(chunks []string) []Block {
	blocks := make([]Block, 0, len(chunks))
	for _, c := range chunks {
		blocks = append(blocks, Block{Kind: Paragraph, Text: c})
	}
	return blocks
}

// Texts returns the text of each block in order.
func Texts(blocks []Block) []string {
	texts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		texts = append(texts, b.Text)
	}
	return texts
}
