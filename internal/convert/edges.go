// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "io"

// EdgePairer writes each vertex paired with the one before it:
//
//	v1
//	v2
//
//	v2
//	v3
//
//	v3
//
// Every pair is followed by a blank line, and Flush repeats the last vertex
// once more without a trailing newline. Renderers reading the lines file rely
// on this layout byte for byte.
type EdgePairer struct {
	w    io.Writer
	prev string
	held bool
}

// NewEdgePairer returns an EdgePairer writing to w.
func NewEdgePairer(w io.Writer) *EdgePairer {
	return &EdgePairer{w: w}
}

// Add emits the pair (previous, line) if a previous vertex is held, then
// holds line.
func (p *EdgePairer) Add(line string) error {
	if p.held {
		if _, err := io.WriteString(p.w, p.prev+"\n"+line+"\n\n"); err != nil {
			return err
		}
	}
	p.prev, p.held = line, true
	return nil
}

// Flush writes the held vertex, if any, with no trailing newline.
func (p *EdgePairer) Flush() error {
	if !p.held {
		return nil
	}
	_, err := io.WriteString(p.w, p.prev)
	return err
}
