// Package distribute paginates a length-sorted URL list onto the text frames
// of a presentation's slides.
package distribute

import (
	"context"
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the number of URLs per slide until a long URL is seen.
	DefaultChunkSize = 15
	// ReducedChunkSize applies to every chunk after one containing a long URL.
	ReducedChunkSize = 10
	// LongURLThreshold is the character length above which the chunk size drops.
	LongURLThreshold = 110
	// TextBoxIndex is the 0-based shape index holding the target text frame.
	TextBoxIndex = 5
)

// Style is the fixed paragraph formatting applied to every written line.
type Style struct {
	Font        string
	SizePt      float64
	SpaceBefore float64
	SpaceAfter  float64
}

// DefaultStyle is Montserrat 28pt without paragraph spacing.
var DefaultStyle = Style{Font: "Montserrat", SizePt: 28}

// Chunk is a contiguous run of URLs assigned to one slide.
type Chunk struct {
	Slide int
	URLs  []string
}

// Plan is the result of paginating a URL sequence against a slide count.
type Plan struct {
	Chunks []Chunk
	// Dropped counts URLs left over once every slide received a chunk.
	Dropped int
	// ChunkSize is the chunk size in effect when pagination stopped.
	ChunkSize int
}

// Written returns the number of URLs placed on slides.
func (p Plan) Written() int {
	n := 0
	for _, c := range p.Chunks {
		n += len(c.URLs)
	}
	return n
}

// Paginate splits urls into per-slide chunks. The chunk size starts at
// DefaultChunkSize and drops to ReducedChunkSize for every chunk after the
// first one holding a URL longer than LongURLThreshold characters; it never
// goes back up. Chunks beyond the last slide are dropped and counted.
func Paginate(urls []string, slides int) Plan {
	plan := Plan{ChunkSize: DefaultChunkSize}
	rest := urls
	slide := 0
	for len(rest) > 0 {
		n := plan.ChunkSize
		if n > len(rest) {
			n = len(rest)
		}
		chunk := rest[:n]
		rest = rest[n:]

		plan.ChunkSize = nextChunkSize(plan.ChunkSize, chunk)

		if slide >= slides {
			plan.Dropped = len(chunk) + len(rest)
			break
		}
		plan.Chunks = append(plan.Chunks, Chunk{Slide: slide, URLs: append([]string(nil), chunk...)})
		slide++
	}
	return plan
}

func nextChunkSize(current int, chunk []string) int {
	for _, u := range chunk {
		if utf8.RuneCountInString(u) > LongURLThreshold {
			return ReducedChunkSize
		}
	}
	return current
}

// TextFrame is an editable text container on a slide.
type TextFrame interface {
	Clear()
	AddParagraph(text string, style Style)
}

// Presentation is the document access needed to write chunks.
type Presentation interface {
	SlideCount() int
	TextFrame(slide, shape int) (TextFrame, error)
}

// Distributor writes a paginated URL list into a presentation.
type Distributor struct {
	ShapeIndex int
	Style      Style
}

// New returns a Distributor using the fixed text box index and style.
func New() *Distributor {
	return &Distributor{ShapeIndex: TextBoxIndex, Style: DefaultStyle}
}

// Distribute clears and fills the target text frame of each slide that
// receives a chunk. Every URL is followed by an empty spacer paragraph.
// Slides without a chunk are left untouched.
func (d *Distributor) Distribute(ctx context.Context, pres Presentation, urls []string) (Plan, error) {
	plan := Paginate(urls, pres.SlideCount())
	for _, c := range plan.Chunks {
		if err := ctx.Err(); err != nil {
			return plan, err
		}
		tf, err := pres.TextFrame(c.Slide, d.ShapeIndex)
		if err != nil {
			return plan, fmt.Errorf("slide %d: %w", c.Slide+1, err)
		}
		tf.Clear()
		for _, u := range c.URLs {
			tf.AddParagraph(u, d.Style)
			tf.AddParagraph("", d.Style)
		}
	}
	return plan, nil
}
