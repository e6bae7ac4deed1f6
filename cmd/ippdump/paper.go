/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Paper Size Classifier
 */

package main

import (
	"fmt"
	"strconv"

	"github.com/OpenPrinting/ippwire"
)

// PaperSize represents paper size, in IPP units (1/100 mm)
type PaperSize struct {
	Width, Height int // Paper width and height
}

// Standard paper sizes
//
//	                US name      US inches   US mm           ISO mm
//	"legal-A4"      A, Legal     8.5 x 14    215.9 x 355.6   A4: 210 x 297
//	"tabloid-A3"    B, Tabloid   11 x 17     279.4 x 431.8   A3: 297 x 420
//	"isoC-A2"       C            17 × 22     431.8 × 558.8   A2: 420 x 594
var (
	PaperLegal   = PaperSize{21590, 35560}
	PaperA4      = PaperSize{21000, 29700}
	PaperTabloid = PaperSize{27940, 43180}
	PaperA3      = PaperSize{29700, 42000}
	PaperC       = PaperSize{43180, 55880}
	PaperA2      = PaperSize{42000, 59400}
)

// Less checks that p is less that p2: one of dimensions is less,
// and the other is not greater
func (p PaperSize) Less(p2 PaperSize) bool {
	return (p.Width < p2.Width && p.Height <= p2.Height) ||
		(p.Height < p2.Height && p.Width <= p2.Width)
}

// Classify returns the size class of the paper:
//
//	">isoC-A2"   for paper larger that C or A2
//	"isoC-A2"    for C or A2 paper
//	"tabloid-A3" for Tabloid or A3 paper
//	"legal-A4"   for Legal or A4 paper
//	"<legal-A4"  for paper smaller that Legal or A4
func (p PaperSize) Classify() string {
	switch {
	case PaperC.Less(p) || PaperA2.Less(p):
		return ">isoC-A2"

	case !p.Less(PaperC) || !p.Less(PaperA2):
		return "isoC-A2"

	case !p.Less(PaperTabloid) || !p.Less(PaperA3):
		return "tabloid-A3"

	case !p.Less(PaperLegal) || !p.Less(PaperA4):
		return "legal-A4"

	default:
		return "<legal-A4"
	}
}

// String returns paper size with its class, for logging
func (p PaperSize) String() string {
	return fmt.Sprintf("%dx%d (%s)", p.Width, p.Height, p.Classify())
}

// MediaSizes returns sizes of all "media-size" collections,
// found in groups at any depth. Collections with non-integer
// dimensions (i.e., ranges of custom sizes) are skipped
func MediaSizes(groups ippwire.Groups) []PaperSize {
	var sizes []PaperSize
	var walk func(cols ippwire.Collections)

	walk = func(cols ippwire.Collections) {
		for _, c := range cols {
			if c.Name == "media-size" && !c.SetOf {
				if p, ok := paperSizeOf(c); ok {
					sizes = append(sizes, p)
				}
			}
			walk(c.Collections)
		}
	}

	for _, g := range groups {
		walk(g.Collections)
	}

	return sizes
}

// paperSizeOf decodes x-dimension and y-dimension members
// of the media-size collection
func paperSizeOf(c ippwire.Collection) (PaperSize, bool) {
	dim := func(name string) (int, bool) {
		attr, found := c.Attributes.Lookup(name)
		if !found || attr.Syntax != ippwire.TagInteger ||
			len(attr.Values) != 1 {
			return 0, false
		}

		v, err := strconv.Atoi(attr.Values[0])
		return v, err == nil
	}

	w, ok1 := dim("x-dimension")
	h, ok2 := dim("y-dimension")

	return PaperSize{w, h}, ok1 && ok2
}
