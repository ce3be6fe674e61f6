// Package render draws a generated layout as a top-down PNG for quick
// inspection: green residual under tan parcels under dark roads, with
// the buildable footprint outlined.
package render

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
)

// marginPx is the blank border around the drawn site.
const marginPx = 20

// fill colors per land use, hex RGB.
const (
	backgroundHex = "#f5f2e9"
	buildableHex  = "#cde6c3"
	greenHex      = "#2e8b57"
	parcelHex     = "#d2b48c"
	parcelEdgeHex = "#8b7355"
	roadHex       = "#333333"
	junctionHex   = "#4a4a4a"
	outlineHex    = "#1a5c1a"
)

// WritePNG renders the feature set to a PNG of the given pixel width; the
// height follows the site's aspect ratio. Fails when no feature has any
// geometry to size the canvas by.
func WritePNG(w io.Writer, features []feature.Feature, widthPx int) error {
	lo, hi, ok := bounds(features)
	if !ok {
		return fmt.Errorf("no geometry to render")
	}
	if widthPx <= 0 {
		widthPx = 1024
	}

	spanX, spanY := hi.X-lo.X, hi.Y-lo.Y
	scale := float64(widthPx-2*marginPx) / spanX
	heightPx := int(spanY*scale) + 2*marginPx

	ctx := gg.NewContext(widthPx, heightPx)
	ctx.SetFillRule(gg.FillRuleEvenOdd)
	ctx.SetHexColor(backgroundHex)
	ctx.Clear()

	// Screen Y grows downward, site Y grows northward.
	toScreen := func(p geo.Point) (float64, float64) {
		return marginPx + (p.X-lo.X)*scale, float64(heightPx) - marginPx - (p.Y-lo.Y)*scale
	}

	// Draw order fixes the stacking: footprint, green, parcels, roads.
	order := []feature.Type{feature.TypeBuildable, feature.TypeGreen, feature.TypeParcel, feature.TypeRoad}
	for _, t := range order {
		for _, f := range features {
			if f.Properties.Type != t {
				continue
			}
			drawFeature(ctx, f, toScreen)
		}
	}

	return ctx.EncodePNG(w)
}

func drawFeature(ctx *gg.Context, f feature.Feature, toScreen func(geo.Point) (float64, float64)) {
	for _, poly := range f.Geometry.Polygons() {
		// Holes punch out via the even-odd fill rule.
		for _, ring := range poly {
			tracePath(ctx, ring, toScreen)
		}
		switch f.Properties.Type {
		case feature.TypeBuildable:
			ctx.SetHexColor(buildableHex)
			ctx.FillPreserve()
			ctx.SetHexColor(outlineHex)
			ctx.SetLineWidth(2)
			ctx.Stroke()
		case feature.TypeGreen:
			ctx.SetHexColor(greenHex)
			ctx.Fill()
		case feature.TypeParcel:
			ctx.SetHexColor(parcelHex)
			ctx.FillPreserve()
			ctx.SetHexColor(parcelEdgeHex)
			ctx.SetLineWidth(1)
			ctx.Stroke()
		case feature.TypeRoad:
			if f.Properties.RoadType == feature.RoadJunction {
				ctx.SetHexColor(junctionHex)
			} else {
				ctx.SetHexColor(roadHex)
			}
			ctx.Fill()
		default:
			ctx.ClearPath()
		}
	}
}

func tracePath(ctx *gg.Context, ring geo.Ring, toScreen func(geo.Point) (float64, float64)) {
	for i, p := range ring {
		x, y := toScreen(p)
		if i == 0 {
			ctx.MoveTo(x, y)
		} else {
			ctx.LineTo(x, y)
		}
	}
	ctx.ClosePath()
}

func bounds(features []feature.Feature) (lo, hi geo.Point, ok bool) {
	for _, f := range features {
		if f.Geometry.IsEmpty() {
			continue
		}
		flo, fhi := f.Geometry.BoundingBox()
		if !ok {
			lo, hi, ok = flo, fhi, true
			continue
		}
		if flo.X < lo.X {
			lo.X = flo.X
		}
		if flo.Y < lo.Y {
			lo.Y = flo.Y
		}
		if fhi.X > hi.X {
			hi.X = fhi.X
		}
		if fhi.Y > hi.Y {
			hi.Y = fhi.Y
		}
	}
	if ok && (hi.X-lo.X < 1e-9 || hi.Y-lo.Y < 1e-9) {
		return lo, hi, false
	}
	return lo, hi, ok
}
