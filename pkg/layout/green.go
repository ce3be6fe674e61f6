package layout

import (
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
)

// GreenFeature wraps the unallocated residual as the layout's green and
// utility area. Returns false when nothing is left over.
func GreenFeature(residual geo.Region) (feature.Feature, bool) {
	if residual.IsEmpty() {
		return feature.Feature{}, false
	}
	return feature.NewGreen(residual, ""), true
}
