// Package weather implements the Korea Meteorological Administration
// village forecast client: nowcast observations, six-hour nowcast
// forecasts, and three-day short-term forecasts, formatted as Korean text.
package weather

import "math"

// Lambert conformal conic projection parameters for the KMA forecast grid.
const (
	earthRadiusKM = 6371.00877
	gridSpacingKM = 5.0
	standardLat1  = 30.0
	standardLat2  = 60.0
	originLon     = 126.0
	originLat     = 38.0
	originGridX   = 210.0 / gridSpacingKM
	originGridY   = 675.0 / gridSpacingKM
)

// GridPoint is one cell of the KMA 5km forecast grid.
type GridPoint struct {
	NX int
	NY int
}

type projection struct {
	re float64
	sn float64
	sf float64
	ro float64
}

// The projection constants depend only on the fixed parameters above, so
// they are computed once.
var grid = newProjection()

func newProjection() projection {
	const degToRad = math.Pi / 180.0

	slat1 := standardLat1 * degToRad
	slat2 := standardLat2 * degToRad
	olat := originLat * degToRad

	re := earthRadiusKM / gridSpacingKM
	sn := math.Tan(math.Pi*0.25+slat2*0.5) / math.Tan(math.Pi*0.25+slat1*0.5)
	sn = math.Log(math.Cos(slat1)/math.Cos(slat2)) / math.Log(sn)
	sf := math.Pow(math.Tan(math.Pi*0.25+slat1*0.5), sn) * math.Cos(slat1) / sn
	ro := re * sf / math.Pow(math.Tan(math.Pi*0.25+olat*0.5), sn)

	return projection{re: re, sn: sn, sf: sf, ro: ro}
}

// ToGrid projects a lon/lat coordinate onto the forecast grid.
func ToGrid(lon, lat float64) GridPoint {
	const degToRad = math.Pi / 180.0

	ra := math.Tan(math.Pi*0.25 + lat*degToRad*0.5)
	ra = grid.re * grid.sf / math.Pow(ra, grid.sn)

	theta := lon*degToRad - originLon*degToRad
	if theta > math.Pi {
		theta -= 2.0 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2.0 * math.Pi
	}
	theta *= grid.sn

	x := ra*math.Sin(theta) + originGridX
	y := grid.ro - ra*math.Cos(theta) + originGridY
	return GridPoint{NX: int(x + 1.5), NY: int(y + 1.5)}
}
