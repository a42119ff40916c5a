package imagemeta

import (
	"io"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// GPS holds a capture location decoded from EXIF tags, in signed
// decimal degrees.
type GPS struct {
	Latitude  float64
	Longitude float64
}

// ExtractGPS reads EXIF GPS tags from an image. Extraction is
// best-effort: missing EXIF data, missing GPS tags or malformed
// rationals all return (nil, false), never an error.
func ExtractGPS(r io.Reader) (*GPS, bool) {
	x, err := exif.Decode(r)
	if err != nil {
		return nil, false
	}

	lat, ok := decodeCoordinate(x, exif.GPSLatitude, exif.GPSLatitudeRef)
	if !ok {
		return nil, false
	}
	lon, ok := decodeCoordinate(x, exif.GPSLongitude, exif.GPSLongitudeRef)
	if !ok {
		return nil, false
	}

	return &GPS{Latitude: lat, Longitude: lon}, true
}

func decodeCoordinate(x *exif.Exif, field, refField exif.FieldName) (float64, bool) {
	tag, err := x.Get(field)
	if err != nil || tag.Count < 3 {
		return 0, false
	}

	var parts [3]float64
	for i := 0; i < 3; i++ {
		parts[i], err = ratFloat(tag, i)
		if err != nil {
			return 0, false
		}
	}

	refTag, err := x.Get(refField)
	if err != nil {
		return 0, false
	}
	ref, err := refTag.StringVal()
	if err != nil {
		return 0, false
	}

	return DMSToDecimal(parts[0], parts[1], parts[2], ref), true
}

func ratFloat(tag *tiff.Tag, i int) (float64, error) {
	num, den, err := tag.Rat2(i)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, nil
	}
	return float64(num) / float64(den), nil
}

// DMSToDecimal converts degrees/minutes/seconds plus a hemisphere
// reference ("N", "S", "E", "W") to signed decimal degrees. Southern
// and western hemispheres are negative.
func DMSToDecimal(degrees, minutes, seconds float64, ref string) float64 {
	dd := degrees + minutes/60 + seconds/3600
	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "S", "W":
		return -dd
	}
	return dd
}
