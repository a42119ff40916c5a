package util

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/twpayne/go-polyline"
)

var shortCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// DecodePolyLines decodes a precision-1e5 encoded polyline into
// [lat, lon] pairs.
func DecodePolyLines(shape string) ([][]float64, error) {
	decoded, _, err := polyline.DecodeCoords([]byte(shape))
	if err != nil {
		log.Println("error deocoding polyline: ", err)
		return nil, fmt.Errorf("failed to decode polyline %w", err)
	}
	return decoded, nil
}

// DecodePolyline6 decodes a precision-1e6 encoded polyline, the format
// the Map Matching API returns when geometries=polyline6 is requested.
func DecodePolyline6(shape string) ([][]float64, error) {
	codec := polyline.Codec{Dim: 2, Scale: 1e6}
	decoded, _, err := codec.DecodeCoords([]byte(shape))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline6 %w", err)
	}
	return decoded, nil
}

// CoordsToLonLat converts decoded [lat, lon] polyline pairs to the
// [lon, lat] order used by GeoJSON and map libraries.
func CoordsToLonLat(coords [][]float64) [][]float64 {
	lonLat := make([][]float64, len(coords))
	for i, c := range coords {
		lonLat[i] = []float64{c[1], c[0]}
	}
	return lonLat
}

func GenerateShortCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = shortCodeCharset[rand.Intn(len(shortCodeCharset))]
	}
	return string(b)
}
