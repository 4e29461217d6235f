// Package geojson parses GeoJSON input into engine geometries. The parser
// uses https://github.com/tidwall/gjson to walk the document lazily, so a
// FeatureCollection is never unmarshalled wholesale; each feature's
// geometry object is handed to the engine's GeoJSON decoder as raw bytes.
// Properties and foreign members are ignored.
package geojson
