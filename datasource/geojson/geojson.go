package geojson

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/go-geounion/geounion"
	"github.com/go-geounion/geounion/errors"
)

// ParserConf configures a GeoJSON Parser
type ParserConf struct {
	SkipEmpty bool // iff true, features with a null geometry are dropped instead of reported as an error
}

// Parser produces engine geometries from GeoJSON data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new GeoJSON Parser. The input may be a
// FeatureCollection, a single Feature, or a bare geometry object.
func CreateParser(conf *ParserConf) *Parser {
	if conf == nil {
		conf = &ParserConf{}
	}
	return &Parser{conf: conf}
}

// Parse extracts every geometry from a GeoJSON document, in document
// order, decoding each through the given engine.
func (p *Parser) Parse(engine geounion.Engine, data []byte) ([]geounion.Geometry, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.NotGeoJSONError{Type: "invalid JSON"}
	}
	doc := gjson.ParseBytes(data)
	docType := doc.Get("type").String()
	switch docType {
	case "FeatureCollection":
		var geoms []geounion.Geometry
		var parseErr error
		doc.Get("features").ForEach(func(_, feature gjson.Result) bool {
			g, err := p.parseFeature(engine, feature, len(geoms))
			if err != nil {
				parseErr = err
				return false
			}
			if g != nil {
				geoms = append(geoms, g)
			}
			return true
		})
		if parseErr != nil {
			return nil, parseErr
		}
		return geoms, nil
	case "Feature":
		g, err := p.parseFeature(engine, doc, 0)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, nil
		}
		return []geounion.Geometry{g}, nil
	case "Point", "MultiPoint", "LineString", "MultiLineString",
		"Polygon", "MultiPolygon", "GeometryCollection":
		g, err := engine.FromGeoJSON(data)
		if err != nil {
			return nil, err
		}
		return []geounion.Geometry{g}, nil
	default:
		return nil, errors.NotGeoJSONError{Type: docType}
	}
}

// parseFeature decodes one feature's geometry, honoring the null-geometry
// policy.
func (p *Parser) parseFeature(engine geounion.Engine, feature gjson.Result, index int) (geounion.Geometry, error) {
	geom := feature.Get("geometry")
	if !geom.Exists() || geom.Type == gjson.Null {
		if p.conf.SkipEmpty {
			return nil, nil
		}
		return nil, fmt.Errorf("feature %d has no geometry", index)
	}
	g, err := engine.FromGeoJSON([]byte(geom.Raw))
	if err != nil {
		return nil, fmt.Errorf("feature %d: %w", index, err)
	}
	return g, nil
}
