package preprocessing

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/nazihkhelifa/servair-webapp/routing"
	"github.com/paulmach/orb/geojson"

	_ "modernc.org/sqlite"
)

// DefaultRoadsTable is read when no table name is configured.
const DefaultRoadsTable = "road_segments"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadRoadsFromSQLite opens the database at path and reads its road table.
func LoadRoadsFromSQLite(ctx context.Context, path, table string) ([]routing.RoadSegment, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDataLoad, path, err)
	}
	defer db.Close()

	segments, skipped, err := QueryRoads(ctx, db, table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logSummary(path, segments, skipped)
	return segments, nil
}

// QueryRoads reads rows of
//
//	id        TEXT
//	geometry  TEXT  GeoJSON geometry object
//	maxspeed  TEXT  nullable, free-form
//
// in rowid order. Rows whose geometry is not a line are skipped and counted.
func QueryRoads(ctx context.Context, db *sql.DB, table string) ([]routing.RoadSegment, int, error) {
	if table == "" {
		table = DefaultRoadsTable
	}
	if !tableName.MatchString(table) {
		return nil, 0, fmt.Errorf("%w: invalid table name %q", ErrDataLoad, table)
	}

	rows, err := db.QueryContext(ctx, `SELECT id, geometry, maxspeed FROM `+table+` ORDER BY rowid`)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: query %s: %w", ErrDataLoad, table, err)
	}
	defer rows.Close()

	var segments []routing.RoadSegment
	skipped := 0
	for rows.Next() {
		var (
			id       string
			geometry string
			maxSpeed sql.NullString
		)
		if err := rows.Scan(&id, &geometry, &maxSpeed); err != nil {
			return nil, 0, fmt.Errorf("%w: scan %s row: %w", ErrDataLoad, table, err)
		}

		g, err := geojson.UnmarshalGeometry([]byte(geometry))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: road %s geometry: %w", ErrDataLoad, id, err)
		}

		speed := routing.SpeedTag{}
		if maxSpeed.Valid {
			speed = routing.TextSpeed(maxSpeed.String)
		}

		var ok bool
		segments, ok = appendLines(segments, id, g.Geometry(), speed)
		if !ok {
			skipped++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: read %s: %w", ErrDataLoad, table, err)
	}

	return segments, skipped, nil
}
