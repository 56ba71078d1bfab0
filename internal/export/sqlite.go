package export

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const buildingsDDL = `
CREATE TABLE IF NOT EXISTS buildings (
	id         TEXT NOT NULL,
	name       TEXT NOT NULL,
	era        TEXT NOT NULL,
	event      TEXT,
	size       REAL NOT NULL,
	road_tiles REAL NOT NULL,
	footprint  REAL NOT NULL,
	score      REAL NOT NULL,
	efficiency REAL NOT NULL,
	unranked   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (id, era)
);`

// WriteSQLite replaces the buildings table of the database at path with the
// given rows. The snapshot is written in one transaction: readers never see
// a half-replaced table.
func WriteSQLite(path string, rows []Row) error {
	if path == "" {
		return fmt.Errorf("empty db path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(buildingsDDL); err != nil {
		return fmt.Errorf("create buildings table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM buildings`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO buildings
		(id, name, era, event, size, road_tiles, footprint, score, efficiency, unranked)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		unranked := 0
		if r.Unranked {
			unranked = 1
		}
		if _, err := stmt.Exec(r.ID, r.Name, r.Era, r.Event, r.Size, r.RoadTiles,
			r.Footprint, r.Score, r.Efficiency, unranked); err != nil {
			return fmt.Errorf("insert building %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}
