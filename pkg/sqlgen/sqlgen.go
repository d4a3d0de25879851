// Package sqlgen renders parts, hardware and drilling locations as SQL
// INSERT statements. It only produces text; nothing here talks to a
// database.
package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/cabdrill/pkg/hardware"
	"github.com/chazu/cabdrill/pkg/location"
	"github.com/chazu/cabdrill/pkg/part"
)

// Statements is the output of Emit.
type Statements struct {
	PartInsert      string   `json:"part_insert"`
	HardwareInsert  string   `json:"hardware_insert"`
	DrillingInserts []string `json:"drilling_inserts"`
	Combined        string   `json:"combined"`
}

// Quote renders s as a SQL string literal, doubling embedded quotes.
// The empty string renders as NULL.
func Quote(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Number renders v as a SQL numeric literal.
func Number(v float64) string {
	return strconv.FormatFloat(location.Round3(v), 'f', -1, 64)
}

// Emit builds the INSERT statements for one part. The part row is omitted
// when p is nil or untyped; the hardware row when hw is nil or has no id.
func Emit(p *part.Descriptor, hw *hardware.Spec, records []location.Record) Statements {
	var st Statements
	if p != nil && p.Type != "" {
		st.PartInsert = partInsert(*p)
	}
	if hw != nil && hw.ID != "" {
		st.HardwareInsert = hardwareInsert(*hw)
	}
	st.DrillingInserts = make([]string, 0, len(records))
	for _, r := range records {
		st.DrillingInserts = append(st.DrillingInserts, drillingInsert(r))
	}

	var blocks []string
	for _, b := range []string{st.PartInsert, st.HardwareInsert, strings.Join(st.DrillingInserts, "\n")} {
		if b != "" {
			blocks = append(blocks, b)
		}
	}
	st.Combined = strings.Join(blocks, "\n\n")
	return st
}

func partInsert(p part.Descriptor) string {
	return fmt.Sprintf(
		"INSERT INTO parts (id, type, length_mm, width_mm, thickness_mm, origin, face, system_pitch_mm) VALUES (%s, %s, %s, %s, %s, %s, %s, %s);",
		Quote(p.ID()),
		Quote(string(p.Type)),
		Number(p.Length),
		Number(p.Width),
		Number(p.Thickness),
		Quote(string(p.Origin.OrDefault())),
		Quote(p.FaceOrDefault()),
		Number(part.SystemPitch),
	)
}

func hardwareInsert(hw hardware.Spec) string {
	return fmt.Sprintf(
		"INSERT INTO hardware (id, label, category, pattern, metadata_json) VALUES (%s, %s, %s, %s, %s) ON CONFLICT (id) DO NOTHING;",
		Quote(hw.ID),
		Quote(hw.Label),
		Quote(string(hw.Category)),
		Quote(string(hw.Pattern())),
		Quote(hw.MetadataJSON()),
	)
}

func drillingInsert(r location.Record) string {
	return fmt.Sprintf(
		"INSERT INTO drilling_locations (part_id, seq, x_mm, y_mm, diameter_mm, depth_mm, hardware_id, feature_type, face, origin) VALUES (%s, %d, %s, %s, %s, %s, %s, %s, %s, %s);",
		Quote(r.PartID),
		r.Seq,
		Number(r.X),
		Number(r.Y),
		Number(r.Diameter),
		Number(r.Depth),
		Quote(r.HardwareID),
		Quote(r.FeatureType),
		Quote(r.Face),
		Quote(string(r.Origin)),
	)
}

const schema = `CREATE TABLE IF NOT EXISTS parts (
    id              TEXT PRIMARY KEY,
    type            TEXT NOT NULL,
    length_mm       NUMERIC(10,3) NOT NULL,
    width_mm        NUMERIC(10,3) NOT NULL,
    thickness_mm    NUMERIC(10,3),
    origin          TEXT,
    face            TEXT,
    system_pitch_mm NUMERIC(10,3)
);

CREATE TABLE IF NOT EXISTS hardware (
    id            TEXT PRIMARY KEY,
    label         TEXT,
    category      TEXT,
    pattern       TEXT,
    metadata_json TEXT
);

CREATE TABLE IF NOT EXISTS drilling_locations (
    part_id      TEXT NOT NULL,
    seq          INTEGER NOT NULL,
    x_mm         NUMERIC(10,3) NOT NULL,
    y_mm         NUMERIC(10,3) NOT NULL,
    diameter_mm  NUMERIC(10,3) NOT NULL,
    depth_mm     NUMERIC(10,3) NOT NULL,
    hardware_id  TEXT,
    feature_type TEXT,
    face         TEXT,
    origin       TEXT
);
`

// Schema returns the DDL for the tables Emit writes to.
func Schema() string { return schema }
