package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	gcodeSafeZ      = 5.0
	gcodePlungeFeed = 800.0
	gcodeSpindleRPM = 18000
)

func writeCSV(rows [][]string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	// WriteAll only fails on writer errors; strings.Builder never errors.
	_ = w.WriteAll(rows)
	return b.String()
}

func materialLabel(thickness float64) string {
	return FormatNumber(thickness) + "mm board"
}

// ---------------------------------------------------------------------------
// Cabinet Vision style CSV
// ---------------------------------------------------------------------------

func cabinetVisionCSV(c sheet) string {
	rows := [][]string{{
		"PartID", "PartType", "Length", "Width", "Thickness", "Face", "Origin",
		"HoleNo", "X", "Y", "Diameter", "Depth", "HardwareID", "Feature",
	}}
	for _, r := range c.records {
		rows = append(rows, []string{
			r.PartID,
			string(c.part.Type),
			FormatNumber(c.part.Length),
			FormatNumber(c.part.Width),
			FormatNumber(c.part.Thickness),
			r.Face,
			string(r.Origin),
			strconv.Itoa(r.Seq),
			FormatNumber(r.X),
			FormatNumber(r.Y),
			FormatNumber(r.Diameter),
			FormatNumber(r.Depth),
			r.HardwareID,
			r.FeatureType,
		})
	}
	return writeCSV(rows)
}

// ---------------------------------------------------------------------------
// Microvellum style CSV
// ---------------------------------------------------------------------------

func microvellumCSV(c sheet) string {
	rows := [][]string{{
		"PartName", "Material", "PartLength", "PartWidth", "Face",
		"OpType", "OpNo", "PosX", "PosY", "Diameter", "Depth", "Hardware", "Feature",
	}}
	material := materialLabel(c.part.Thickness)
	for _, r := range c.records {
		rows = append(rows, []string{
			r.PartID,
			material,
			FormatNumber(c.part.Length),
			FormatNumber(c.part.Width),
			r.Face,
			"DRILL",
			strconv.Itoa(r.Seq),
			FormatNumber(r.X),
			FormatNumber(r.Y),
			FormatNumber(r.Diameter),
			FormatNumber(r.Depth),
			c.hardwareLabel(r.HardwareID),
			r.FeatureType,
		})
	}
	return writeCSV(rows)
}

// hardwareLabel prefers the catalog label when the record's hardware matches.
func (c sheet) hardwareLabel(id string) string {
	if c.hw.ID != "" && c.hw.ID == id && c.hw.Label != "" {
		return c.hw.Label
	}
	return id
}

// ---------------------------------------------------------------------------
// WoodWOP style MPR
// ---------------------------------------------------------------------------

func woodwopMPR(c sheet) string {
	var b strings.Builder
	b.WriteString("BEGIN MPR\n")
	fmt.Fprintf(&b, "PART;%s;%s;%s;%s\n", c.partID,
		FormatNumber(c.part.Length), FormatNumber(c.part.Width), FormatNumber(c.part.Thickness))
	fmt.Fprintf(&b, "ORIGIN;%s;FACE;%s\n", c.origin(), c.face())
	for _, r := range c.records {
		fmt.Fprintf(&b, "BO;%d;%s;%s;%s;%s;0;0;0;%s\n", r.Seq,
			FormatNumber(r.X), FormatNumber(r.Y), FormatNumber(r.Diameter), FormatNumber(r.Depth),
			strings.ToUpper(r.FeatureType))
	}
	b.WriteString("END MPR\n")
	return b.String()
}

// ---------------------------------------------------------------------------
// Biesse style CIX
// ---------------------------------------------------------------------------

func biesseCIX(c sheet) string {
	var b strings.Builder
	b.WriteString("@BEGIN\n")
	fmt.Fprintf(&b, "@PANEL \"%s\",%s,%s,%s\n", c.partID,
		FormatNumber(c.part.Length), FormatNumber(c.part.Width), FormatNumber(c.part.Thickness))
	for _, r := range c.records {
		fmt.Fprintf(&b, "@DRILL \"D%d\",%s,%s,%s,%s,0,0,\"%s\"\n", r.Seq,
			FormatNumber(r.X), FormatNumber(r.Y), FormatNumber(r.Diameter), FormatNumber(r.Depth),
			strings.ToUpper(r.FeatureType))
	}
	b.WriteString("@END\n")
	return b.String()
}

// ---------------------------------------------------------------------------
// Generic G-code
// ---------------------------------------------------------------------------

// plungeDepth limits a hole to the board thickness when it is known.
func plungeDepth(depth, thickness float64) float64 {
	if thickness <= 0 {
		return depth
	}
	return math.Min(depth, thickness)
}

func gcode(c sheet) string {
	var b strings.Builder
	if c.partID != "" {
		fmt.Fprintf(&b, "(PART %s)\n", c.partID)
	}
	b.WriteString("G90 G21\n")
	fmt.Fprintf(&b, "M3 S%d\n", gcodeSpindleRPM)
	fmt.Fprintf(&b, "G0 Z%s\n", FormatNumber(gcodeSafeZ))
	for _, r := range c.records {
		fmt.Fprintf(&b, "(HOLE %d %s D%s)\n", r.Seq, r.FeatureType, FormatNumber(r.Diameter))
		fmt.Fprintf(&b, "G0 X%s Y%s\n", FormatNumber(r.X), FormatNumber(r.Y))
		fmt.Fprintf(&b, "G1 Z%s F%s\n", FormatNumber(-plungeDepth(r.Depth, c.part.Thickness)), FormatNumber(gcodePlungeFeed))
		fmt.Fprintf(&b, "G0 Z%s\n", FormatNumber(gcodeSafeZ))
	}
	b.WriteString("M5\n")
	b.WriteString("M30\n")
	return b.String()
}
