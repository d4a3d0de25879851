// Package export renders drilling location records into the file formats
// of common CNC ecosystems. Every format is produced from the same records
// and shares one number formatter, so the files always agree.
package export

import (
	"strconv"
	"strings"

	"github.com/chazu/cabdrill/pkg/hardware"
	"github.com/chazu/cabdrill/pkg/location"
	"github.com/chazu/cabdrill/pkg/part"
)

// File is one rendered export.
type File struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Software  string `json:"software"`
	Extension string `json:"extension"`
	Filename  string `json:"filename"`
	MIMEType  string `json:"mime_type"`
	Content   string `json:"content"`
}

// Format ids, in the order All returns them.
const (
	FormatCabinetVision = "cabinet_vision_csv"
	FormatMicrovellum   = "microvellum_csv"
	FormatWoodWOP       = "woodwop_mpr"
	FormatBiesse        = "biesse_cix"
	FormatGCode         = "gcode"
)

// fallbackBase names files when the part is unknown.
const fallbackBase = "drilling"

// FormatNumber renders v with at most three decimals and no trailing
// zeros: 12 -> "12", 12.5 -> "12.5", 0.1+0.2 -> "0.3".
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// sheet carries the inputs every format needs.
type sheet struct {
	part    part.Descriptor
	hw      hardware.Spec
	records []location.Record
	partID  string
	base    string
}

func newSheet(p *part.Descriptor, hw *hardware.Spec, records []location.Record) sheet {
	c := sheet{records: records}
	if p != nil {
		c.part = *p
	}
	if hw != nil {
		c.hw = *hw
	}
	if c.records == nil {
		c.records = []location.Record{}
	}

	switch {
	case len(c.records) > 0 && c.records[0].PartID != "":
		c.partID = c.records[0].PartID
	case c.part.Type != "":
		c.partID = c.part.ID()
	}
	c.partID = token(c.partID)
	c.base = c.partID
	if c.base == "" {
		c.base = fallbackBase
	}
	return c
}

func (c sheet) face() string {
	if len(c.records) > 0 && c.records[0].Face != "" {
		return token(c.records[0].Face)
	}
	if c.part.Type == "" {
		return ""
	}
	return token(c.part.FaceOrDefault())
}

func (c sheet) origin() string {
	if len(c.records) > 0 && c.records[0].Origin != "" {
		return token(string(c.records[0].Origin))
	}
	if c.part.Type == "" {
		return ""
	}
	return token(string(c.part.Origin.OrDefault()))
}

// token replaces every rune outside [A-Za-z0-9_.-] with '_'. Part ids,
// faces and origins are written unquoted into the line formats.
func token(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_', r == '.', r == '-':
			return r
		}
		return '_'
	}, s)
}

type renderer struct {
	id, label, software, ext, mime string
	render                         func(c sheet) string
}

var renderers = []renderer{
	{FormatCabinetVision, "Cabinet Vision CSV", "Cabinet Vision", "csv", "text/csv", cabinetVisionCSV},
	{FormatMicrovellum, "Microvellum CSV", "Microvellum", "csv", "text/csv", microvellumCSV},
	{FormatWoodWOP, "WoodWOP MPR", "HOMAG WoodWOP", "mpr", "text/plain", woodwopMPR},
	{FormatBiesse, "Biesse CIX", "Biesse bSolid", "cix", "text/plain", biesseCIX},
	{FormatGCode, "Generic G-code", "Generic CNC", "nc", "text/plain", gcode},
}

// All renders every supported format. Nil arguments are treated as empty,
// so the result always holds five well-formed files.
func All(p *part.Descriptor, hw *hardware.Spec, records []location.Record) []File {
	c := newSheet(p, hw, records)
	files := make([]File, 0, len(renderers))
	for _, r := range renderers {
		files = append(files, File{
			ID:        r.id,
			Label:     r.label,
			Software:  r.software,
			Extension: r.ext,
			Filename:  c.base + "_" + r.id + "." + r.ext,
			MIMEType:  r.mime,
			Content:   r.render(c),
		})
	}
	return files
}

// ByID returns the file with the given format id.
func ByID(files []File, id string) (File, bool) {
	for _, f := range files {
		if f.ID == id {
			return f, true
		}
	}
	return File{}, false
}
