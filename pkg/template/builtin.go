package template

import "github.com/chazu/cabdrill/pkg/part"

const (
	innerWidth = "carcass_width_mm - 2 * material_thickness_mm"
	shelfDepth = "carcass_depth_mm - 20"
)

func drill(id string, row part.RowConfig) part.DrillingRef {
	return part.DrillingRef{HardwareID: id, RowConfig: row}
}

// sides returns the left and right side roles sharing one drilling list.
func sides(height string, refs ...part.DrillingRef) []Role {
	return []Role{
		{Name: "left_side", Type: part.TypeCabinetSide, Length: height, Width: "carcass_depth_mm", Drilling: refs},
		{Name: "right_side", Type: part.TypeCabinetSide, Length: height, Width: "carcass_depth_mm", Drilling: refs},
	}
}

// Builtin holds the cabinet families shipped with the tool.
var Builtin = []Template{
	{
		ID:       "base_cabinet",
		Label:    "Base cabinet, single door",
		Defaults: Size{Height: 720, Width: 600, Depth: 560, MaterialThickness: 18},
		Roles: append(sides("carcass_height_mm",
			drill("dowel_side_joint_8mm", ""),
			drill("system32_row", part.RowDouble),
			drill("back_panel_nailer_8mm", ""),
		),
			Role{Name: "bottom", Type: part.TypeCabinetTopBottom, Length: innerWidth, Width: "carcass_depth_mm",
				Drilling: []part.DrillingRef{drill("dowel_side_joint_8mm", "")}},
			Role{Name: "nailer", Type: part.TypeNailerStrip, Length: innerWidth, Width: "100"},
			Role{Name: "adjustable_shelf", Type: part.TypeAdjustableShelf, Length: innerWidth + " - 2", Width: shelfDepth},
			Role{Name: "back_panel", Type: part.TypeBackPanel, Length: "carcass_height_mm - 2", Width: innerWidth + " + 16", Thickness: "6"},
			Role{Name: "door", Type: part.TypeDoor, Length: "carcass_height_mm - 3", Width: "carcass_width_mm - 3",
				Drilling: []part.DrillingRef{drill("blum_clip_top_110", "")}},
		),
	},
	{
		ID:       "wall_cabinet",
		Label:    "Wall cabinet, single door",
		Defaults: Size{Height: 720, Width: 600, Depth: 320, MaterialThickness: 18},
		Roles: append(sides("carcass_height_mm",
			drill("dowel_side_joint_8mm", ""),
			drill("system32_row", part.RowDouble),
		),
			Role{Name: "top", Type: part.TypeCabinetTopBottom, Length: innerWidth, Width: "carcass_depth_mm",
				Drilling: []part.DrillingRef{drill("dowel_side_joint_8mm", "")}},
			Role{Name: "bottom", Type: part.TypeCabinetTopBottom, Length: innerWidth, Width: "carcass_depth_mm",
				Drilling: []part.DrillingRef{drill("dowel_side_joint_8mm", "")}},
			Role{Name: "adjustable_shelf", Type: part.TypeAdjustableShelf, Length: innerWidth + " - 2", Width: shelfDepth},
			Role{Name: "door", Type: part.TypeDoor, Length: "carcass_height_mm - 3", Width: "carcass_width_mm - 3",
				Drilling: []part.DrillingRef{drill("blum_clip_top_110", "")}},
		),
	},
	{
		ID:       "drawer_base",
		Label:    "Base cabinet, three drawers",
		Defaults: Size{Height: 720, Width: 600, Depth: 560, MaterialThickness: 18},
		Roles: append(sides("carcass_height_mm",
			drill("dowel_side_joint_8mm", ""),
			drill("blum_tandem_500", part.RowSingle),
			drill("back_panel_nailer_8mm", ""),
		),
			Role{Name: "bottom", Type: part.TypeCabinetTopBottom, Length: innerWidth, Width: "carcass_depth_mm",
				Drilling: []part.DrillingRef{drill("dowel_side_joint_8mm", "")}},
			Role{Name: "nailer", Type: part.TypeNailerStrip, Length: innerWidth, Width: "100"},
			Role{Name: "drawer_front", Type: part.TypeDrawerFront, Length: "(carcass_height_mm - 9) / 3", Width: "carcass_width_mm - 3"},
		),
	},
	{
		ID:       "tall_cabinet",
		Label:    "Tall pantry cabinet, two doors",
		Defaults: Size{Height: 2100, Width: 600, Depth: 560, MaterialThickness: 18},
		Roles: append(sides("carcass_height_mm",
			drill("dowel_side_joint_8mm", ""),
			drill("system32_row", part.RowDouble),
			drill("back_panel_nailer_8mm", ""),
		),
			Role{Name: "top", Type: part.TypeCabinetTopBottom, Length: innerWidth, Width: "carcass_depth_mm",
				Drilling: []part.DrillingRef{drill("dowel_side_joint_8mm", "")}},
			Role{Name: "bottom", Type: part.TypeCabinetTopBottom, Length: innerWidth, Width: "carcass_depth_mm",
				Drilling: []part.DrillingRef{drill("dowel_side_joint_8mm", "")}},
			Role{Name: "fixed_shelf", Type: part.TypeFixedShelf, Length: innerWidth, Width: shelfDepth,
				Drilling: []part.DrillingRef{drill("dowel_side_joint_8mm", "")}},
			Role{Name: "upper_door", Type: part.TypeDoor, Length: "carcass_height_mm / 2 - 3", Width: "carcass_width_mm - 3",
				Drilling: []part.DrillingRef{drill("blum_clip_top_110", "")}},
			Role{Name: "lower_door", Type: part.TypeDoor, Length: "carcass_height_mm / 2 - 3", Width: "carcass_width_mm - 3",
				Drilling: []part.DrillingRef{drill("blum_clip_top_110", "")}},
		),
	},
}
