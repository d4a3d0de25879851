package hardware

// Hinges is the built-in concealed hinge catalog.
var Hinges = []Spec{
	{
		ID:       "blum_clip_top_110",
		Label:    "Blum CLIP top 110°",
		Category: CategoryHinge,
		Params:   HingeParams{CupDiameter: 35, CupDepth: 13, CupFromEdge: 3},
	},
	{
		ID:       "hettich_sensys_110",
		Label:    "Hettich Sensys 110°",
		Category: CategoryHinge,
		Params:   HingeParams{CupDiameter: 35, CupDepth: 13.5, CupFromEdge: 4},
	},
	{
		ID:       "grass_tiomos_110",
		Label:    "Grass Tiomos 110°",
		Category: CategoryHinge,
		Params:   HingeParams{CupDiameter: 35, CupDepth: 12.5, CupFromEdge: 5},
	},
	{
		ID:       "blum_compact_26",
		Label:    "Blum 26mm compact",
		Category: CategoryHinge,
		Params:   HingeParams{CupDiameter: 26, CupDepth: 11.5, CupFromEdge: 3},
	},
}

// DrawerSlides is the built-in drawer runner catalog.
var DrawerSlides = []Spec{
	{
		ID:       "blum_tandem_500",
		Label:    "Blum TANDEM 500mm",
		Category: CategoryDrawerSlide,
		Params:   SlideParams{RefRowFromFront: 37, RearHoleOffset: 224},
	},
	{
		ID:       "blum_movento_450",
		Label:    "Blum MOVENTO 450mm",
		Category: CategoryDrawerSlide,
		Params:   SlideParams{RefRowFromFront: 37, RearHoleOffset: 256},
	},
	{
		ID:       "hettich_quadro_400",
		Label:    "Hettich Quadro 400mm",
		Category: CategoryDrawerSlide,
		Params:   SlideParams{RefRowFromFront: 37, RearHoleOffset: 192},
	},
}

// ShelfRows is the built-in shelf-pin row catalog.
var ShelfRows = []Spec{
	{
		ID:       "system32_row",
		Label:    "System 32 shelf-pin row",
		Category: CategoryShelfRow,
		Params:   ShelfRowParams{FirstHoleOffset: 37, DistanceFromEdge: 37},
	},
	{
		ID:       "system32_row_inset50",
		Label:    "System 32 shelf-pin row, 50mm inset",
		Category: CategoryShelfRow,
		Params:   ShelfRowParams{FirstHoleOffset: 69, DistanceFromEdge: 50},
	},
}

// DowelJoints is the built-in dowel joint catalog.
var DowelJoints = []Spec{
	{
		ID:       "dowel_side_joint_8mm",
		Label:    "8mm dowel corner joint",
		Category: CategoryDowel,
		Params:   DowelParams{Diameter: 8, Depth: 12, EdgeOffset: 37, EndOffset: 9},
	},
	{
		ID:       "back_panel_nailer_8mm",
		Label:    "8mm back panel + nailer dowels",
		Category: CategoryDowel,
		Params:   BackNailerParams{Diameter: 8, Depth: 12, BackOffset: 28, NailerOffset: 60, EndOffset: 9},
	},
}
