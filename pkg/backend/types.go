package backend

import (
	"time"

	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/layout"
)

// backendSpaceLabels are the tipo_espacio values the backend understands.
var backendSpaceLabels = map[catalog.SpaceType]string{
	catalog.Classroom:      "aula",
	catalog.ComputerLab:    "laboratorio",
	catalog.Parking:        "parqueadero",
	catalog.Auditorium:     "auditorio",
	catalog.Office:         "oficina",
	catalog.ConferenceRoom: "sala_conferencias",
}

// Element is one requested item line on the wire.
type Element struct {
	Tipo     string `json:"tipo"`
	Cantidad int    `json:"cantidad"`
}

// AnalyzeRequest is the body of the analyze-space-layout endpoint.
type AnalyzeRequest struct {
	TipoEspacio              string    `json:"tipo_espacio"`
	MetrosCuadrados          float64   `json:"metros_cuadrados"`
	Forma                    string    `json:"forma,omitempty"`
	Largo                    float64   `json:"largo,omitempty"`
	Ancho                    float64   `json:"ancho,omitempty"`
	Elementos                []Element `json:"elementos"`
	IncluirEspacioInstructor bool      `json:"incluir_espacio_instructor"`
	IncluirPasillos          bool      `json:"incluir_pasillos"`
	AnchoPasilloMinimo       float64   `json:"ancho_pasillo_minimo,omitempty"`
	EspaciosVehiculos        int       `json:"espacios_vehiculos,omitempty"`
	EspaciosMotos            int       `json:"espacios_motos,omitempty"`
	EspaciosDiscapacitados   int       `json:"espacios_discapacitados,omitempty"`
}

// NewAnalyzeRequest converts a layout request to the backend schema.
// Parking stalls travel in the dedicated espacios_* counters, identified by
// the item's role in cat; every other line becomes an element. A nil cat
// means the default catalog.
func NewAnalyzeRequest(req layout.Request, cat *catalog.Catalog) AnalyzeRequest {
	if cat == nil {
		cat = catalog.Default()
	}
	space, _ := catalog.ParseSpaceType(req.SpaceType)
	aisle := req.Options.AisleMinWidth
	if aisle == 0 {
		aisle = req.Room.AisleMinWidth
	}

	out := AnalyzeRequest{
		TipoEspacio:              backendSpaceLabels[space],
		MetrosCuadrados:          req.Room.Area(),
		Forma:                    req.Room.Shape,
		Largo:                    req.Room.Length,
		Ancho:                    req.Room.Width,
		Elementos:                []Element{},
		IncluirEspacioInstructor: req.Options.IncludeInstructorZone,
		IncluirPasillos:          true,
		AnchoPasilloMinimo:       aisle,
	}
	for _, line := range req.Items {
		role := catalog.RoleGeneric
		if it, err := cat.Lookup(space, line.ItemType); err == nil {
			role = it.Role
		}
		switch role {
		case catalog.RoleVehicle:
			out.EspaciosVehiculos += line.Quantity
		case catalog.RoleMotorcycle:
			out.EspaciosMotos += line.Quantity
		case catalog.RoleAccessibleVehicle:
			out.EspaciosDiscapacitados += line.Quantity
		default:
			out.Elementos = append(out.Elementos, Element{Tipo: line.ItemType, Cantidad: line.Quantity})
		}
	}
	return out
}

// Distribution is one entry of distribucion_elementos. The backend fills
// only the fields its model produced, so all but tipo are optional.
type Distribution struct {
	Tipo                string  `json:"tipo"`
	Cantidad            int     `json:"cantidad"`
	AreaUnitaria        float64 `json:"area_unitaria"`
	AreaTotal           float64 `json:"area_total"`
	DisposicionSugerida string  `json:"disposicion_sugerida,omitempty"`
	Filas               int     `json:"filas,omitempty"`
	Columnas            int     `json:"columnas,omitempty"`
}

// Analysis is the backend's answer.
type Analysis struct {
	EsViable              bool             `json:"es_viable"`
	Mensaje               string           `json:"mensaje"`
	AreaTotal             float64          `json:"area_total"`
	AreaUtilizable        float64          `json:"area_utilizable"`
	AreaRequerida         float64          `json:"area_requerida"`
	PorcentajeOcupacion   float64          `json:"porcentaje_ocupacion"`
	DistribucionElementos []Distribution   `json:"distribucion_elementos"`
	DimensionesSugeridas  map[string]any   `json:"dimensiones_sugeridas,omitempty"`
	Recomendaciones       []string         `json:"recomendaciones"`
	Advertencias          []string         `json:"advertencias"`
	Alternativas          []map[string]any `json:"alternativas,omitempty"`
	ModelUsed             string           `json:"model_used,omitempty"`
	Timestamp             *time.Time       `json:"timestamp,omitempty"`

	// Request is the layout request that produced this analysis.
	Request layout.Request `json:"request"`
}

// ToResult maps the analysis onto a layout result without placements.
func (a *Analysis) ToResult() layout.Result {
	space, _ := catalog.ParseSpaceType(a.Request.SpaceType)
	res := layout.Result{
		SpaceType:        space,
		Room:             a.Request.Room,
		IsViable:         a.EsViable,
		OccupancyPercent: a.PorcentajeOcupacion,
		RoomArea:         a.AreaTotal,
		UsableArea:       a.AreaUtilizable,
		RequiredArea:     a.AreaRequerida,
		AisleWidth:       a.Request.Options.AisleMinWidth,
		Breakdown:        make([]layout.AreaLine, 0, len(a.DistribucionElementos)),
		Placed:           []layout.PlacedItem{},
		Warnings:         append([]string{}, a.Advertencias...),
		Recommendations:  append([]string{}, a.Recomendaciones...),
		Source:           layout.SourceRemote,
	}
	for _, d := range a.DistribucionElementos {
		res.Breakdown = append(res.Breakdown, layout.AreaLine{
			ItemType:  d.Tipo,
			Quantity:  d.Cantidad,
			UnitArea:  d.AreaUnitaria,
			TotalArea: d.AreaTotal,
		})
	}
	if a.Mensaje != "" {
		res.Recommendations = append([]string{a.Mensaje}, res.Recommendations...)
	}
	return res
}
