// Package recommend maps low-scoring sections to canned improvement advice.
package recommend

import "madurez42001/internal/catalog"

// Threshold below which a section receives a recommendation. Exactly 3.0
// does not qualify.
const Threshold = 3.0

// messages holds the fixed per-section advice, keyed by section id.
var messages = map[string]string{
	"contexto":      "Desarrollar un análisis más profundo del contexto organizacional y las partes interesadas",
	"liderazgo":     "Fortalecer el compromiso de la alta dirección y establecer políticas claras de IA",
	"planificacion": "Implementar un sistema formal de gestión de riesgos de IA y objetivos claros",
	"apoyo":         "Asegurar recursos adecuados, competencias del personal y procesos de comunicación",
	"operacion":     "Estandarizar los procesos operativos y controles para sistemas de IA",
	"evaluacion":    "Establecer sistemas de monitoreo, auditoría interna y revisión por dirección",
	"mejora":        "Implementar procesos sistemáticos de mejora continua y acciones correctivas",
}

// SuccessMessage is shown by consumers when no section needs improvement.
const SuccessMessage = "Su organización muestra un alto nivel de madurez en todos los componentes de la norma ISO 42001. Continúe con los procesos de mejora continua para mantener este nivel."

// ForScores returns one recommendation per section scoring strictly below the
// threshold, in catalog order. Sections absent from the map (no responses) are
// skipped, not flagged. An empty slice means every evaluated section is at or
// above the threshold.
func ForScores(cat *catalog.Catalog, sectionScores map[string]float64) []string {
	recs := []string{}
	for _, section := range cat.Sections() {
		score, evaluated := sectionScores[section.ID]
		if !evaluated || score >= Threshold {
			continue
		}
		if msg, ok := messages[section.ID]; ok {
			recs = append(recs, msg)
		}
	}
	return recs
}
