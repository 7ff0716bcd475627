package app

import "github.com/Guilhem-Bonnet/Anime-Showcase/internal/domain"

// ScrollStepRatio: part de la largeur visible parcourue à chaque clic.
const ScrollStepRatio = 0.8

// Binding lie les contrôles d'une section. Le navigateur calcule son pas avec
// Ratio et la largeur réelle du carousel; Step est le pas côté serveur, pour la
// largeur de référence de la section.
type Binding struct {
	SectionID   string  `json:"sectionId"`
	ContainerID string  `json:"containerId"`
	Ratio       float64 `json:"ratio"`
	Step        float64 `json:"step"`
}

// BindNavigation lie les contrôles précédent/suivant des sections présentes dans
// le balisage. Les sections sans conteneur ou sans l'un des contrôles sont ignorées.
// Le pas est figé ici et n'est jamais recalculé.
func BindNavigation(doc *domain.Document) []Binding {
	var out []Binding
	for _, s := range doc.Sections() {
		if s.ContainerID == "" || doc.Container(s.ContainerID) == nil {
			continue
		}
		if !s.HasPrev || !s.HasNext {
			continue
		}
		out = append(out, Binding{
			SectionID:   s.ID,
			ContainerID: s.ContainerID,
			Ratio:       ScrollStepRatio,
			Step:        s.VisibleWidth * ScrollStepRatio,
		})
	}
	return out
}

// Next renvoie la position après un clic "suivant", bornée à [0, max] comme un scroll natif.
func (b Binding) Next(pos, max float64) float64 {
	return clampScroll(pos+b.Step, max)
}

func (b Binding) Prev(pos, max float64) float64 {
	return clampScroll(pos-b.Step, max)
}

func clampScroll(pos, max float64) float64 {
	if max < 0 {
		max = 0
	}
	if pos < 0 {
		return 0
	}
	if pos > max {
		return max
	}
	return pos
}
