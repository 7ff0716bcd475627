package domain

import "sync"

type NodeKind string

const (
	NodeSlide   NodeKind = "slide"
	NodeCard    NodeKind = "card"
	NodeMessage NodeKind = "message"
)

// Node décrit un élément rendu (slide, carte ou message statique).
// Les templates ne font que l'afficher: aucune chaîne HTML n'est construite ici.
type Node struct {
	Kind     NodeKind `json:"kind"`
	ItemID   int      `json:"itemId,omitempty"`
	Title    string   `json:"title,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Text     string   `json:"text,omitempty"`
	Score    string   `json:"score,omitempty"`
	Href     string   `json:"href,omitempty"`
	Active   bool     `json:"active,omitempty"`
}

// Container possède ses noeuds; son contenu est remplacé en bloc, jamais fusionné.
type Container struct {
	ID string

	mu        sync.Mutex
	nodes     []Node
	mutations int
}

func NewContainer(id string) *Container {
	return &Container{ID: id}
}

func (c *Container) Replace(nodes []Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = append([]Node(nil), nodes...)
	c.mutations++
}

// Nodes renvoie une copie; nil pour un conteneur absent.
func (c *Container) Nodes() []Node {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Node(nil), c.nodes...)
}

// Mutations compte les remplacements de contenu.
func (c *Container) Mutations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mutations
}

// Section est une zone carousel du balisage initial: un conteneur défilant
// et ses contrôles précédent/suivant.
type Section struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ContainerID  string  `json:"containerId"`
	HasPrev      bool    `json:"hasPrev"`
	HasNext      bool    `json:"hasNext"`
	VisibleWidth float64 `json:"visibleWidth"`
}

// Document regroupe les conteneurs adressables par identifiant.
// L'ensemble des conteneurs est figé à la construction.
type Document struct {
	containers map[string]*Container
	sections   []Section
}

func NewDocument(containerIDs []string, sections []Section) *Document {
	d := &Document{
		containers: make(map[string]*Container, len(containerIDs)),
		sections:   append([]Section(nil), sections...),
	}
	for _, id := range containerIDs {
		d.containers[id] = NewContainer(id)
	}
	return d
}

// Container renvoie nil si aucun élément ne porte cet identifiant.
func (d *Document) Container(id string) *Container {
	if d == nil {
		return nil
	}
	return d.containers[id]
}

func (d *Document) Sections() []Section {
	if d == nil {
		return nil
	}
	return append([]Section(nil), d.sections...)
}
