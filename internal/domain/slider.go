package domain

import "errors"

var ErrNoSlides = errors.New("container has no slides")

// Slider porte l'état de rotation du hero: les slides du conteneur et l'index courant.
// Invariant: exactement une slide active tant que le conteneur en contient.
type Slider struct {
	container *Container
	count     int
	current   int
}

// NewSlider prend la main sur les slides déjà rendues dans c.
// La première slide active trouvée devient l'index courant; à défaut la slide 0 est activée.
func NewSlider(c *Container) (*Slider, error) {
	if c == nil {
		return nil, ErrNoSlides
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, n := range c.nodes {
		if n.Kind != NodeSlide {
			return nil, ErrNoSlides
		}
		count++
	}
	if count == 0 {
		return nil, ErrNoSlides
	}

	current := -1
	for i := range c.nodes {
		if c.nodes[i].Active && current < 0 {
			current = i
			continue
		}
		c.nodes[i].Active = false
	}
	if current < 0 {
		current = 0
		c.nodes[0].Active = true
	}
	return &Slider{container: c, count: count, current: current}, nil
}

func (s *Slider) Len() int { return s.count }

func (s *Slider) Current() int {
	s.container.mu.Lock()
	defer s.container.mu.Unlock()
	return s.current
}

// Advance désactive la slide courante et active la suivante (ordre circulaire).
// Renvoie le nouvel index et la slide active.
func (s *Slider) Advance() (int, Node) {
	c := s.container
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.nodes) != s.count {
		// Conteneur reconstruit entre-temps: on ne touche plus à son contenu.
		return s.current, Node{}
	}
	c.nodes[s.current].Active = false
	s.current = (s.current + 1) % s.count
	c.nodes[s.current].Active = true
	return s.current, c.nodes[s.current]
}
