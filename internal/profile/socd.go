package profile

import "github.com/jmylchreest/padprofile/internal/model"

// SetSocdBinding puts the selected button's binding on one side of pair i.
// The binding is detached from any other pair side first, so it never sits
// on two sides at once.
func (s *Store) SetSocdBinding(i int, side Side) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected < 0 || i < 0 || i >= len(s.socd) {
		return
	}

	binding := s.buttons[s.selected].Binding
	if !binding.IsSpecified() {
		return
	}

	target := &s.socd[i].A
	if side == SideB {
		target = &s.socd[i].B
	}
	if *target == binding {
		return
	}

	for j := range s.socd {
		if s.socd[j].A == binding {
			s.socd[j].A = model.BindingUnspecified
		}
		if s.socd[j].B == binding {
			s.socd[j].B = model.BindingUnspecified
		}
	}

	s.removeBindingSocdIndex(*target)
	*target = binding

	for j := range s.buttons {
		if s.buttons[j].Binding == binding {
			s.buttons[j].Socd = i
		}
	}

	s.notify(ChangeSocd, i)
}

// removeBindingSocdIndex clears the pair reference of every button bound to
// binding.
func (s *Store) removeBindingSocdIndex(binding model.Binding) {
	for j := range s.buttons {
		if s.buttons[j].Binding == binding {
			s.buttons[j].Socd = NoSocd
		}
	}
}

// SetSocdBindingType sets the resolution type of pair i.
func (s *Store) SetSocdBindingType(i int, typ model.SocdType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.socd) {
		return
	}
	if s.socd[i].Type == typ {
		return
	}

	s.socd[i].Type = typ
	s.notify(ChangeSocd, i)
}

// AddSocd appends an empty pair unless the list is full.
func (s *Store) AddSocd() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.socd) >= s.socdMax {
		return
	}

	next := 0
	if n := len(s.socd); n > 0 {
		next = s.socd[n-1].Index + 1
	}

	s.socd = append(s.socd, SocdPair{
		Index: next,
		SocdPair: model.SocdPair{
			A:    model.BindingUnspecified,
			B:    model.BindingUnspecified,
			Type: model.DefaultSocdType,
		},
	})
	s.notify(ChangeSocd, len(s.socd)-1)
}

// RemoveSocd deletes pair i and clears the pair reference of buttons that
// pointed at it. Buttons referencing later pairs keep their old index.
func (s *Store) RemoveSocd(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.socd) {
		return
	}

	s.socd = append(s.socd[:i], s.socd[i+1:]...)
	for j := range s.buttons {
		if s.buttons[j].Socd == i {
			s.buttons[j].Socd = NoSocd
		}
	}
	s.notify(ChangeSocd, i)
}
