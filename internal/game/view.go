package game

// Tile is one letter button.
type Tile struct {
	Letter string `json:"letter"`
	Used   bool   `json:"used"`
}

// View is a copy of the controller state for rendering.
type View struct {
	State     State    `json:"state"`
	Tiles     []Tile   `json:"tiles"`
	Answer    []string `json:"answer"` // "" for an empty slot
	Hint      string   `json:"hint,omitempty"`
	ShowHint  bool     `json:"showHint"`
	Level     string   `json:"level,omitempty"`
	Completed bool     `json:"completed"`
	Pending   bool     `json:"pending"`
	Score     int      `json:"score"`
	Feedback  string   `json:"feedback,omitempty"`
	Word      string   `json:"-"`
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() View {
	v := View{
		State:    c.state,
		ShowHint: c.showHint,
		Pending:  c.pending != nil,
		Score:    c.tracker.Score(),
	}
	if msg, ok := c.fb.Current(); ok {
		v.Feedback = msg
	}
	if c.session == nil {
		return v
	}
	s := c.session
	v.Word = s.Word.Word
	v.Hint = s.Word.Hint
	v.Level = s.Word.Level
	v.Completed = s.Completed
	v.Tiles = make([]Tile, len(s.Tiles))
	for i, r := range s.Tiles {
		v.Tiles[i] = Tile{Letter: string(r), Used: s.Used(i)}
	}
	v.Answer = make([]string, len(s.Answer))
	for i, r := range s.Answer {
		if r != 0 {
			v.Answer[i] = string(r)
		}
	}
	return v
}
