package main

// MemoryStrategy plays with perfect recall of every value the board has
// revealed. It prefers guaranteed matches from memory and otherwise explores
// tiles it has never seen.
type MemoryStrategy struct {
	values map[int]int  // tile id -> value, for every tile ever seen face up
	solved map[int]bool // tile id -> permanently matched
}

func NewMemoryStrategy() *MemoryStrategy {
	return &MemoryStrategy{
		values: make(map[int]int),
		solved: make(map[int]bool),
	}
}

// Observe records every visible value in the board view. Mismatched pairs are
// visible during the reveal window, so observing each response is what builds
// the memory.
func (s *MemoryStrategy) Observe(board *BoardView) {
	if board == nil {
		return
	}
	for _, tile := range board.Tiles {
		if tile.DisplayValue != nil {
			s.values[tile.ID] = *tile.DisplayValue
		}
		if tile.Solved {
			s.solved[tile.ID] = true
		}
	}
}

// knownPair returns two unsolved tile ids that are remembered to share a
// value, or (-1, -1) when memory holds no certain match.
func (s *MemoryStrategy) knownPair() (int, int) {
	byValue := make(map[int]int)
	for id, value := range s.values {
		if s.solved[id] {
			continue
		}
		if other, ok := byValue[value]; ok {
			return other, id
		}
		byValue[value] = id
	}
	return -1, -1
}

// unseenTile returns the lowest tile id that has never been seen face up and
// differs from exclude, or -1 when every tile is known.
func (s *MemoryStrategy) unseenTile(board *BoardView, exclude int) int {
	for _, tile := range board.Tiles {
		if tile.ID == exclude || tile.Solved {
			continue
		}
		if _, seen := s.values[tile.ID]; !seen {
			return tile.ID
		}
	}
	return -1
}

// anyUnsolved returns an unsolved tile id other than exclude, used as a last
// resort when every tile has been seen.
func (s *MemoryStrategy) anyUnsolved(board *BoardView, exclude int) int {
	for _, tile := range board.Tiles {
		if tile.ID != exclude && !tile.Solved {
			return tile.ID
		}
	}
	return -1
}

// ChooseFirst picks the first tile of a comparison: a remembered pair when
// one exists, otherwise an unexplored tile.
func (s *MemoryStrategy) ChooseFirst(board *BoardView) int {
	if a, _ := s.knownPair(); a >= 0 {
		return a
	}
	if id := s.unseenTile(board, -1); id >= 0 {
		return id
	}
	return s.anyUnsolved(board, -1)
}

// ChooseSecond picks the second tile after first has been flipped. If memory
// holds the partner of first's value the match is taken; otherwise another
// unexplored tile is flipped for information.
func (s *MemoryStrategy) ChooseSecond(board *BoardView, first int) int {
	firstValue, known := s.values[first]
	if known {
		for id, value := range s.values {
			if id != first && value == firstValue && !s.solved[id] {
				return id
			}
		}
	}
	if id := s.unseenTile(board, first); id >= 0 {
		return id
	}
	return s.anyUnsolved(board, first)
}
