package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It is the standard way to check move generation.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	var nodes uint64
	for m := range p.LegalMoves(GenAll) {
		if depth == 1 {
			nodes++
			continue
		}
		p.Push(m)
		nodes += Perft(p, depth-1)
		p.Pop()
	}
	return nodes
}

// PerftDivide returns the perft count below each legal root move.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for m := range p.LegalMoves(GenAll) {
		p.Push(m)
		result[m] = Perft(p, depth-1)
		p.Pop()
	}
	return result
}
