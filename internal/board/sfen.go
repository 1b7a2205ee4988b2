package board

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// StartSFEN is the starting position, with a drunk elephant beside each
	// king's bishop or rook.
	StartSFEN = "lnsgkgsnl/1r2z2b1/ppppppppp/9/9/9/PPPPPPPPP/1B2Z2R1/LNSGKGSNL b - 1"

	// StandardSFEN is the starting position of standard shogi.
	StandardSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"
)

// handOrder is the order hand pieces are written in.
var handOrder = [...]PieceType{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// ParseSFEN parses an SFEN string and returns a Position.
func ParseSFEN(sfen string) (*Position, error) {
	parts := strings.Fields(sfen)
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid SFEN: need 4 fields, got %d", len(parts))
	}

	pos := NewEmptyPosition()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "b":
		pos.turn = Black
	case "w":
		pos.turn = White
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	// Parse hands (field 2)
	if err := parseHands(pos, parts[2]); err != nil {
		return nil, err
	}

	// Parse move number (field 3)
	mn, err := strconv.Atoi(parts[3])
	if err != nil || mn < 0 {
		return nil, fmt.Errorf("invalid move number: %s", parts[3])
	}
	pos.moveNumber = max(mn, 1)

	pos.resetRepetitions()
	return pos, nil
}

// SetSFEN replaces the position with the one described by sfen. On error
// the position is left unchanged.
func (p *Position) SetSFEN(sfen string) error {
	pos, err := ParseSFEN(sfen)
	if err != nil {
		return err
	}
	*p = *pos
	return nil
}

func parsePiecePlacement(pos *Position, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 9 {
		return fmt.Errorf("invalid SFEN: expected 9 rows, got %d", len(rows))
	}

	for rank, row := range rows {
		file := 0
		promoted := false
		for i := 0; i < len(row); i++ {
			ch := row[i]
			switch {
			case ch == '+':
				if promoted {
					return fmt.Errorf("invalid SFEN: double promotion marker in row %d", rank+1)
				}
				promoted = true
				continue
			case ch >= '1' && ch <= '9':
				if promoted {
					return fmt.Errorf("invalid SFEN: promotion marker before empty squares in row %d", rank+1)
				}
				file += int(ch - '0')
				continue
			}

			sym := string(ch)
			if promoted {
				sym = "+" + sym
			}
			piece := PieceFromSymbol(sym)
			if piece == NoPiece {
				return fmt.Errorf("invalid SFEN: bad piece %q in row %d", sym, rank+1)
			}
			if file >= 9 {
				return fmt.Errorf("invalid SFEN: row %d has more than 9 squares", rank+1)
			}
			if err := pos.SetPieceAt(NewSquare(file, rank), piece, false, false); err != nil {
				return err
			}
			file++
			promoted = false
		}
		if promoted {
			return fmt.Errorf("invalid SFEN: dangling promotion marker in row %d", rank+1)
		}
		if file != 9 {
			return fmt.Errorf("invalid SFEN: row %d has %d squares", rank+1, file)
		}
	}
	return nil
}

func parseHands(pos *Position, field string) error {
	if field == "-" {
		return nil
	}
	count := 0
	for i := 0; i < len(field); i++ {
		ch := field[i]
		if ch >= '0' && ch <= '9' {
			count = count*10 + int(ch-'0')
			if count > int(maxInHand[Pawn]) {
				return fmt.Errorf("invalid SFEN: hand count too large in %q", field)
			}
			continue
		}
		piece := PieceFromSymbol(string(ch))
		if piece == NoPiece || !piece.Type().IsHandType() {
			return fmt.Errorf("invalid SFEN: bad hand piece %q", ch)
		}
		if count == 0 {
			count = 1
		}
		pt, c := piece.Type(), piece.Color()
		if int(pos.hands[c][pt])+count > int(maxInHand[pt]) {
			return fmt.Errorf("invalid SFEN: too many %s in hand", piece)
		}
		pos.AddToHand(pt, c, count)
		count = 0
	}
	if count != 0 {
		return fmt.Errorf("invalid SFEN: hand count without piece in %q", field)
	}
	return nil
}

// SFEN returns the SFEN string for the position.
func (p *Position) SFEN() string {
	var sb strings.Builder

	for rank := 0; rank < 9; rank++ {
		empty := 0
		for file := 0; file < 9; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank < 8 {
			sb.WriteByte('/')
		}
	}

	if p.turn == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	hands := false
	for c := Black; c <= White; c++ {
		for _, pt := range handOrder {
			n := p.hands[c][pt]
			if n == 0 {
				continue
			}
			hands = true
			if n > 1 {
				sb.WriteString(strconv.Itoa(int(n)))
			}
			sb.WriteString(NewPiece(pt, c).String())
		}
	}
	if !hands {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.moveNumber))
	return sb.String()
}
