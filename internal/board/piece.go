package board

import "strings"

// Color represents the side a piece belongs to.
type Color uint8

const (
	Black Color = iota // sente, moves first
	White              // gote
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "NoColor"
	}
}

// PieceType represents the kind of a shogi piece.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	ProBishop // horse
	ProRook   // dragon
	Elephant  // drunk elephant, promotes to a second royal piece
	Prince    // promoted elephant

	numPieceTypes = 17
)

// HandTypes lists the kinds that can be held in hand, in drop order.
var HandTypes = [...]PieceType{Pawn, Lance, Knight, Silver, Gold, Bishop, Rook}

// AllPieceTypes lists every board piece kind.
var AllPieceTypes = [...]PieceType{
	Pawn, Lance, Knight, Silver, Gold, Bishop, Rook, King,
	ProPawn, ProLance, ProKnight, ProSilver, ProBishop, ProRook,
	Elephant, Prince,
}

// NonKingPieceTypes lists every kind except the king. Used to decide whether
// a dropped pawn can be captured by something other than the king.
var NonKingPieceTypes = [...]PieceType{
	Pawn, Lance, Knight, Silver, Gold, Bishop, Rook,
	ProPawn, ProLance, ProKnight, ProSilver, ProBishop, ProRook,
	Elephant,
}

var promotedType = [numPieceTypes]PieceType{
	Pawn:     ProPawn,
	Lance:    ProLance,
	Knight:   ProKnight,
	Silver:   ProSilver,
	Bishop:   ProBishop,
	Rook:     ProRook,
	Elephant: Prince,
}

var demotedType = [numPieceTypes]PieceType{
	Pawn:      Pawn,
	Lance:     Lance,
	Knight:    Knight,
	Silver:    Silver,
	Gold:      Gold,
	Bishop:    Bishop,
	Rook:      Rook,
	King:      King,
	ProPawn:   Pawn,
	ProLance:  Lance,
	ProKnight: Knight,
	ProSilver: Silver,
	ProBishop: Bishop,
	ProRook:   Rook,
	Elephant:  Elephant,
	Prince:    Elephant,
}

// Promote returns the promoted kind, or NoPieceType if pt cannot promote.
func (pt PieceType) Promote() PieceType {
	if pt >= numPieceTypes {
		return NoPieceType
	}
	return promotedType[pt]
}

// Demote returns the unpromoted kind. Unpromoted kinds map to themselves.
func (pt PieceType) Demote() PieceType {
	if pt >= numPieceTypes {
		return NoPieceType
	}
	return demotedType[pt]
}

// CanPromote returns true if the kind has a promoted form.
func (pt PieceType) CanPromote() bool {
	return pt.Promote() != NoPieceType
}

// IsPromoted returns true for promoted kinds.
func (pt PieceType) IsPromoted() bool {
	return pt >= ProPawn && pt <= ProRook || pt == Prince
}

// IsRoyal returns true for the kinds whose capture decides the game.
func (pt PieceType) IsRoyal() bool {
	return pt == King || pt == Prince
}

// IsHandType returns true if a captured piece of this kind goes to hand.
func (pt PieceType) IsHandType() bool {
	base := pt.Demote()
	return base >= Pawn && base <= Rook
}

var pieceTypeNames = [numPieceTypes]string{
	"None", "Pawn", "Lance", "Knight", "Silver", "Gold", "Bishop", "Rook", "King",
	"ProPawn", "ProLance", "ProKnight", "ProSilver", "Horse", "Dragon",
	"Elephant", "Prince",
}

// String returns the piece type name.
func (pt PieceType) String() string {
	if pt >= numPieceTypes {
		return "None"
	}
	return pieceTypeNames[pt]
}

// SFEN letters for unpromoted kinds, lowercase; promoted kinds add '+'.
var pieceTypeLetters = [numPieceTypes]byte{
	' ', 'p', 'l', 'n', 's', 'g', 'b', 'r', 'k',
	'p', 'l', 'n', 's', 'b', 'r',
	'z', 'z',
}

// Char returns the lowercase SFEN letter of the kind, without promotion.
func (pt PieceType) Char() byte {
	if pt >= numPieceTypes {
		return ' '
	}
	return pieceTypeLetters[pt]
}

var japaneseSymbols = [numPieceTypes]string{
	"", "歩", "香", "桂", "銀", "金", "角", "飛", "玉",
	"と", "杏", "圭", "全", "馬", "龍",
	"象", "太",
}

// JapaneseSymbol returns the one-character kanji used in KIF diagrams.
func (pt PieceType) JapaneseSymbol() string {
	if pt >= numPieceTypes {
		return ""
	}
	return japaneseSymbols[pt]
}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType | color<<5
type Piece uint8

// NoPiece marks an empty square.
const NoPiece Piece = 0

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || pt >= numPieceTypes || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<5
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return PieceType(p & 31)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p == NoPiece {
		return NoColor
	}
	return Color(p >> 5)
}

// String returns the SFEN symbol of the piece, e.g. "P", "+b".
// Uppercase for black, lowercase for white.
func (p Piece) String() string {
	if p == NoPiece {
		return " "
	}
	pt := p.Type()
	s := string(pt.Char())
	if p.Color() == Black {
		s = strings.ToUpper(s)
	}
	if pt.IsPromoted() {
		s = "+" + s
	}
	return s
}

// PieceFromSymbol parses an SFEN symbol with an optional '+' prefix.
// Returns NoPiece for unknown symbols and for gold/king with a '+'.
func PieceFromSymbol(s string) Piece {
	promoted := false
	if strings.HasPrefix(s, "+") {
		promoted = true
		s = s[1:]
	}
	if len(s) != 1 {
		return NoPiece
	}

	c := Black
	ch := s[0]
	if ch >= 'a' && ch <= 'z' {
		c = White
	} else {
		ch += 'a' - 'A'
	}

	var pt PieceType
	switch ch {
	case 'p':
		pt = Pawn
	case 'l':
		pt = Lance
	case 'n':
		pt = Knight
	case 's':
		pt = Silver
	case 'g':
		pt = Gold
	case 'b':
		pt = Bishop
	case 'r':
		pt = Rook
	case 'k':
		pt = King
	case 'z':
		pt = Elephant
	default:
		return NoPiece
	}

	if promoted {
		pt = pt.Promote()
	}
	return NewPiece(pt, c)
}
