package catalog

// registry is the immutable, process-wide piece-type table. It is built
// once at package init and never mutated afterward; every PieceInstance
// across every game and every room references these same values by ID.
var registry = map[string]PieceType{}

func register(p PieceType) {
	if _, dup := registry[p.ID]; dup {
		panic("catalog: duplicate piece type id " + p.ID)
	}
	registry[p.ID] = p
}

// By looks up a piece type by its stable ID.
func By(id string) (PieceType, bool) {
	p, ok := registry[id]
	return p, ok
}

// MustBy looks up a piece type by ID, panicking if absent. Intended for use
// with IDs that are constants in this package (programmer error if missing).
func MustBy(id string) PieceType {
	p, ok := By(id)
	if !ok {
		panic("catalog: unknown piece type " + id)
	}
	return p
}

// All returns every registered piece type, in registration order.
func All() []PieceType {
	out := make([]PieceType, 0, len(order))
	for _, id := range order {
		out = append(out, registry[id])
	}
	return out
}

// PromotionCandidates returns the piece types present on board (by id, deduped)
// that are eligible promotion targets per PieceType.PromotionEligible.
func PromotionCandidates(presentIDs []string) []PieceType {
	seen := map[string]bool{}
	var out []PieceType
	for _, id := range presentIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := By(id); ok && p.PromotionEligible() {
			out = append(out, p)
		}
	}
	return out
}

// Stable piece type IDs.
const (
	King        = "king"
	Queen       = "queen"
	Rook        = "rook"
	Bishop      = "bishop"
	Knight      = "knight"
	PawnID      = "pawn"
	BerolinaPawn = "berolina_pawn"
	ShogiPawnID = "shogi_pawn"

	CoordinatorID = "coordinator"
	Withdrawer    = "withdrawer"
	BoxerID       = "boxer"
	ThiefID       = "thief"
	LongLeaper    = "long_leaper"
	CannonID    = "cannon"
	ChameleonID = "chameleon"
	Herald      = "herald"
	Regent      = "regent"
	PhantomKing = "phantom_king"
	Chamberlain = "chamberlain"
	Pontiff     = "pontiff"
	NightriderID = "nightrider"
	GrasshopperID = "grasshopper"
	Fool        = "fool"
	Jester      = "jester"
)

var order []string

func init() {
	defs := []PieceType{
		{
			ID: King, Tier: Royalty, Cost: 0, VictoryPoints: 0,
			IsRoyal: true, IsMandatory: true, CanCastle: true, CanBeCaptured: true,
			CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{KingOneSquare}},
			CaptureType: Standard,
		},
		{
			ID: Queen, Tier: Royalty, Cost: 90, VictoryPoints: 9,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: AllDirections},
			CaptureType: Standard,
		},
		{
			ID: Rook, Tier: Piece, Cost: 50, VictoryPoints: 5,
			CanCastle: true, CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: Orthogonal},
			CaptureType: Standard,
		},
		{
			ID: Bishop, Tier: Piece, Cost: 30, VictoryPoints: 3,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: Diagonal},
			CaptureType: Standard,
		},
		{
			ID: Knight, Tier: Piece, Cost: 30, VictoryPoints: 3,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Leaps: []LeapOffset{{DFile: 2, DRank: 1, Symmetric: true}}},
			CaptureType: Standard,
		},
		{
			ID: PawnID, Tier: Pawn, Cost: 10, VictoryPoints: 1,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{PawnForward, PawnCaptureDiagonal}},
			CaptureType: Standard,
		},
		{
			ID: BerolinaPawn, Tier: Pawn, Cost: 12, VictoryPoints: 1,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{PeasantDiagonal, PeasantCaptureForward}},
			CaptureType: Standard,
		},
		{
			ID: ShogiPawnID, Tier: Pawn, Cost: 8, VictoryPoints: 1,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{ShogiPawn}},
			CaptureType: Standard,
		},
		{
			ID: CoordinatorID, Tier: Piece, Cost: 70, VictoryPoints: 7,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: AllDirections},
			CaptureType: Coordinator,
		},
		{
			ID: Withdrawer, Tier: Piece, Cost: 60, VictoryPoints: 6,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: AllDirections},
			CaptureType: Withdrawal,
		},
		{
			ID: BoxerID, Tier: Piece, Cost: 40, VictoryPoints: 4,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{KingOneSquare}},
			CaptureType: Boxer,
		},
		{
			ID: ThiefID, Tier: Piece, Cost: 55, VictoryPoints: 5,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: AllDirections},
			CaptureType: Thief,
		},
		{
			ID: LongLeaper, Tier: Piece, Cost: 65, VictoryPoints: 6,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Slides: AllDirections, Specials: []Special{LongLeapSpecial}},
			CaptureType: LongLeap,
		},
		{
			ID: CannonID, Tier: Piece, Cost: 45, VictoryPoints: 4,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{CannonMove}},
			CaptureType: Cannon,
		},
		{
			ID: ChameleonID, Tier: Piece, Cost: 80, VictoryPoints: 8,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{ChameleonSpecial}},
			CaptureType: Chameleon,
		},
		{
			ID: Herald, Tier: Piece, Cost: 20, VictoryPoints: 2, MaxCount: 2,
			CanBeCaptured: true, CanFreeze: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{HeraldOrthogonal}},
			CaptureType: NoCapture,
		},
		{
			ID: Regent, Tier: Royalty, Cost: 85, VictoryPoints: 0,
			IsRoyal: true, CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{RegentConditional}},
			CaptureType: Standard,
		},
		{
			ID: PhantomKing, Tier: Royalty, Cost: 25, VictoryPoints: 0,
			IsRoyal: true, ReplacesKing: true, CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{SwapAdjacent}},
			CaptureType: NoCapture,
		},
		{
			ID: Chamberlain, Tier: Piece, Cost: 35, VictoryPoints: 3,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{SwapAdjacent}},
			CaptureType: NoCapture,
		},
		{
			ID: Pontiff, Tier: Piece, Cost: 50, VictoryPoints: 5,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{Bounce}},
			CaptureType: Standard,
		},
		{
			ID: NightriderID, Tier: Piece, Cost: 55, VictoryPoints: 5,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{Nightrider}},
			CaptureType: Standard,
		},
		{
			ID: GrasshopperID, Tier: Piece, Cost: 35, VictoryPoints: 3,
			CanBeCaptured: true, CanBeJumpedOver: true,
			Movement:    Movement{Specials: []Special{Grasshopper}},
			CaptureType: Standard,
		},
		{
			ID: Fool, Tier: Piece, Cost: 5, VictoryPoints: -5,
			CanBeCaptured: false, CanBeJumpedOver: false,
			Movement:    Movement{Leaps: []LeapOffset{{DFile: 1, DRank: 1, Symmetric: true}}},
			CaptureType: NoCapture,
		},
		{
			ID: Jester, Tier: Piece, Cost: 5, VictoryPoints: -15,
			CanBeCaptured: false, CanBeJumpedOver: false,
			Movement:    Movement{Leaps: []LeapOffset{{DFile: 2, DRank: 1, Symmetric: true}}},
			CaptureType: NoCapture,
		},
	}

	for _, d := range defs {
		register(d)
		order = append(order, d.ID)
	}
}
