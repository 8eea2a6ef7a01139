package catalog

// PieceType is an immutable record describing one kind of piece: its
// drafting cost, scoring, tier and movement rules. Values are never
// mutated after registration; a catalog entry is shared by every
// PieceInstance of that type across every game.
type PieceType struct {
	ID   string
	Tier Tier

	Cost          int
	VictoryPoints int

	IsRoyal       bool // checkmatable
	IsMandatory   bool // only the King
	ReplacesKing  bool // king-replacer; mutually exclusive with King/other replacers
	CanCastle     bool
	CanBeCaptured bool
	CanFreeze     bool
	CanBeJumpedOver bool

	// MaxCount is a hard per-army cap on how many of this type may be
	// drafted, or 0 for no cap beyond the tier slot limits.
	MaxCount int

	Movement    Movement
	CaptureType CaptureType
}

// IsDisplacementCapable reports whether the piece captures by moving onto
// the target square.
func (p PieceType) IsDisplacementCapable() bool {
	return p.CaptureType.IsDisplacement()
}

// PromotionEligible reports whether this type can appear in a promotion
// option set per spec.md §4.9: tier != pawn, not royal-mandatory, does not
// replace the king, and can capture.
func (p PieceType) PromotionEligible() bool {
	return p.Tier != Pawn && !p.IsMandatory && !p.ReplacesKing && p.CaptureType != NoCapture
}
