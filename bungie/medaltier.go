package bungie

// MedalTier is the manifest-defined rarity tier of an earned medal. The
// wire values are manifest hash constants, not small sequential integers.
type MedalTier uint32

const (
	MedalTierUnknown MedalTier = 0
	MedalTier1       MedalTier = 802673300
	MedalTier2       MedalTier = 802673303
	MedalTier3       MedalTier = 802673302
	MedalTier4       MedalTier = 802673297
	MedalTier5       MedalTier = 802673296
	MedalTier6       MedalTier = 802673299
	MedalTier7       MedalTier = 802673298
)

// Order returns a display-sort weight, highest tier first.
func (t MedalTier) Order() int {
	switch t {
	case MedalTier1:
		return 700
	case MedalTier2:
		return 600
	case MedalTier3:
		return 500
	case MedalTier4:
		return 400
	case MedalTier5:
		return 300
	case MedalTier6:
		return 200
	case MedalTier7:
		return 100
	default:
		return 0
	}
}
