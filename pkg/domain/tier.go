package domain

// Tier is a loyalty level. Values match the backend's nivel strings.
type Tier string

const (
	TierBronze Tier = "Bronze"
	TierPrata  Tier = "Prata"
	TierOuro   Tier = "Ouro"
)

// Lower bounds of each tier band, inclusive.
const (
	PrataThreshold = 500
	OuroThreshold  = 1000
)

// Tiers lists the tiers from lowest to highest.
var Tiers = []Tier{TierBronze, TierPrata, TierOuro}

// TierFor classifies an accumulated points total.
func TierFor(points int) Tier {
	switch {
	case points >= OuroThreshold:
		return TierOuro
	case points >= PrataThreshold:
		return TierPrata
	default:
		return TierBronze
	}
}

// English returns the English tier name (Gold, Silver, Bronze).
func (t Tier) English() string {
	switch t {
	case TierOuro:
		return "Gold"
	case TierPrata:
		return "Silver"
	case TierBronze:
		return "Bronze"
	}
	return string(t)
}

// PointsToNext returns how many points separate points from the next tier,
// and false when already at the top tier.
func PointsToNext(points int) (int, bool) {
	switch TierFor(points) {
	case TierBronze:
		return PrataThreshold - max(points, 0), true
	case TierPrata:
		return OuroThreshold - points, true
	}
	return 0, false
}
