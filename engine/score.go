package engine

// composeScore combines the standardized signals into the scalar risk score.
// Higher volatility raises it; more positive news lowers it.
func composeScore(volZ, sentZ float64, p Params) float64 {
	return p.VolWeight*volZ + p.SentWeight*(-sentZ)
}
