package textutil

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	score := dot / (a.norm * b.norm)
	if score > 1 {
		return 1
	}
	return score
}

// TitleSimilarity scores how closely two titles match. The boolean is false
// when either title has no comparable tokens.
func TitleSimilarity(a, b string) (float64, bool) {
	fa, fb := NewFingerprint(a), NewFingerprint(b)
	if fa == nil || fb == nil {
		return 0, false
	}
	return CosineSimilarity(fa, fb), true
}
