package locale

// MissingKeys returns the keys of baseKeys that target lacks, in base order.
func MissingKeys(baseKeys []string, target *Document) []string {
	var missing []string
	for _, k := range baseKeys {
		if !target.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}
