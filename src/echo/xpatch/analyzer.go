package xpatch

// changeSet is the output of the change analyzer: the common prefix
// and suffix lengths, and the differing middle region of each buffer.
// mid_base and mid_new share no bytes with prefix or suffix by
// construction.
type changeSet struct {
	prefixLen int
	suffixLen int
	midBase   []byte
	midNew    []byte
}

// analyzeChange locates the common prefix and suffix of base and new,
// bounding the suffix search so it never overlaps the prefix.
func analyzeChange(base, new []byte) changeSet {
	limit := len(base)
	if len(new) < limit {
		limit = len(new)
	}

	prefixLen := 0
	for prefixLen < limit && base[prefixLen] == new[prefixLen] {
		prefixLen++
	}

	suffixLimit := limit - prefixLen
	suffixLen := 0
	for suffixLen < suffixLimit &&
		base[len(base)-1-suffixLen] == new[len(new)-1-suffixLen] {
		suffixLen++
	}

	return changeSet{
		prefixLen: prefixLen,
		suffixLen: suffixLen,
		midBase:   base[prefixLen : len(base)-suffixLen],
		midNew:    new[prefixLen : len(new)-suffixLen],
	}
}
