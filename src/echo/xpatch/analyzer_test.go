package xpatch

import "testing"

func TestAnalyzeChangePureInsertion(t *testing.T) {
	cs := analyzeChange([]byte("Hello"), []byte("Hello, World!"))

	if cs.prefixLen != 5 {
		t.Errorf("prefixLen = %d, want 5", cs.prefixLen)
	}

	if cs.suffixLen != 0 {
		t.Errorf("suffixLen = %d, want 0", cs.suffixLen)
	}

	if len(cs.midBase) != 0 {
		t.Errorf("midBase = %q, want empty", cs.midBase)
	}

	if string(cs.midNew) != ", World!" {
		t.Errorf("midNew = %q, want %q", cs.midNew, ", World!")
	}
}

func TestAnalyzeChangePureDeletion(t *testing.T) {
	cs := analyzeChange([]byte("Hello, World!"), []byte("Hello!"))

	if cs.prefixLen != 5 {
		t.Errorf("prefixLen = %d, want 5", cs.prefixLen)
	}

	if cs.suffixLen != 1 {
		t.Errorf("suffixLen = %d, want 1", cs.suffixLen)
	}

	if string(cs.midBase) != ", World" {
		t.Errorf("midBase = %q, want %q", cs.midBase, ", World")
	}

	if len(cs.midNew) != 0 {
		t.Errorf("midNew = %q, want empty", cs.midNew)
	}
}

func TestAnalyzeChangeSuffixSearchDoesNotOverlapPrefix(t *testing.T) {
	// Both buffers are entirely identical runs of 'a'; the prefix and
	// suffix searches must not double-count the shared bytes.
	cs := analyzeChange([]byte("aaaa"), []byte("aa"))

	if cs.prefixLen+cs.suffixLen > 2 {
		t.Fatalf(
			"prefixLen(%d) + suffixLen(%d) exceeds len(new)=2",
			cs.prefixLen, cs.suffixLen,
		)
	}
}

func TestAnalyzeChangeIdenticalBuffers(t *testing.T) {
	x := []byte("the quick brown fox")
	cs := analyzeChange(x, x)

	if cs.prefixLen != len(x) {
		t.Errorf("prefixLen = %d, want %d", cs.prefixLen, len(x))
	}

	if len(cs.midBase) != 0 || len(cs.midNew) != 0 {
		t.Errorf("expected empty middles for identical buffers")
	}
}

func TestAnalyzeChangeEmptyBuffers(t *testing.T) {
	cs := analyzeChange(nil, nil)

	if cs.prefixLen != 0 || cs.suffixLen != 0 {
		t.Errorf("expected zero prefix/suffix for empty buffers, got (%d, %d)", cs.prefixLen, cs.suffixLen)
	}
}

func TestAnalyzeChangeNoCommonality(t *testing.T) {
	cs := analyzeChange([]byte("abc"), []byte("xyz"))

	if cs.prefixLen != 0 || cs.suffixLen != 0 {
		t.Errorf("expected zero prefix/suffix, got (%d, %d)", cs.prefixLen, cs.suffixLen)
	}

	if string(cs.midBase) != "abc" || string(cs.midNew) != "xyz" {
		t.Errorf("midBase/midNew should be the full buffers when nothing is shared")
	}
}
