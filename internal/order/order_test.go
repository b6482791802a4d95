package order

import "testing"

func TestFloat64SortRoundTrip(t *testing.T) {
	buf := EncodeFloat64(3.5)
	if got := DecodeFloat64(buf); got != 3.5 {
		t.Fatalf("got %v, want 3.5", got)
	}
}

func TestFloat64SortMergeAggregate(t *testing.T) {
	dst := EncodeFloat64(2)
	src := EncodeFloat64(5)
	Float64Sort.Merge(Aggregate, dst, src)
	if got := DecodeFloat64(dst); got != 7 {
		t.Fatalf("got %v, want 7", got)
	}
}

func TestFloat64SortMergeMax(t *testing.T) {
	dst := EncodeFloat64(2)
	src := EncodeFloat64(5)
	Float64Sort.Merge(Max, dst, src)
	if got := DecodeFloat64(dst); got != 5 {
		t.Fatalf("got %v, want 5", got)
	}

	dst = EncodeFloat64(9)
	src = EncodeFloat64(5)
	Float64Sort.Merge(Max, dst, src)
	if got := DecodeFloat64(dst); got != 9 {
		t.Fatalf("got %v, want 9", got)
	}
}

func TestFloat64SortLess(t *testing.T) {
	lo := EncodeFloat64(1)
	hi := EncodeFloat64(2)
	if !Float64Sort.Less(lo, hi) {
		t.Fatalf("expected 1 < 2")
	}
	if Float64Sort.Less(hi, lo) {
		t.Fatalf("expected 2 to not be less than 1")
	}
}

func TestBundleEmptyWidthAndBuffer(t *testing.T) {
	var b Bundle
	if !b.Empty() {
		t.Fatalf("expected a zero-value bundle to be empty")
	}
	if b.Width() != 0 {
		t.Fatalf("got width %v, want 0", b.Width())
	}
	if len(b.NewBuffer()) != 0 {
		t.Fatalf("expected an empty buffer from an empty bundle")
	}
}

func TestBundleMergeAcrossMultipleDefinitions(t *testing.T) {
	b := Bundle{Defs: []SortDefinition{Float64Sort, Float64Sort}, Mode: Aggregate}
	if b.Width() != 16 {
		t.Fatalf("got width %v, want 16", b.Width())
	}

	dst := b.NewBuffer()
	copy(dst[0:8], EncodeFloat64(1))
	copy(dst[8:16], EncodeFloat64(10))

	src := b.NewBuffer()
	copy(src[0:8], EncodeFloat64(2))
	copy(src[8:16], EncodeFloat64(20))

	b.Merge(dst, src)

	if got := DecodeFloat64(dst[0:8]); got != 3 {
		t.Fatalf("region 0: got %v, want 3", got)
	}
	if got := DecodeFloat64(dst[8:16]); got != 30 {
		t.Fatalf("region 1: got %v, want 30", got)
	}
}

func TestNoScoreIsDefault(t *testing.T) {
	s := NoScore()
	if !s.IsDefault() {
		t.Fatalf("expected the shared sentinel to report IsDefault")
	}
	if s.Evaluate() != nil {
		t.Fatalf("expected a nil buffer from the no-score sentinel")
	}
}

func TestBufferScoreIsNotDefault(t *testing.T) {
	s := BufferScore(EncodeFloat64(1))
	if s.IsDefault() {
		t.Fatalf("expected a concrete buffer score to not be the default")
	}
	if DecodeFloat64(s.Evaluate()) != 1 {
		t.Fatalf("got %v, want 1", DecodeFloat64(s.Evaluate()))
	}
}
