package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// IterSeqZip pairs the values of two iterators, stopping at the end of the
// shorter one.
func IterSeqZip[T1 any, T2 any](seq1 iter.Seq[T1], seq2 iter.Seq[T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		next2, stop := iter.Pull(seq2)
		defer stop()

		for val1 := range seq1 {
			val2, ok := next2()
			if !ok || !yield(val1, val2) {
				return
			}
		}
	}
}
