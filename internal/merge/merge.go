// Package merge implements the stack merger (C5, mergeSyntaxStack):
// combining a predecessor's residual stack with a successor's in-state
// stack, cancelling matched brackets (spec §4.5).
package merge

import "github.com/jpartition/jpartition/internal/partition"

// Merge folds the elements of s2 (filtered to those positioned after
// prevEnd) into s1, returning the resulting stack s3 plus the filtered s2
// that was actually folded in.
func Merge(s1, s2 partition.Stack, prevEnd int64) (s3 partition.Stack, filtered partition.Stack) {
	for _, e := range s2 {
		if e.Pos > prevEnd {
			filtered = append(filtered, e)
		}
	}

	s3 = s1.Clone()
	for _, e := range filtered {
		switch e.Kind {
		case partition.CloseBrace:
			if top, ok := s3.Top(); ok && top.Kind == partition.OpenBrace {
				s3 = s3[:len(s3)-1]
			} else if len(s3) >= 2 {
				s3 = s3[:len(s3)-2]
			} else {
				s3 = s3[:0]
			}
		case partition.CloseBracket:
			if len(s3) > 0 {
				s3 = s3[:len(s3)-1]
			}
		default:
			s3 = append(s3, e)
		}
	}
	return s3, filtered
}
