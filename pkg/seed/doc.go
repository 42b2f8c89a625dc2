// Package seed loads chord libraries from JSON or YAML seed files and writes
// them to a ports.VariationWriter in bounded batches.
//
// A seed file maps each chord root to an ordered list of shapes:
//
//	A:
//	  - positions: ["x", "0", "2", "2", "2", "0"]
//	    fingerings: ["-", "-", "1", "2", "3", "-"]
//
// The i-th shape of a root is stored as the variation "<root> v<i+1>", so the
// order of the list matters and so does the order of the roots.
package seed
