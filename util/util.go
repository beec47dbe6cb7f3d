package util

import (
	"io/fs"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

func Lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

// InverseLerp returns where value sits between a and b, or 0 when a and b
// are the same.
func InverseLerp[F constraints.Float](a, b, value F) F {
	if Approximately(a, b) {
		return 0
	}
	return (value - a) / (b - a)
}

func InverseLerpClamped[F constraints.Float](a, b, value F) F {
	return Clamp01(InverseLerp(a, b, value))
}

func Clamp[A constraints.Ordered](value, lo, hi A) A {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func Clamp01[F constraints.Float](value F) F {
	return Clamp(value, 0, 1)
}

func Approximately[F constraints.Float](a, b F) bool {
	return math.Abs(float64(b-a)) <= math.SmallestNonzeroFloat64
}

func IsFinite[F constraints.Float](v F) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func Max[A constraints.Ordered](a, b A) A {
	if a < b {
		return b
	}
	return a
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// GatherChartPaths walks root for files ending in ext. A maxNum of 0 means
// no limit.
func GatherChartPaths(root string, ext string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(s), ext) {
			return nil
		}
		if maxNum == 0 || len(res) < maxNum {
			res = append(res, s)
		}
		return nil
	}
	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, err
	}
	sort.Strings(res)
	return res, nil
}
