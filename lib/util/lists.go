package util

func Filter[S ~[]T, T any](list S, pred func(T) bool) S {
	out := S{}
	for _, t := range list {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func Map[T, R any](list []T, f func(T) R) []R {
	out := make([]R, len(list))
	for i, t := range list {
		out[i] = f(t)
	}
	return out
}

// DifferenceBy returns the elements of left whose id is not the id of any
// element of right, in the order they appear in left.
func DifferenceBy[S ~[]T, T any, ID comparable](left, right S, id IdFunc[T, ID]) S {
	exclude := NewSet(id)
	exclude.AddFrom(right)
	return Filter(left, func(t T) bool {
		return !exclude.Has(t)
	})
}
