package util

type IdFunc[T any, ID comparable] func(T) ID

func IdentityId[T comparable](t T) T {
	return t
}

// Set holds items keyed by an identity function, so that two items with the
// same id are the same member even if they differ otherwise.
type Set[T any, ID comparable] struct {
	m  map[ID]T
	id IdFunc[T, ID]
}

func NewSet[T any, ID comparable](id IdFunc[T, ID]) *Set[T, ID] {
	return &Set[T, ID]{
		m:  map[ID]T{},
		id: id,
	}
}

func (self *Set[T, ID]) Add(items ...T) {
	self.AddFrom(items)
}

func (self *Set[T, ID]) AddFrom(items []T) {
	for _, item := range items {
		self.m[self.id(item)] = item
	}
}

func (self *Set[T, ID]) Has(item T) bool {
	_, ok := self.m[self.id(item)]
	return ok
}

func (self *Set[T, ID]) Len() int {
	return len(self.m)
}
