package geometry

import "errors"

// ErrSingularTransform is returned when a shape is given a transform with no inverse
var ErrSingularTransform = errors.New("shape transform is not invertible")
