package material

import "errors"

// ErrSingularPatternTransform is returned when a pattern transform has no inverse
var ErrSingularPatternTransform = errors.New("pattern transform is not invertible")
