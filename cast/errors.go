package cast

import "fmt"

// errNotSingleFunction reports a translation unit that does not contain
// exactly one transformable function, per §6.1.
func errNotSingleFunction(n int) error {
	return fmt.Errorf("cast: expected exactly one transformable function, found %d", n)
}
