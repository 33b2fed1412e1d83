package testsupport

import "context"

// Resolver supplies canned device classification answers.
type Resolver struct {
	ShortName   string
	Description string
	Err         error
	Calls       int
}

// Classify implements the device resolver contract deterministically.
func (r *Resolver) Classify(_ context.Context, _, _ string) (string, string, error) {
	r.Calls++
	if r.Err != nil {
		return "", "", r.Err
	}
	return r.ShortName, r.Description, nil
}
