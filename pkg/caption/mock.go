package caption

import "context"

// Mock is a canned captioner for tests. Calls counts invocations.
type Mock struct {
	Response string
	Err      error
	Calls    int
}

func (m *Mock) Caption(ctx context.Context, imageB64 string) (string, error) {
	m.Calls++
	return m.Response, m.Err
}
