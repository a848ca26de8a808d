package llm

import "context"

type labelKey struct{}

// Label says why a request was made. The logging decorator reads it from
// the request context.
type Label struct {
	Purpose string
	// Topic is the subject and chapter a request is about, e.g.
	// "Physics 1st / Vector". Tutor questions have none.
	Topic string
}

// WithLabel attaches l to ctx.
func WithLabel(ctx context.Context, l Label) context.Context {
	return context.WithValue(ctx, labelKey{}, l)
}

// LabelFrom returns the label attached to ctx. Unlabelled requests get the
// purpose "unknown".
func LabelFrom(ctx context.Context) Label {
	l, _ := ctx.Value(labelKey{}).(Label)
	if l.Purpose == "" {
		l.Purpose = "unknown"
	}
	return l
}
