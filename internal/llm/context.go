package llm

import "context"

// The call purpose rides on the context so the accounting decorator can
// label records without every call site threading a parameter through
// the client chain.
type purposeKey struct{}

// WithPurpose tags the context with a purpose label for call accounting.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom reads the purpose label, or "unknown" when untagged.
func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeKey{}).(string)
	if p == "" {
		return "unknown"
	}
	return p
}
