package llm

import "context"

type purposeKey struct{}

// UnlabeledPurpose is logged for requests whose context carries no purpose.
const UnlabeledPurpose = "unlabeled"

// WithPurpose tags ctx so the request log can group calls by what they were
// for, e.g. "world-gen".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose set by WithPurpose, or UnlabeledPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return UnlabeledPurpose
}
