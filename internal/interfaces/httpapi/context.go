package httpapi

import "context"

type contextKey string

const fanContextKey contextKey = "fan_id"

// FanIDHeader lets a client act as a specific fan. Requests without it act as
// the configured demo fan.
const FanIDHeader = "X-Fan-ID"

func withFanID(ctx context.Context, fanID string) context.Context {
	return context.WithValue(ctx, fanContextKey, fanID)
}

func fanIDFromContext(ctx context.Context) (string, bool) {
	fanID, ok := ctx.Value(fanContextKey).(string)
	return fanID, ok && fanID != ""
}
