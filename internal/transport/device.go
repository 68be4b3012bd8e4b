package transport

import (
	"context"
	"net/http"
)

// DeviceHeader carries the optional self-reported kiosk device ID.
const DeviceHeader = "X-Kiosk-Device"

type deviceKey struct{}

// DeviceIDFromContext returns the device ID from context, if present.
func DeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(deviceKey{}).(string)
	return deviceID, ok
}

// DeviceMiddleware extracts X-Kiosk-Device and stores it in context.
func DeviceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := r.Header.Get(DeviceHeader)
		if deviceID != "" {
			ctx := context.WithValue(r.Context(), deviceKey{}, deviceID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}
