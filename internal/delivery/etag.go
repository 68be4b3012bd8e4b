package delivery

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"

	"github.com/rpggio/signage/internal/precedence"
)

// etagBody is the part of a playlist a kiosk renders or acts on.
// GeneratedAt is excluded so an unchanged playlist keeps its tag.
type etagBody struct {
	Items          []precedence.ResolvedItem `json:"items"`
	Degraded       bool                      `json:"degraded"`
	HandoffBaseURL string                    `json:"handoff_base_url"`
}

// ETag returns a strong entity tag for a playlist. A degraded response
// never shares a tag with a healthy one carrying the same items.
func ETag(pl *Playlist) (string, error) {
	body := etagBody{Items: pl.Items, Degraded: pl.Degraded, HandoffBaseURL: pl.HandoffBaseURL}
	if body.Items == nil {
		body.Items = []precedence.ResolvedItem{}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`, nil
}
