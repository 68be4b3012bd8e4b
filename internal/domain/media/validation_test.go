package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validImage() *Media {
	return &Media{
		Title:      "Pad Thai Night",
		Kind:       KindImage,
		ImageURL:   "https://cdn.example.com/padthai.jpg",
		ProjectIDs: []string{"p1"},
		Category:   CategoryFood,
		Enabled:    true,
	}
}

func TestValidate(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	zero := 0
	tooLong := 301

	tests := []struct {
		name    string
		mutate  func(m *Media)
		wantErr error
	}{
		{name: "valid image", mutate: func(m *Media) {}},
		{name: "valid video", mutate: func(m *Media) {
			m.Kind = KindVideo
			m.ImageURL = ""
			m.VideoURL = "https://cdn.example.com/clip.mp4"
			m.AssetMIMEType = "video/mp4"
		}},
		{name: "missing title", mutate: func(m *Media) { m.Title = " " }, wantErr: ErrInvalidInput},
		{name: "unknown category", mutate: func(m *Media) { m.Category = "parking" }, wantErr: ErrInvalidInput},
		{name: "building updates allowed", mutate: func(m *Media) { m.Category = CategoryBuildingUpdates }},
		{name: "no projects", mutate: func(m *Media) { m.ProjectIDs = nil }, wantErr: ErrInvalidInput},
		{name: "duplicate projects", mutate: func(m *Media) { m.ProjectIDs = []string{"p1", "p1"} }, wantErr: ErrInvalidInput},
		{name: "end equals start", mutate: func(m *Media) { m.StartAt, m.EndAt = &start, &start }, wantErr: ErrInvalidInput},
		{name: "valid window", mutate: func(m *Media) { m.StartAt, m.EndAt = &start, &end }},
		{name: "duration zero", mutate: func(m *Media) { m.DefaultImageDuration = &zero }, wantErr: ErrInvalidInput},
		{name: "duration too long", mutate: func(m *Media) { m.DefaultImageDuration = &tooLong }, wantErr: ErrInvalidInput},
		{name: "unknown kind", mutate: func(m *Media) { m.Kind = "audio" }, wantErr: ErrInvalidInput},
		{name: "missing asset", mutate: func(m *Media) { m.ImageURL = "" }, wantErr: ErrInvalidAsset},
		{name: "both assets", mutate: func(m *Media) { m.VideoURL = "https://cdn.example.com/clip.mp4" }, wantErr: ErrInvalidAsset},
		{name: "relative url", mutate: func(m *Media) { m.ImageURL = "/padthai.jpg" }, wantErr: ErrInvalidAsset},
		{name: "image mime", mutate: func(m *Media) { m.AssetMIMEType = "image/png" }},
		{name: "video mime on image", mutate: func(m *Media) { m.AssetMIMEType = "video/mp4" }, wantErr: ErrInvalidAsset},
		{name: "unknown mime", mutate: func(m *Media) { m.AssetMIMEType = "image/not-a-thing" }, wantErr: ErrInvalidAsset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validImage()
			tt.mutate(m)
			err := Validate(m)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
