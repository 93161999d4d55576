package metadata_test

import (
	"strings"
	"testing"

	"github.com/linkdeck/linkdeck/internal/metadata"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		html string
		want metadata.Metadata
	}{
		{
			name: "open graph tags",
			html: `<html><head>
				<meta property="og:title" content="OG Title">
				<meta property="og:description" content="OG Description">
				<meta property="og:image" content="https://example.com/og.png">
			</head></html>`,
			want: metadata.Metadata{
				Title:       "OG Title",
				Description: "OG Description",
				ImageURL:    "https://example.com/og.png",
			},
		},
		{
			name: "falls back to title tag and meta description",
			html: `<html><head>
				<title>Plain Title</title>
				<meta name="description" content="Plain Description">
			</head></html>`,
			want: metadata.Metadata{
				Title:       "Plain Title",
				Description: "Plain Description",
			},
		},
		{
			name: "og title wins over title tag",
			html: `<html><head>
				<meta property="og:title" content="OG Title">
				<title>Plain Title</title>
			</head></html>`,
			want: metadata.Metadata{Title: "OG Title"},
		},
		{
			name: "twitter image fallback",
			html: `<html><head>
				<meta name="twitter:image" content="https://example.com/tw.png">
			</head></html>`,
			want: metadata.Metadata{ImageURL: "https://example.com/tw.png"},
		},
		{
			name: "no metadata",
			html: `<html><body><p>nothing here</p></body></html>`,
			want: metadata.Metadata{},
		},
		{
			name: "truncated markup",
			html: `<html><head><meta property="og:title" content="Survivor"><met`,
			want: metadata.Metadata{Title: "Survivor"},
		},
		{
			name: "not html at all",
			html: `{"this": "is json"}`,
			want: metadata.Metadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metadata.Extract(strings.NewReader(tt.html))
			if got != tt.want {
				t.Errorf("Extract() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
