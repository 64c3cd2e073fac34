package page

import (
	"testing"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantErr     bool
		wantSection string
		wantUpsell  int64
		wantWidget  string
	}{
		{
			name:        "full context",
			header:      `section="main-grid";upsell=40712345, widget="1.4.0"`,
			wantSection: "main-grid",
			wantUpsell:  40712345,
			wantWidget:  "1.4.0",
		},
		{
			name:        "section without upsell",
			header:      `section="main-grid"`,
			wantSection: "main-grid",
		},
		{
			name:       "widget only",
			header:     `widget="2.0.0"`,
			wantWidget: "2.0.0",
		},
		{
			name:        "upsell as quoted string",
			header:      `section="grid";upsell="40712345"`,
			wantSection: "grid",
			wantUpsell:  40712345,
		},
		{
			name:        "non-numeric upsell is inert",
			header:      `section="grid";upsell="soon"`,
			wantSection: "grid",
			wantUpsell:  0,
		},
		{
			name:        "negative upsell is inert",
			header:      `section="grid";upsell=-3`,
			wantSection: "grid",
			wantUpsell:  0,
		},
		{
			name:    "empty header",
			header:  "",
			wantErr: true,
		},
		{
			name:    "malformed header",
			header:  `section=???`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, err := ParseHeader(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseHeader(%q) = nil error, want error", tt.header)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHeader(%q) error: %v", tt.header, err)
			}
			if pc.SectionID != tt.wantSection {
				t.Errorf("SectionID = %q, want %q", pc.SectionID, tt.wantSection)
			}
			if pc.UpsellVariantID != tt.wantUpsell {
				t.Errorf("UpsellVariantID = %d, want %d", pc.UpsellVariantID, tt.wantUpsell)
			}
			if pc.WidgetVersion != tt.wantWidget {
				t.Errorf("WidgetVersion = %q, want %q", pc.WidgetVersion, tt.wantWidget)
			}
		})
	}
}

func TestCheckWidgetVersion(t *testing.T) {
	tests := []struct {
		name    string
		got     string
		min     string
		wantErr bool
	}{
		{"above minimum", "1.5.0", "1.4.0", false},
		{"equal", "1.4.0", "1.4.0", false},
		{"below minimum", "1.3.9", "1.4.0", true},
		{"no minimum configured", "0.1.0", "", false},
		{"no version reported", "", "1.4.0", false},
		{"v-prefixed", "v1.5.0", "v1.4.0", false},
		{"non-semver passes", "latest", "1.4.0", false},
		{"non-semver minimum passes", "1.5.0", "stable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckWidgetVersion(tt.got, tt.min)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckWidgetVersion(%q, %q) = %v, wantErr %v", tt.got, tt.min, err, tt.wantErr)
			}
		})
	}
}
