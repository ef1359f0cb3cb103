package featartists

import "testing"

func TestStandardizeJoinPhrases(t *testing.T) {
	tests := []struct {
		name     string
		credit   string
		names    []string
		expected string
		ok       bool
	}{
		{
			name:     "ft variant normalized",
			credit:   "Lead Artist ft. Guest",
			names:    []string{"Lead Artist", "Guest"},
			expected: "Lead Artist feat. Guest",
			ok:       true,
		},
		{
			name:     "ft without dot",
			credit:   "Lead Artist ft Guest",
			names:    []string{"Lead Artist", "Guest"},
			expected: "Lead Artist feat. Guest",
			ok:       true,
		},
		{
			name:     "featuring normalized",
			credit:   "Lead Artist featuring Guest",
			names:    []string{"Lead Artist", "Guest"},
			expected: "Lead Artist feat. Guest",
			ok:       true,
		},
		{
			name:     "case-insensitive variant",
			credit:   "Lead Artist FT. Guest",
			names:    []string{"Lead Artist", "Guest"},
			expected: "Lead Artist feat. Guest",
			ok:       true,
		},
		{
			name:     "already canonical stays put",
			credit:   "Lead Artist feat. Guest",
			names:    []string{"Lead Artist", "Guest"},
			expected: "Lead Artist feat. Guest",
			ok:       true,
		},
		{
			name:     "non-feature joins preserved",
			credit:   "Artist A & Artist B ft. Guest",
			names:    []string{"Artist A", "Artist B", "Guest"},
			expected: "Artist A & Artist B feat. Guest",
			ok:       true,
		},
		{
			name:     "names with regex metacharacters",
			credit:   "AC/DC ft. Guest (Live)",
			names:    []string{"AC/DC", "Guest (Live)"},
			expected: "AC/DC feat. Guest (Live)",
			ok:       true,
		},
		{
			name:     "structural mismatch returns original",
			credit:   "Completely Different Credit",
			names:    []string{"Lead Artist", "Guest"},
			expected: "Completely Different Credit",
			ok:       false,
		},
		{
			name:     "empty credit",
			credit:   "",
			names:    []string{"Lead Artist"},
			expected: "",
			ok:       false,
		},
		{
			name:     "empty names list",
			credit:   "Lead Artist ft. Guest",
			names:    nil,
			expected: "Lead Artist ft. Guest",
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StandardizeJoinPhrases(tt.credit, tt.names)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("StandardizeJoinPhrases(%q, %v) = (%q, %v), want (%q, %v)",
					tt.credit, tt.names, got, ok, tt.expected, tt.ok)
			}
		})
	}
}
