package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatTextDiff(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		want string
	}{
		{"identical", "net 30", "net 30", "net 30"},
		{"insertion", "net 30", "net 30 days", "net 30{+ days+}"},
		{"deletion", "FOB origin", "FOB", "FOB[- origin-]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatTextDiff(tt.old, tt.new))
		})
	}
}

func TestTextDiff_EmptyStrings(t *testing.T) {
	require.Empty(t, TextDiff("", ""))
	require.Equal(t, "{+new+}", FormatTextDiff("", "new"))
	require.Equal(t, "[-old-]", FormatTextDiff("old", ""))
}
