package resultsdomain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "upper cases", in: "team alpha", want: "TEAM ALPHA"},
		{name: "collapses spaces and tabs", in: "A  \t B", want: "A B"},
		{name: "keeps newlines", in: "a\nb\r\nc", want: "A\nB\r\nC"},
		{name: "symbols become spaces", in: "#1 [DS]·Alice!", want: " 1 DS ALICE "},
		{name: "accents are dropped", in: "Zoë", want: "ZO "},
		{name: "symbol runs collapse", in: "a . . b", want: "A B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"  ",
		"PUBG MOBILE\n#1\n DS|Alice  \n 3 eliminations",
		"héllo\t\twörld\r\n\r\n--",
		"ÿ ß 漢字 ..",
		"a  b",
	}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}
