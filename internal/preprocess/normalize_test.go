package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hcalazans/autovoz/internal/preprocess"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercase", input: "O Carro É BOM", want: "o carro é bom"},
		{
			name:  "urls mentions hashtags",
			input: "Este é um @tweet com #hashtags e um link: https://t.co/xyz 123!!",
			want:  "este é um com e um link",
		},
		{name: "digits and punctuation", input: "motor 1.0, fraco!?", want: "motor fraco"},
		{name: "collapse whitespace", input: "  muito\n\n espaço\t aqui  ", want: "muito espaço aqui"},
		{name: "www links", input: "veja www.exemplo.com.br agora", want: "veja agora"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, preprocess.Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"O carro é excelente, recomendo! https://x.com/abc",
		"@alguem o #hb20 2020 custa R$ 70.000",
		"",
		"só texto simples",
	}
	for _, in := range inputs {
		once := preprocess.Normalize(in)
		require.Equal(t, once, preprocess.Normalize(once))
	}
}

func TestFlattenMarkdown(t *testing.T) {
	got := preprocess.FlattenMarkdown("O **carro** é [ótimo](https://example.com) mesmo")
	require.Equal(t, "O carro é ótimo mesmo", got)
}

func TestRemoveStopwords(t *testing.T) {
	got := preprocess.RemoveStopwords("o carro é muito bom para a cidade")
	require.Equal(t, "carro bom cidade", got)
}
