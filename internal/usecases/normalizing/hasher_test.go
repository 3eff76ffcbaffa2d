package normalizing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "string vazia",
			raw:  "",
			want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name: "email normalizado",
			raw:  "test@example.com",
			want: "973dfe463ec85785f5f95af5ba3906eedb2d931c24e69824a89ea65dba4e813b",
		},
		{
			name: "abc",
			raw:  "abc",
			want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hash(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Hash(tt.raw), "hash deve ser determinístico")
			assert.Len(t, got, HashLength)
		})
	}
}

func TestIsHashed(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "digest válido", value: Hash("foo@bar.com"), want: true},
		{name: "digest em maiúsculas", value: strings.ToUpper(Hash("foo@bar.com")), want: false},
		{name: "tamanho menor", value: Hash("x")[:63], want: false},
		{name: "tamanho maior", value: Hash("x") + "0", want: false},
		{name: "caractere fora do hex", value: "g" + Hash("x")[1:], want: false},
		{name: "email", value: "foo@bar.com", want: false},
		{name: "vazio", value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHashed(tt.value))
		})
	}
}
