package toolversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemver(t *testing.T) {
	tests := []struct {
		in      string
		want    Semver
		wantErr bool
	}{
		{in: "3.3.70", want: Semver{3, 3, 70}},
		{in: "v1.2.3", want: Semver{1, 2, 3}},
		{in: " 0.37 ", want: Semver{0, 37, 0}},
		{in: "3", wantErr: true},
		{in: "a.b.c", wantErr: true},
		{in: "1.2.x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSemver(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFind(t *testing.T) {
	v, err := Find("GTKWave Analyzer v3.3.104 (w)1999-2020 BSI\n")
	require.NoError(t, err)
	assert.Equal(t, "3.3.104", v.String())

	v, err = Find("GHDL 0.37 (Ubuntu 0.37+dfsg-1) [Dunoon edition]")
	require.NoError(t, err)
	assert.Equal(t, Semver{0, 37, 0}, v)

	_, err = Find("no digits here")
	require.Error(t, err)
}

func TestLessThan(t *testing.T) {
	assert.True(t, Semver{3, 3, 61}.LessThan(Semver{3, 3, 70}))
	assert.True(t, Semver{2, 9, 9}.LessThan(Semver{3, 0, 0}))
	assert.False(t, Semver{3, 4, 0}.LessThan(Semver{3, 3, 70}))
	assert.False(t, Semver{3, 3, 70}.LessThan(Semver{3, 3, 70}))
}
