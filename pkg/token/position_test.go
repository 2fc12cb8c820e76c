package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_IsValid(t *testing.T) {
	assert.True(t, Position{Line: 1, Column: 0}.IsValid())
	assert.False(t, Position{}.IsValid())
}

func TestSpan_Contains(t *testing.T) {
	span := Span{
		Start: Position{Line: 1, Column: 0, Offset: 4},
		End:   Position{Line: 1, Column: 10, Offset: 14},
	}

	assert.True(t, span.Contains(4))
	assert.True(t, span.Contains(13))
	assert.False(t, span.Contains(14))
	assert.False(t, span.Contains(3))
}

func TestFormatLocation(t *testing.T) {
	tests := []struct {
		name     string
		moduleID string
		pos      Position
		want     string
	}{
		{
			name:     "valid position",
			moduleID: "layout/application",
			pos:      Position{Line: 2, Column: 5},
			want:     "layout/application @ L2:C5",
		},
		{
			name:     "invalid position falls back to module id",
			moduleID: "layout/application",
			pos:      Position{},
			want:     "layout/application",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLocation(tt.moduleID, tt.pos))
		})
	}
}
