package runtime

import (
	"testing"

	"github.com/aretw0/witgo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Kinds(t *testing.T) {
	tests := []struct {
		name string
		resp domain.ConverseResponse
		want Step
	}{
		{
			name: "stop",
			resp: domain.ConverseResponse{Type: "stop"},
			want: Step{Kind: KindStop},
		},
		{
			name: "message",
			resp: domain.ConverseResponse{Type: "msg", Msg: "It is sunny", QuickReplies: []string{"thanks"}},
			want: Step{Kind: KindMessage, Text: "It is sunny", QuickReplies: []string{"thanks"}},
		},
		{
			name: "action",
			resp: domain.ConverseResponse{Type: "action", Action: "getForecast", Entities: domain.Entities{"location": {{"value": "London"}}}},
			want: Step{Kind: KindAction, Action: "getForecast", Entities: domain.Entities{"location": {{"value": "London"}}}},
		},
		{
			name: "error",
			resp: domain.ConverseResponse{Type: "error"},
			want: Step{Kind: KindError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(&tt.resp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_LegacyMergeNormalization(t *testing.T) {
	entities := domain.Entities{"location": {{"value": "Rome"}}}

	legacy, err := Classify(&domain.ConverseResponse{Type: "merge", Entities: entities})
	require.NoError(t, err)

	modern, err := Classify(&domain.ConverseResponse{Type: "action", Action: "merge", Entities: entities})
	require.NoError(t, err)

	assert.Equal(t, modern, legacy, "merge tag must classify identically to an explicit merge action")
}

func TestClassify_MissingTag(t *testing.T) {
	_, err := Classify(&domain.ConverseResponse{Msg: "tagless"})

	var pErr *domain.ProtocolError
	require.ErrorAs(t, err, &pErr)
	assert.Empty(t, pErr.Tag)
}

func TestClassify_UnknownTag(t *testing.T) {
	_, err := Classify(&domain.ConverseResponse{Type: "shrug"})

	var pErr *domain.ProtocolError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "shrug", pErr.Tag)
}

func TestClassify_Idempotent(t *testing.T) {
	resp := &domain.ConverseResponse{Type: "action", Action: "merge", Entities: domain.Entities{"a": {{"value": 1}}}}

	first, err1 := Classify(resp)
	second, err2 := Classify(resp)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}
