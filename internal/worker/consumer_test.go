package worker

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

func TestReceiveCount(t *testing.T) {
	attrKey := string(types.MessageSystemAttributeNameApproximateReceiveCount)

	tests := []struct {
		name string
		msg  types.Message
		want int
	}{
		{"no attributes", types.Message{}, 1},
		{"first delivery", types.Message{Attributes: map[string]string{attrKey: "1"}}, 1},
		{"redelivery", types.Message{Attributes: map[string]string{attrKey: "4"}}, 4},
		{"multi digit", types.Message{Attributes: map[string]string{attrKey: "12"}}, 12},
		{"garbage value", types.Message{Attributes: map[string]string{attrKey: "abc"}}, 1},
		{"empty value", types.Message{Attributes: map[string]string{attrKey: ""}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReceiveCount(tt.msg); got != tt.want {
				t.Errorf("ReceiveCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
