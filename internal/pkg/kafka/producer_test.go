package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBrokers(t *testing.T) {
	tests := []struct {
		name    string
		brokers string
		want    []string
	}{
		{name: "single", brokers: "kafka:9092", want: []string{"kafka:9092"}},
		{name: "list with spaces", brokers: "a:9092, b:9092 ,c:9092", want: []string{"a:9092", "b:9092", "c:9092"}},
		{name: "empty entries", brokers: ",, a:1,", want: []string{"a:1"}},
		{name: "empty", brokers: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitBrokers(tt.brokers))
		})
	}
}

func TestNewProducerWithoutBrokersIsNoop(t *testing.T) {
	p := NewProducer("  ", "events")

	_, ok := p.(*noopProducer)
	assert.True(t, ok)
	assert.NoError(t, p.SendMessage(context.Background(), "events", map[string]int{"width": 10}))
	assert.NoError(t, p.Close())
}
