package kafka

import (
	"encoding/json"
	"testing"

	"blog/internal/config"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	event := map[string]any{"type": "comment.liked", "comment_id": 42}

	msg, err := newMessage("comment-events", "42", event)
	require.NoError(t, err)

	require.NotNil(t, msg.TopicPartition.Topic)
	assert.Equal(t, "comment-events", *msg.TopicPartition.Topic)
	assert.Equal(t, kafka.PartitionAny, msg.TopicPartition.Partition)
	assert.Equal(t, []byte("42"), msg.Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "comment.liked", decoded["type"])
	assert.Equal(t, float64(42), decoded["comment_id"])
}

func TestNewMessage_EmptyKey(t *testing.T) {
	msg, err := newMessage("comment-events", "", struct{}{})
	require.NoError(t, err)
	assert.Nil(t, msg.Key)
}

func TestNewMessage_MarshalError(t *testing.T) {
	_, err := newMessage("comment-events", "1", make(chan int))
	assert.Error(t, err)
}

func TestProducerConfig_CleansBrokerList(t *testing.T) {
	cm := producerConfig(config.Kafka{Brokers: " kafka-1:9092 ,, kafka-2:9092", Acks: "all"})

	servers, err := cm.Get("bootstrap.servers", nil)
	require.NoError(t, err)
	assert.Equal(t, "kafka-1:9092,kafka-2:9092", servers)

	acks, err := cm.Get("acks", nil)
	require.NoError(t, err)
	assert.Equal(t, "all", acks)
}
