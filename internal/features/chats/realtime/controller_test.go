package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_ChatIDFromTopic(t *testing.T) {
	chatID := uuid.New()

	for _, topic := range []string{
		"/topic/chat/" + chatID.String(),
		"/topic/chat/" + chatID.String() + "/typing",
		"/topic/chat/" + chatID.String() + "/messageRead",
	} {
		parsed, err := chatIDFromTopic(topic)
		assert.NoError(t, err, topic)
		assert.Equal(t, chatID, parsed)
	}
}

func Test_ChatIDFromTopic_RejectsUnknownShapes(t *testing.T) {
	for _, topic := range []string{
		"",
		"/topic/chat",
		"/topic/chat/not-a-uuid",
		"/topic/boards/" + uuid.New().String(),
		"topic/chat/" + uuid.New().String(),
	} {
		_, err := chatIDFromTopic(topic)
		assert.Error(t, err, topic)
	}
}

func Test_DestinationID(t *testing.T) {
	chatID := uuid.New()
	messageID := uuid.New()
	destination := "chat.editMessage/" + chatID.String() + "/" + messageID.String()

	first, err := destinationID(destination, 1)
	assert.NoError(t, err)
	assert.Equal(t, chatID, first)

	second, err := destinationID(destination, 2)
	assert.NoError(t, err)
	assert.Equal(t, messageID, second)
}

func Test_DestinationID_Malformed(t *testing.T) {
	_, err := destinationID("chat.sendMessage/not-a-uuid", 1)
	assert.Error(t, err)

	_, err = destinationID("chat.sendMessage/"+uuid.New().String(), 2)
	assert.Error(t, err)
}
