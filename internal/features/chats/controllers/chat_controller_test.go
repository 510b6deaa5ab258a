package chats_controllers

import (
	"net/http"
	"os"
	"sync"
	"testing"

	chats_dto "itconnect-backend/internal/features/chats/dto"
	chats_services "itconnect-backend/internal/features/chats/services"
	users_dto "itconnect-backend/internal/features/users/dto"
	users_enums "itconnect-backend/internal/features/users/enums"
	users_models "itconnect-backend/internal/features/users/models"
	users_services "itconnect-backend/internal/features/users/services"
	users_testing "itconnect-backend/internal/features/users/testing"
	workspaces_controllers "itconnect-backend/internal/features/workspaces/controllers"
	workspaces_testing "itconnect-backend/internal/features/workspaces/testing"
	test_utils "itconnect-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// recordingPublisher captures broadcasts instead of pushing them over
// websockets.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	topic   string
	payload any
}

func (p *recordingPublisher) Publish(topic string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, publishedEvent{topic, payload})
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = nil
}

func (p *recordingPublisher) last() *publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.events) == 0 {
		return nil
	}

	return &p.events[len(p.events)-1]
}

var publisher = &recordingPublisher{}

func TestMain(m *testing.M) {
	chats_services.SetupDependencies()
	chats_services.GetChatService().SetPublisher(publisher)
	os.Exit(m.Run())
}

func createChatTestRouter() *gin.Engine {
	return workspaces_testing.CreateTestRouter(
		workspaces_controllers.GetWorkspaceController(),
		workspaces_controllers.GetMembershipController(),
		GetChatController(),
	)
}

func createTestChat(
	t *testing.T,
	router *gin.Engine,
	workspaceID uuid.UUID,
	name string,
	creator *users_dto.SignInResponseDTO,
) *chats_dto.ChatResponseDTO {
	var chat chats_dto.ChatResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspaceID.String()+"/chats",
		"Bearer "+creator.Token,
		chats_dto.CreateChatRequestDTO{Name: name},
		http.StatusCreated,
		&chat,
	)

	return &chat
}

func sendTestMessage(
	t *testing.T,
	router *gin.Engine,
	workspaceID uuid.UUID,
	chatID uuid.UUID,
	content string,
	sender *users_dto.SignInResponseDTO,
) *chats_dto.ChatMessageResponseDTO {
	var message chats_dto.ChatMessageResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspaceID.String()+"/chats/"+chatID.String()+"/messages",
		"Bearer "+sender.Token,
		chats_dto.SendMessageRequestDTO{Content: content},
		http.StatusOK,
		&message,
	)

	return &message
}

func getModelUser(t *testing.T, signIn *users_dto.SignInResponseDTO) *users_models.User {
	user, err := users_services.GetUserService().GetUserByID(signIn.UserID)
	assert.NoError(t, err)
	return user
}

func Test_CreateChat_BlankNameRejected(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Chats", owner, router)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/chats",
		"Bearer "+owner.Token,
		map[string]string{"name": "   "},
		http.StatusBadRequest,
	)
}

func Test_CreateChat_StrangerGetsNotFound(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Private chats", owner, router)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/chats",
		"Bearer "+stranger.Token,
		chats_dto.CreateChatRequestDTO{Name: "Sneaky"},
		http.StatusNotFound,
	)
}

func Test_SendMessage_BroadcastsAndBumpsChat(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Talky", owner, router)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		member.UserID,
		users_enums.WorkspaceRoleViewer,
		owner.Token,
		router,
	)

	chat := createTestChat(t, router, workspace.ID, "General", owner)

	publisher.reset()

	// even viewers may talk
	message := sendTestMessage(t, router, workspace.ID, chat.ID, "hello there", member)
	assert.Equal(t, member.UserID, message.SenderID)
	assert.Equal(t, member.Username, message.SenderName)
	assert.False(t, message.IsEdited)
	assert.Nil(t, message.EditedAt)

	event := publisher.last()
	assert.NotNil(t, event)
	assert.Equal(t, "/topic/chat/"+chat.ID.String(), event.topic)

	chatEvent, ok := event.payload.(*chats_dto.ChatEventDTO)
	assert.True(t, ok)
	assert.Equal(t, chats_dto.EventMessageSent, chatEvent.Type)
	assert.Equal(t, message.ID, chatEvent.Message.ID)

	// the chat list now carries the message as last message
	var chatList []*chats_dto.ChatResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/chats",
		"Bearer "+owner.Token,
		http.StatusOK,
		&chatList,
	)
	assert.Len(t, chatList, 1)
	assert.NotNil(t, chatList[0].LastMessage)
	assert.Equal(t, "hello there", chatList[0].LastMessage.Content)
}

func Test_SendMessage_EmptyContentRejectedUnlessAttachment(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Strict", owner, router)
	chat := createTestChat(t, router, workspace.ID, "Rules", owner)

	messagesURL := "/api/v1/workspaces/" + workspace.ID.String() +
		"/chats/" + chat.ID.String() + "/messages"

	test_utils.MakePostRequest(
		t,
		router,
		messagesURL,
		"Bearer "+owner.Token,
		chats_dto.SendMessageRequestDTO{Content: "   "},
		http.StatusBadRequest,
	)

	fileURL := "http://files.local/itconnect-files/chat/doc.pdf"
	fileName := "doc.pdf"
	test_utils.MakePostRequest(
		t,
		router,
		messagesURL,
		"Bearer "+owner.Token,
		chats_dto.SendMessageRequestDTO{FileURL: &fileURL, FileName: &fileName},
		http.StatusOK,
	)
}

func Test_SendMessage_StrangerForbidden(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Members only", owner, router)
	chat := createTestChat(t, router, workspace.ID, "Internal", owner)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/chats/"+chat.ID.String()+"/messages",
		"Bearer "+stranger.Token,
		chats_dto.SendMessageRequestDTO{Content: "let me in"},
		http.StatusForbidden,
	)
}

func Test_GetMessages_AscendingPages(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("History", owner, router)
	chat := createTestChat(t, router, workspace.ID, "Log", owner)

	sendTestMessage(t, router, workspace.ID, chat.ID, "first", owner)
	sendTestMessage(t, router, workspace.ID, chat.ID, "second", owner)
	sendTestMessage(t, router, workspace.ID, chat.ID, "third", owner)

	messagesURL := "/api/v1/workspaces/" + workspace.ID.String() +
		"/chats/" + chat.ID.String() + "/messages"

	var page chats_dto.MessagePageResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		messagesURL+"?page=0&size=2",
		"Bearer "+owner.Token,
		http.StatusOK,
		&page,
	)

	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, "first", page.Content[0].Content)
	assert.Equal(t, "second", page.Content[1].Content)

	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		messagesURL+"?page=1&size=2",
		"Bearer "+owner.Token,
		http.StatusOK,
		&page,
	)

	assert.Len(t, page.Content, 1)
	assert.Equal(t, "third", page.Content[0].Content)
}

func Test_GetMessages_StrangerGetsEmptyPage(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Opaque history", owner, router)
	chat := createTestChat(t, router, workspace.ID, "Quiet", owner)
	sendTestMessage(t, router, workspace.ID, chat.ID, "secret", owner)

	var page chats_dto.MessagePageResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/chats/"+chat.ID.String()+"/messages",
		"Bearer "+stranger.Token,
		http.StatusOK,
		&page,
	)

	assert.Empty(t, page.Content)
	assert.Equal(t, int64(0), page.TotalElements)
}

func Test_MarkMessageAsRead_Idempotent(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Receipts", owner, router)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		member.UserID,
		users_enums.WorkspaceRoleMember,
		owner.Token,
		router,
	)

	chat := createTestChat(t, router, workspace.ID, "Read me", owner)
	message := sendTestMessage(t, router, workspace.ID, chat.ID, "seen?", owner)

	readURL := "/api/v1/workspaces/" + workspace.ID.String() +
		"/chats/" + chat.ID.String() +
		"/messages/" + message.ID.String() + "/read"

	test_utils.MakePostRequest(t, router, readURL, "Bearer "+member.Token, nil, http.StatusOK)
	test_utils.MakePostRequest(t, router, readURL, "Bearer "+member.Token, nil, http.StatusOK)

	var page chats_dto.MessagePageResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/chats/"+chat.ID.String()+"/messages",
		"Bearer "+owner.Token,
		http.StatusOK,
		&page,
	)

	assert.Len(t, page.Content, 1)
	assert.Equal(t, []uuid.UUID{member.UserID}, page.Content[0].ReadByUserIDs)
}

func Test_EditMessage_SenderOnly(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Edits", owner, router)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		member.UserID,
		users_enums.WorkspaceRoleMember,
		owner.Token,
		router,
	)

	chat := createTestChat(t, router, workspace.ID, "Mutable", owner)
	message := sendTestMessage(t, router, workspace.ID, chat.ID, "typo", owner)

	chatService := chats_services.GetChatService()
	ownerUser := getModelUser(t, owner)
	memberUser := getModelUser(t, member)

	_, err := chatService.EditMessage(chat.ID, message.ID, "fixed", memberUser)
	assert.ErrorIs(t, err, chats_services.ErrAccessDenied)

	_, err = chatService.EditMessage(chat.ID, message.ID, "  ", ownerUser)
	assert.ErrorIs(t, err, chats_services.ErrEmptyContent)

	publisher.reset()

	edited, err := chatService.EditMessage(chat.ID, message.ID, "fixed", ownerUser)
	assert.NoError(t, err)
	assert.Equal(t, "fixed", edited.Content)
	assert.True(t, edited.IsEdited)
	assert.NotNil(t, edited.EditedAt)

	event := publisher.last()
	assert.NotNil(t, event)
	chatEvent := event.payload.(*chats_dto.ChatEventDTO)
	assert.Equal(t, chats_dto.EventMessageEdited, chatEvent.Type)
}

func Test_DeleteMessage_BroadcastsIDOnly(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Retractions", owner, router)
	chat := createTestChat(t, router, workspace.ID, "Oops", owner)
	message := sendTestMessage(t, router, workspace.ID, chat.ID, "delete me", owner)

	chatService := chats_services.GetChatService()
	ownerUser := getModelUser(t, owner)

	publisher.reset()

	assert.NoError(t, chatService.DeleteMessage(chat.ID, message.ID, ownerUser))

	event := publisher.last()
	assert.NotNil(t, event)
	chatEvent := event.payload.(*chats_dto.ChatEventDTO)
	assert.Equal(t, chats_dto.EventMessageDeleted, chatEvent.Type)
	assert.Nil(t, chatEvent.Message)
	assert.Equal(t, message.ID, *chatEvent.MessageID)

	// the row is gone, a second delete reports not found
	assert.ErrorIs(
		t,
		chatService.DeleteMessage(chat.ID, message.ID, ownerUser),
		chats_services.ErrNotFound,
	)
}

func Test_NotifyTyping_BroadcastsStartAndStop(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Indicators", owner, router)
	chat := createTestChat(t, router, workspace.ID, "Live", owner)

	chatService := chats_services.GetChatService()
	ownerUser := getModelUser(t, owner)
	strangerUser := getModelUser(t, stranger)

	publisher.reset()

	assert.NoError(t, chatService.NotifyTyping(chat.ID, true, ownerUser))

	event := publisher.last()
	assert.NotNil(t, event)
	assert.Equal(t, "/topic/chat/"+chat.ID.String()+"/typing", event.topic)

	typingEvent, ok := event.payload.(*chats_dto.TypingEventDTO)
	assert.True(t, ok)
	assert.Equal(t, owner.UserID, typingEvent.UserID)
	assert.Equal(t, owner.Username, typingEvent.Username)
	assert.True(t, typingEvent.IsTyping)

	assert.NoError(t, chatService.NotifyTyping(chat.ID, false, ownerUser))

	typingEvent = publisher.last().payload.(*chats_dto.TypingEventDTO)
	assert.False(t, typingEvent.IsTyping)

	publisher.reset()

	assert.ErrorIs(
		t,
		chatService.NotifyTyping(chat.ID, true, strangerUser),
		chats_services.ErrAccessDenied,
	)
	assert.Nil(t, publisher.last())
}

func Test_ReplyCarriesParentPreview(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Threads", owner, router)
	chat := createTestChat(t, router, workspace.ID, "Replies", owner)
	parent := sendTestMessage(t, router, workspace.ID, chat.ID, "original question", owner)

	var reply chats_dto.ChatMessageResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/chats/"+chat.ID.String()+"/messages",
		"Bearer "+owner.Token,
		chats_dto.SendMessageRequestDTO{Content: "an answer", ParentMessageID: &parent.ID},
		http.StatusOK,
		&reply,
	)

	assert.NotNil(t, reply.ParentMessage)
	assert.Equal(t, parent.ID, reply.ParentMessage.ID)
	assert.Equal(t, owner.Username, reply.ParentMessage.SenderName)
	assert.Equal(t, "original question", reply.ParentMessage.ContentPreview)
}

func Test_UpdateChat_OwnerOrCreatorOnly(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()
	creator := users_testing.CreateTestUser()
	other := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Renames", owner, router)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		creator.UserID,
		users_enums.WorkspaceRoleMember,
		owner.Token,
		router,
	)
	workspaces_testing.AddMemberToWorkspace(
		workspace.ID,
		other.UserID,
		users_enums.WorkspaceRoleMember,
		owner.Token,
		router,
	)

	chat := createTestChat(t, router, workspace.ID, "Old name", creator)
	chatURL := "/api/v1/workspaces/" + workspace.ID.String() + "/chats/" + chat.ID.String()

	newName := "New name"
	request := chats_dto.UpdateChatRequestDTO{Name: &newName}

	test_utils.MakePutRequest(
		t,
		router,
		chatURL,
		"Bearer "+other.Token,
		request,
		http.StatusForbidden,
	)
	test_utils.MakePutRequest(
		t,
		router,
		chatURL,
		"Bearer "+creator.Token,
		request,
		http.StatusOK,
	)

	ownerName := "Owner name"
	test_utils.MakePutRequest(
		t,
		router,
		chatURL,
		"Bearer "+owner.Token,
		chats_dto.UpdateChatRequestDTO{Name: &ownerName},
		http.StatusOK,
	)
}

func Test_DeleteChat_RemovesIt(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Teardown", owner, router)
	chat := createTestChat(t, router, workspace.ID, "Short lived", owner)
	sendTestMessage(t, router, workspace.ID, chat.ID, "goodbye", owner)

	chatURL := "/api/v1/workspaces/" + workspace.ID.String() + "/chats/" + chat.ID.String()

	test_utils.MakeDeleteRequest(t, router, chatURL, "Bearer "+owner.Token, http.StatusOK)
	test_utils.MakeGetRequest(t, router, chatURL, "Bearer "+owner.Token, http.StatusNotFound)
}

func Test_GetAllUserChats_SpansWorkspaces(t *testing.T) {
	router := createChatTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	ownWorkspace := workspaces_testing.CreateTestWorkspace("Member's own", member, router)
	otherWorkspace := workspaces_testing.CreateTestWorkspace("Joined", owner, router)
	workspaces_testing.AddMemberToWorkspace(
		otherWorkspace.ID,
		member.UserID,
		users_enums.WorkspaceRoleMember,
		owner.Token,
		router,
	)

	ownChat := createTestChat(t, router, ownWorkspace.ID, "Mine", member)
	joinedChat := createTestChat(t, router, otherWorkspace.ID, "Shared", owner)

	var chats []*chats_dto.ChatResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/chats/all",
		"Bearer "+member.Token,
		http.StatusOK,
		&chats,
	)

	ids := make(map[uuid.UUID]bool)
	for _, chat := range chats {
		ids[chat.ID] = true
	}

	assert.True(t, ids[ownChat.ID])
	assert.True(t, ids[joinedChat.ID])
}
