package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
)

type stubChatService struct {
	reply   *response_models.ChatReplyResponse
	sendErr error
}

func (s *stubChatService) SendMessage(_ context.Context, _ uuid.UUID, _ request_models.ChatRequest, chunks chan<- string) (*response_models.ChatReplyResponse, error) {
	if chunks != nil {
		close(chunks)
	}
	return s.reply, s.sendErr
}

func (s *stubChatService) PreviewIntent(_ context.Context, _, _ uuid.UUID, _ string) (*response_models.IntentPreviewResponse, error) {
	return nil, errors.New("not used")
}

func (s *stubChatService) Apply(_ context.Context, _, _ uuid.UUID, _ string) (*response_models.ApplyResultResponse, error) {
	return nil, errors.New("not used")
}

func (s *stubChatService) History(_ uuid.UUID) []request_models.ChatTurn {
	return nil
}

func chatRouter(svc *stubChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
	})
	controller := NewChatController(svc)
	r.POST("/trips/:id/chat", controller.SendMessage)
	return r
}

func postChat(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.New().String()+"/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSendMessageReturnsReply(t *testing.T) {
	svc := &stubChatService{reply: &response_models.ChatReplyResponse{Reply: "Day 2 looks packed."}}
	rec := postChat(t, chatRouter(svc), `{"message":"how is day 2?"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Day 2 looks packed.", data["reply"])
}

func TestSendMessagePartialReplyIsNotSuccess(t *testing.T) {
	svc := &stubChatService{
		reply:   &response_models.ChatReplyResponse{Reply: "Here is the first "},
		sendErr: errors.New("connection reset"),
	}
	rec := postChat(t, chatRouter(svc), `{"message":"plan my trip"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "connection reset", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Here is the first ", data["partial"])
}

func TestSendMessageErrorWithoutReply(t *testing.T) {
	svc := &stubChatService{sendErr: errors.New("provider exploded")}
	rec := postChat(t, chatRouter(svc), `{"message":"hello"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
}
