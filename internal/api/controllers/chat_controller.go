package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// SendMessage runs a chat turn and returns the complete reply in one
// response body. Clients that want incremental delivery use StreamMessage.
func (ch *ChatController) SendMessage(c *gin.Context) {
	if _, ok := currentAccountID(c); !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := ch.chatService.SendMessage(c.Request.Context(), tripID, req, nil)
	if err != nil {
		if reply != nil {
			// The stream died mid-reply. The text that came through still
			// goes to the client, but never dressed up as a success.
			utils.RespondErrorWithData(c, http.StatusBadGateway, err.Error(),
				gin.H{"partial": reply.Reply})
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reply, "Reply generated successfully")
}

// StreamMessage emits the reply as SSE "chunk" events, then a terminal
// "done" event carrying the full reply. A failure after chunks have been
// sent becomes an "error" event on the open stream.
func (ch *ChatController) StreamMessage(c *gin.Context) {
	if _, ok := currentAccountID(c); !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	chunks := make(chan string)
	type outcome struct {
		reply *response_models.ChatReplyResponse
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		reply, err := ch.chatService.SendMessage(c.Request.Context(), tripID, req, chunks)
		done <- outcome{reply: reply, err: err}
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(w io.Writer) bool {
		chunk, open := <-chunks
		if open {
			c.SSEvent("chunk", chunk)
			return true
		}

		result := <-done
		if result.err != nil {
			if result.reply != nil {
				// Partial reply already on the wire; report and stop.
				c.SSEvent("error", gin.H{"message": result.err.Error(), "partial": result.reply.Reply})
				return false
			}
			c.SSEvent("error", gin.H{"message": result.err.Error()})
			return false
		}
		c.SSEvent("done", result.reply)
		return false
	})
}

func (ch *ChatController) PreviewIntent(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	preview, err := ch.chatService.PreviewIntent(c.Request.Context(), accountID, tripID, req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, preview, "Intent parsed successfully")
}

func (ch *ChatController) Apply(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := ch.chatService.Apply(c.Request.Context(), accountID, tripID, req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Changes applied successfully")
}

func (ch *ChatController) History(c *gin.Context) {
	if _, ok := currentAccountID(c); !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	utils.RespondSuccess(c, ch.chatService.History(tripID), "History fetched successfully")
}
