package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"motel-backoffice/chatbot"
	"motel-backoffice/kakao"
	"motel-backoffice/models"
	"motel-backoffice/repository"
)

// SkillController is the inbound webhook the chat platform calls.
type SkillController struct {
	handler *chatbot.Handler
	store   repository.Store
}

func NewSkillController(handler *chatbot.Handler, store repository.Store) *SkillController {
	return &SkillController{handler: handler, store: store}
}

// POST /api/kakao/skill — always answers 200 with a well-formed skill
// response; malformed bodies resolve to the greeting reply.
func (sc *SkillController) Handle(c *gin.Context) {
	var req kakao.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("skill: malformed request body: %v", err)
		req = kakao.SkillRequest{}
	}

	resp := sc.handler.Handle(&req)
	kakao.CheckSize(resp)

	sc.logHistory(&req, resp)

	c.JSON(http.StatusOK, resp)
}

// logHistory records the exchange best-effort; failures never affect the
// reply.
func (sc *SkillController) logHistory(req *kakao.SkillRequest, resp *kakao.SkillResponse) {
	userID := req.UserRequest.User.ID
	if userID == "" {
		return
	}
	h := &models.ChatHistory{
		KakaoUserID: userID,
		Utterance:   req.UserRequest.Utterance,
		Reply:       replySummary(resp),
	}
	if customer, err := sc.store.FindCustomerByKakaoID(userID); err == nil {
		h.CustomerID = &customer.ID
	}
	if err := sc.store.AddChatHistory(h); err != nil {
		log.Printf("skill: chat history write failed: %v", err)
	}
}

func replySummary(resp *kakao.SkillResponse) string {
	if resp == nil || resp.Template == nil || len(resp.Template.Outputs) == 0 {
		return ""
	}
	out := resp.Template.Outputs[0]
	switch {
	case out.SimpleText != nil:
		return out.SimpleText.Text
	case out.TextCard != nil:
		return out.TextCard.Title
	case out.ListCard != nil:
		return out.ListCard.Header.Title
	case out.Carousel != nil:
		return "객실 목록"
	default:
		return ""
	}
}
