package kakao

// Builder helpers for the reply shapes the chatbot produces.

func NewResponse(outputs ...Output) *SkillResponse {
	return &SkillResponse{
		Version:  "2.0",
		Template: &Template{Outputs: outputs},
	}
}

func (r *SkillResponse) WithQuickReplies(qrs ...QuickReply) *SkillResponse {
	r.Template.QuickReplies = append(r.Template.QuickReplies, qrs...)
	return r
}

// Text builds a single simpleText reply.
func Text(text string) *SkillResponse {
	return NewResponse(Output{SimpleText: &SimpleText{Text: text}})
}

// MessageReply is a quick-reply chip that resends its label (or an explicit
// message) as an utterance, optionally with a structured extra payload.
func MessageReply(label, messageText string, extra map[string]interface{}) QuickReply {
	if messageText == "" {
		messageText = label
	}
	return QuickReply{
		Label:       label,
		Action:      "message",
		MessageText: messageText,
		Extra:       extra,
	}
}

// MessageButton is a card button that sends a message utterance carrying a
// structured extra payload.
func MessageButton(label, messageText string, extra map[string]interface{}) Button {
	if messageText == "" {
		messageText = label
	}
	return Button{
		Label:       label,
		Action:      "message",
		MessageText: messageText,
		Extra:       extra,
	}
}

// CommerceCarousel wraps commerce cards into a carousel output.
func CommerceCarousel(cards ...CommerceCard) Output {
	items := make([]CarouselItem, 0, len(cards))
	for i := range cards {
		items = append(items, CarouselItem{CommerceCard: &cards[i]})
	}
	return Output{Carousel: &Carousel{Type: "commerceCard", Items: items}}
}
