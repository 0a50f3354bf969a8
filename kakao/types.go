// Package kakao mirrors the Kakao open-builder skill JSON: the inbound
// webhook request and the v2.0 skill response with its output block variants.
package kakao

import "encoding/json"

// SkillRequest is the platform's webhook POST body, trimmed to the fields
// the handler reads.
type SkillRequest struct {
	Action      Action      `json:"action"`
	UserRequest UserRequest `json:"userRequest"`
}

type Action struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Params      map[string]json.RawMessage `json:"params,omitempty"`
	ClientExtra map[string]json.RawMessage `json:"clientExtra,omitempty"`
}

type UserRequest struct {
	Utterance string `json:"utterance"`
	User      User   `json:"user"`
}

type User struct {
	ID         string                 `json:"id"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// SkillResponse is the reply envelope. Version is always "2.0".
type SkillResponse struct {
	Version  string    `json:"version"`
	Template *Template `json:"template,omitempty"`
}

type Template struct {
	Outputs      []Output     `json:"outputs"`
	QuickReplies []QuickReply `json:"quickReplies,omitempty"`
}

// Output carries exactly one block variant.
type Output struct {
	SimpleText   *SimpleText   `json:"simpleText,omitempty"`
	TextCard     *TextCard     `json:"textCard,omitempty"`
	BasicCard    *BasicCard    `json:"basicCard,omitempty"`
	CommerceCard *CommerceCard `json:"commerceCard,omitempty"`
	ListCard     *ListCard     `json:"listCard,omitempty"`
	Carousel     *Carousel     `json:"carousel,omitempty"`
}

type SimpleText struct {
	Text string `json:"text"`
}

type TextCard struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Buttons     []Button `json:"buttons,omitempty"`
}

type BasicCard struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Thumbnail   *Thumbnail `json:"thumbnail,omitempty"`
	Buttons     []Button   `json:"buttons,omitempty"`
}

type CommerceCard struct {
	Description    string      `json:"description"`
	Price          int         `json:"price"`
	Discount       int         `json:"discount,omitempty"`
	DiscountedPrice int        `json:"discountedPrice,omitempty"`
	Currency       string      `json:"currency"`
	Thumbnails     []Thumbnail `json:"thumbnails"`
	Buttons        []Button    `json:"buttons"`
}

type ListCard struct {
	Header  ListItem   `json:"header"`
	Items   []ListItem `json:"items"`
	Buttons []Button   `json:"buttons,omitempty"`
}

type ListItem struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	ImageURL    string                 `json:"imageUrl,omitempty"`
	Action      string                 `json:"action,omitempty"`
	MessageText string                 `json:"messageText,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

type Carousel struct {
	Type  string         `json:"type"`
	Items []CarouselItem `json:"items"`
}

// CarouselItem carries one card of the carousel's declared type.
type CarouselItem struct {
	*BasicCard
	*CommerceCard
}

func (c CarouselItem) MarshalJSON() ([]byte, error) {
	if c.CommerceCard != nil {
		return json.Marshal(c.CommerceCard)
	}
	return json.Marshal(c.BasicCard)
}

type Thumbnail struct {
	ImageURL string `json:"imageUrl"`
}

type Button struct {
	Label       string                 `json:"label"`
	Action      string                 `json:"action"`
	MessageText string                 `json:"messageText,omitempty"`
	WebLinkURL  string                 `json:"webLinkUrl,omitempty"`
	BlockID     string                 `json:"blockId,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

type QuickReply struct {
	Label       string                 `json:"label"`
	Action      string                 `json:"action"`
	MessageText string                 `json:"messageText,omitempty"`
	BlockID     string                 `json:"blockId,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}
