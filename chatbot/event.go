package chatbot

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"motel-backoffice/kakao"
	"motel-backoffice/utils"
)

// Event is the tagged union an inbound skill request parses into. Every
// request resolves to exactly one variant; anything unrecognized becomes a
// PlainUtterance and falls through to keyword routing.
type Event interface{ isEvent() }

type RoomSelected struct {
	RoomID     uint
	CheckIn    time.Time
	CheckOut   time.Time
	TotalPrice int
}

type SaturdayTypeChosen struct {
	StayType string // "대실" or "숙박"
}

type ReservationHistoryItemChosen struct {
	ReservationID uint
}

type DateRangeChosen struct {
	CheckIn  time.Time
	CheckOut time.Time
}

type DateChosen struct {
	Date time.Time
}

type PlainUtterance struct {
	Text string
}

func (RoomSelected) isEvent()                 {}
func (SaturdayTypeChosen) isEvent()           {}
func (ReservationHistoryItemChosen) isEvent() {}
func (DateRangeChosen) isEvent()              {}
func (DateChosen) isEvent()                   {}
func (PlainUtterance) isEvent()               {}

// extra payload discriminators set on the buttons this handler emits.
const (
	extraTypeRoom     = "room_selected"
	extraTypeSaturday = "saturday_type"
	extraTypeHistory  = "history_item"
)

func rawString(m map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := m[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	// Date-picker params arrive as {"value": "..."} objects.
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Value != "" {
		return obj.Value, true
	}
	return "", false
}

func rawUint(m map[string]json.RawMessage, key string) (uint, bool) {
	raw, ok := m[key]
	if !ok {
		return 0, false
	}
	var n uint
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	if s, ok := rawString(m, key); ok {
		if v, err := strconv.ParseUint(s, 10, 32); err == nil {
			return uint(v), true
		}
	}
	return 0, false
}

func rawInt(m map[string]json.RawMessage, key string) (int, bool) {
	raw, ok := m[key]
	if !ok {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	if s, ok := rawString(m, key); ok {
		if v, err := strconv.Atoi(s); err == nil {
			return v, true
		}
	}
	return 0, false
}

func rawDate(m map[string]json.RawMessage, key string) (time.Time, bool) {
	s, ok := rawString(m, key)
	if !ok {
		return time.Time{}, false
	}
	t, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseEvent inspects the request once, at the handler boundary: first the
// button payload (clientExtra), then date-picker params, then the raw
// utterance.
func ParseEvent(req *kakao.SkillRequest) Event {
	if extra := req.Action.ClientExtra; len(extra) > 0 {
		kind, _ := rawString(extra, "type")
		switch kind {
		case extraTypeSaturday:
			if st, ok := rawString(extra, "stayType"); ok {
				return SaturdayTypeChosen{StayType: st}
			}
		case extraTypeHistory:
			if id, ok := rawUint(extra, "reservationId"); ok {
				return ReservationHistoryItemChosen{ReservationID: id}
			}
		}

		// Room-selection payloads are also accepted without the
		// discriminator, matching buttons minted by older blocks.
		roomID, hasRoom := rawUint(extra, "roomId")
		checkIn, hasCI := rawDate(extra, "checkIn")
		checkOut, hasCO := rawDate(extra, "checkOut")
		if (kind == extraTypeRoom || kind == "") && hasRoom && hasCI && hasCO {
			total, _ := rawInt(extra, "totalPrice")
			return RoomSelected{
				RoomID:     roomID,
				CheckIn:    checkIn,
				CheckOut:   checkOut,
				TotalPrice: total,
			}
		}
	}

	if params := req.Action.Params; len(params) > 0 {
		ci, hasCI := rawDate(params, "checkin")
		co, hasCO := rawDate(params, "checkout")
		if hasCI && hasCO {
			return DateRangeChosen{CheckIn: ci, CheckOut: co}
		}
		if d, ok := rawDate(params, "date"); ok {
			return DateChosen{Date: d}
		}
	}

	return PlainUtterance{Text: strings.TrimSpace(req.UserRequest.Utterance)}
}
