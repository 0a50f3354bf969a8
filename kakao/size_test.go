package kakao

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCheckSizeReturnsSerializedLength(t *testing.T) {
	resp := Text("안녕하세요")
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	if n := CheckSize(resp); n != len(data) {
		t.Fatalf("CheckSize = %d, want %d", n, len(data))
	}
}

func TestCheckSizeNeverTruncates(t *testing.T) {
	// Well past the platform cap.
	resp := Text(strings.Repeat("a", MaxResponseBytes+1000))
	n := CheckSize(resp)
	if n <= MaxResponseBytes {
		t.Fatalf("oversized response should still measure past the cap, got %d", n)
	}
	if got := resp.Template.Outputs[0].SimpleText.Text; len(got) != MaxResponseBytes+1000 {
		t.Fatalf("response text was mutated, len = %d", len(got))
	}
}

func TestCarouselItemMarshalsSingleVariant(t *testing.T) {
	out := CommerceCarousel(CommerceCard{
		Description: "스탠다드",
		Price:       70000,
		Currency:    "won",
	})
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"type":"commerceCard"`) {
		t.Fatalf("carousel type missing: %s", s)
	}
	if strings.Contains(s, "basicCard") || strings.Contains(s, "BasicCard") {
		t.Fatalf("empty variant leaked into payload: %s", s)
	}
}
