package kakao

import (
	"encoding/json"
	"log"
)

// MaxResponseBytes is the platform's hard cap on a serialized skill
// response.
const MaxResponseBytes = 30720

const warnRatio = 0.9

// CheckSize measures the serialized response against the platform cap,
// logging a warning above 90% utilization and an error above 100%. The
// response is returned to the platform either way; nothing is truncated.
func CheckSize(resp *SkillResponse) int {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("kakao: response marshal failed: %v", err)
		return 0
	}
	n := len(data)
	switch {
	case n > MaxResponseBytes:
		log.Printf("kakao: response size %d exceeds cap %d", n, MaxResponseBytes)
	case float64(n) > warnRatio*MaxResponseBytes:
		log.Printf("kakao: response size %d above 90%% of cap %d", n, MaxResponseBytes)
	}
	return n
}
