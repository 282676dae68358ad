package events

import (
	"encoding/json"
	"time"
)

// CostCreatedMessage is a lightweight event carrying only the record id and
// its report bucket; consumers fetch the full record if they need it.
type CostCreatedMessage struct {
	ID        int64     `json:"id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCostCreatedMessage(id int64, year, month int) *CostCreatedMessage {
	return &CostCreatedMessage{
		ID:        id,
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *CostCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CostCreatedMessageFromJSON(data []byte) (*CostCreatedMessage, error) {
	var msg CostCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
