package sources

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
)

// ParseSlack reads the cached Slack activity payload:
//
//	{"users": {"alice@example.com": {
//	    "messages": [{"ts": "1723651200.000200", "channel_id": "C123",
//	                  "text": ..., "thread_ts": "..."}],
//	    "response_pattern_score": 7.5
//	}}}
//
// Message "ts" values are Slack epoch strings; RFC3339 is accepted
// too. The second return maps engineers to their pre-scored response
// pattern where present.
func ParseSlack(raw []byte, periodStart, periodEnd time.Time) ([]model.Event, map[string]float64, error) {
	doc := gjson.ParseBytes(raw)
	users := doc.Get("users")
	if !users.Exists() {
		return nil, nil, errors.Wrap(ErrMalformedPayload, "slack: missing users object")
	}

	var events []model.Event
	patterns := make(map[string]float64)
	var parseErr error

	users.ForEach(func(email, activity gjson.Result) bool {
		id := email.String()

		if score := activity.Get("response_pattern_score"); score.Exists() {
			patterns[id] = score.Float()
		}

		activity.Get("messages").ForEach(func(idx, msg gjson.Result) bool {
			ts, err := parseTimestamp(msg.Get("ts"))
			if err != nil {
				parseErr = errors.Wrapf(err, "slack: %s messages.%d.ts", id, idx.Int())
				return false
			}
			if ts.Before(periodStart) || ts.After(periodEnd) {
				return true
			}
			events = append(events, model.Event{
				ID:         fmt.Sprintf("message-%s-%s", msg.Get("channel_id").String(), msg.Get("ts").String()),
				EngineerID: id,
				Kind:       model.KindMessage,
				Timestamp:  ts,
				Message: &model.MessageDetails{
					ChannelID: msg.Get("channel_id").String(),
					InThread:  msg.Get("thread_ts").Exists() && msg.Get("thread_ts").String() != "",
					Text:      msg.Get("text").String(),
				},
			})
			return true
		})
		return parseErr == nil
	})

	if parseErr != nil {
		return nil, nil, parseErr
	}
	return events, patterns, nil
}
