package scoring

import (
	"math"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/sentiment"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/timeclass"
)

// slackScorer maps chat messages onto the three dimensions. Message
// pacing and tone feed exhaustion, withdrawal from group conversation
// feeds depersonalization, and healthy engagement feeds
// accomplishment.
type slackScorer struct {
	cls      *timeclass.Classifier
	analyzer *sentiment.Analyzer
}

func (s slackScorer) score(messages []model.Event, win *model.EngineerWindow) map[model.Dimension]model.SubScore {
	messages = withMessageDetails(messages)
	n := len(messages)
	if n == 0 {
		return nil
	}

	total := float64(n)
	perDay := total / win.Days()

	var afterHours, weekend, inThread, direct int
	var textRunes int
	channels := make(map[string]bool)
	texts := make([]string, 0, n)
	for _, e := range messages {
		d := e.Message
		if s.cls.AfterHours(e.Timestamp) {
			afterHours++
		}
		if s.cls.Weekend(e.Timestamp) {
			weekend++
		}
		if d.InThread {
			inThread++
		}
		if d.DirectMessage() {
			direct++
		}
		if d.ChannelID != "" {
			channels[d.ChannelID] = true
		}
		textRunes += len([]rune(d.Text))
		texts = append(texts, d.Text)
	}

	tone := s.analyzer.Summarize(texts)
	threadRatio := float64(inThread) / total
	out := make(map[model.Dimension]model.SubScore, 3)

	var ee metricSet
	ee.add("message_volume", stepAbove(perDay, []band{{30, 10}, {20, 7}, {10, 4}}, 1))
	ee.add("after_hours", float64(afterHours)/total*25)
	ee.add("weekend", float64(weekend)/total*50)
	ee.add("sentiment_negativity", (-tone.Mean+1)*5)
	ee.add("stress_keywords", tone.StressRatio*50)
	ee.add("sentiment_volatility", tone.Volatility*10)
	if sub, ok := ee.subScore(model.SourceSlack); ok {
		out[model.DimExhaustion] = sub
	}

	var dp metricSet
	dp.add("thread_withdrawal", stepBelow(threadRatio, []band{{0.1, 8}, {0.3, 5}, {0.5, 2}}, 0))
	dp.add("dm_ratio", float64(direct)/total*20)
	dp.add("channel_diversity", stepAbove(float64(len(channels)), []band{{15, 8}, {10, 5}, {5, 2}}, 0))
	dp.add("message_brevity", stepBelow(float64(textRunes)/total, []band{{15, 8}, {30, 4}, {50, 1}}, 0))
	dp.add("negative_sentiment", tone.NegativeRatio*25)
	if sub, ok := dp.subScore(model.SourceSlack); ok {
		out[model.DimDepersonalization] = sub
	}

	var pa metricSet
	if win.ResponsePatternScore != nil {
		pa.add("response_pattern", *win.ResponsePatternScore)
	}
	var activity float64
	switch {
	case perDay >= 5 && perDay <= 15:
		activity = 8
	case perDay >= 3 && perDay <= 20:
		activity = 6
	case perDay > 0:
		activity = 3
	}
	pa.add("activity_level", activity)
	pa.add("thread_participation", stepAbove(threadRatio, []band{{0.5, 8}, {0.3, 6}, {0.1, 3}}, 1))
	pa.add("presence", math.Min(8, perDay*2))
	pa.add("positive_sentiment", (tone.Mean+1)*5)
	if sub, ok := pa.subScore(model.SourceSlack); ok {
		out[model.DimAccomplishment] = sub
	}

	return out
}

func withMessageDetails(events []model.Event) []model.Event {
	out := events[:0:0]
	for _, e := range events {
		if e.Message != nil {
			out = append(out, e)
		}
	}
	return out
}
