package sources

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
)

// ParseUsers reads a Rootly-style JSON:API user document:
//
//	{"data": [{"id": "...", "attributes": {"email": ..., "full_name": ..., "time_zone": ...}}]}
//
// Users without an email are skipped; an engineer without a timezone
// defaults to UTC so a sparse directory never blocks a run.
func ParseUsers(raw []byte) ([]Engineer, error) {
	doc := gjson.ParseBytes(raw)
	data := doc.Get("data")
	if !data.IsArray() {
		return nil, errors.Wrap(ErrMalformedPayload, "users: data is not an array")
	}

	var engineers []Engineer
	data.ForEach(func(_, user gjson.Result) bool {
		attrs := user.Get("attributes")
		email := strings.TrimSpace(attrs.Get("email").String())
		if email == "" {
			return true
		}
		tz := attrs.Get("time_zone").String()
		if tz == "" {
			tz = "UTC"
		}
		engineers = append(engineers, Engineer{
			Email:    email,
			Name:     attrs.Get("full_name").String(),
			Timezone: tz,
		})
		return true
	})
	return engineers, nil
}

// ParseIncidents reads a Rootly-style JSON:API incident document and
// returns incident events attributed to the responding engineer,
// filtered to the analysis period.
//
// Expected attribute fields per incident: started_at (start),
// acknowledged_at, resolved_at, severity.data.attributes.severity,
// user.data.attributes.email (assigned responder), escalated,
// responders (count), postmortem_published, status_updates.
func ParseIncidents(raw []byte, periodStart, periodEnd time.Time) ([]model.Event, error) {
	doc := gjson.ParseBytes(raw)
	data := doc.Get("data")
	if !data.IsArray() {
		return nil, errors.Wrap(ErrMalformedPayload, "incidents: data is not an array")
	}

	var events []model.Event
	var parseErr error
	data.ForEach(func(idx, inc gjson.Result) bool {
		attrs := inc.Get("attributes")

		email := strings.TrimSpace(attrs.Get("user.data.attributes.email").String())
		if email == "" {
			// Unattributed incidents cannot feed a per-engineer score.
			return true
		}

		startedAt, err := parseTimestamp(attrs.Get("started_at"))
		if err != nil {
			parseErr = errors.Wrapf(err, "incidents: data.%d.attributes.started_at", idx.Int())
			return false
		}
		if startedAt.Before(periodStart) || startedAt.After(periodEnd) {
			return true
		}

		details := &model.IncidentDetails{
			Severity:   strings.ToLower(attrs.Get("severity.data.attributes.severity").String()),
			Escalated:  attrs.Get("escalated").Bool(),
			Responders: int(attrs.Get("responders").Int()),
			Postmortem: attrs.Get("postmortem_published").Bool(),
		}
		if ack := attrs.Get("acknowledged_at"); ack.Exists() && ack.String() != "" {
			t, err := parseTimestamp(ack)
			if err != nil {
				parseErr = errors.Wrapf(err, "incidents: data.%d.attributes.acknowledged_at", idx.Int())
				return false
			}
			details.AcknowledgedAt = &t
		}
		if res := attrs.Get("resolved_at"); res.Exists() && res.String() != "" {
			t, err := parseTimestamp(res)
			if err != nil {
				parseErr = errors.Wrapf(err, "incidents: data.%d.attributes.resolved_at", idx.Int())
				return false
			}
			details.ResolvedAt = &t
		}
		attrs.Get("status_updates").ForEach(func(_, update gjson.Result) bool {
			details.Updates = append(details.Updates, update.String())
			return true
		})

		events = append(events, model.Event{
			ID:         incidentEventID(inc),
			EngineerID: email,
			Kind:       model.KindIncident,
			Timestamp:  startedAt,
			Incident:   details,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return events, nil
}

func incidentEventID(inc gjson.Result) string {
	if id := inc.Get("id").String(); id != "" {
		return "incident-" + id
	}
	return fmt.Sprintf("incident-%s", inc.Get("attributes.started_at").String())
}

// parseTimestamp accepts RFC3339 strings or epoch seconds (number or
// numeric string, fractional seconds allowed). Anything else is
// ErrBadTimestamp; the engine never guesses at time data.
func parseTimestamp(v gjson.Result) (time.Time, error) {
	switch v.Type {
	case gjson.Number:
		return epochToTime(v.Float()), nil
	case gjson.String:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return time.Time{}, errors.Wrap(ErrBadTimestamp, "empty")
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		var f float64
		if _, err := fmt.Sscanf(s, "%f", &f); err == nil {
			return epochToTime(f), nil
		}
		return time.Time{}, errors.Wrapf(ErrBadTimestamp, "%q", s)
	default:
		return time.Time{}, errors.Wrapf(ErrBadTimestamp, "%s", v.Raw)
	}
}

func epochToTime(f float64) time.Time {
	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}
