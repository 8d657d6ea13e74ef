package health

import (
	"regexp"
	"time"
)

// Status values, in increasing severity
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

var severity = map[string]int{StatusHealthy: 0, StatusDegraded: 1, StatusUnhealthy: 2}

// Status is the health of one component, optionally made of sub-component statuses.
type Status struct {
	Component   string    `json:"component"`
	Healthy     bool      `json:"healthy"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	SubStatuses []Status  `json:"sub_statuses,omitempty"`
}

func newStatus(component, status, message string) Status {
	return Status{
		Component: component,
		Healthy:   status == StatusHealthy,
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func NewHealthy(component, message string) Status {
	return newStatus(component, StatusHealthy, message)
}

func NewDegraded(component, message string) Status {
	return newStatus(component, StatusDegraded, message)
}

func NewUnhealthy(component, message string) Status {
	return newStatus(component, StatusUnhealthy, message)
}

func (s Status) IsHealthy() bool   { return s.Status == StatusHealthy }
func (s Status) IsDegraded() bool  { return s.Status == StatusDegraded }
func (s Status) IsUnhealthy() bool { return s.Status == StatusUnhealthy }

// Aggregate reports the worst of subs as the status of component. The subs are
// copied into the result.
func Aggregate(component string, subs []Status) Status {
	worst := StatusHealthy
	for _, sub := range subs {
		if severity[sub.Status] > severity[worst] {
			worst = sub.Status
		}
	}

	message := "all sub-components healthy"
	switch worst {
	case StatusDegraded:
		message = "sub-components degraded"
	case StatusUnhealthy:
		message = "sub-components unhealthy"
	}
	agg := newStatus(component, worst, message)
	agg.SubStatuses = append([]Status(nil), subs...)
	return agg
}

// FromError is healthy for a nil err, otherwise unhealthy with a redacted message
func FromError(component string, err error) Status {
	if err == nil {
		return NewHealthy(component, "ok")
	}
	return NewUnhealthy(component, redact(err.Error()))
}

// redactions strip what storage errors tend to leak onto the health endpoint. URLs go
// first because they contain paths and ports.
var redactions = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?:https?|nats|wss?)://\S+`), "[URL]"},
	{regexp.MustCompile(`/[a-zA-Z0-9/_.-]+`), "[PATH]"},
	{regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`), "[IP]"},
	{regexp.MustCompile(`:\d{2,5}\b`), "[PORT]"},
	{regexp.MustCompile(`(?i)(password|token|secret|credential)[^a-zA-Z]*[:=][^,\s}]+`), "[REDACTED]"},
}

func redact(msg string) string {
	for _, r := range redactions {
		msg = r.pattern.ReplaceAllString(msg, r.replacement)
	}
	return msg
}
