package server

import (
	"github.com/gin-gonic/gin"
)

// Event is the echo of the inbound request returned with every status.
type Event struct {
	HTTPMethod            string            `json:"httpMethod"`
	Path                  string            `json:"path"`
	Headers               map[string]string `json:"headers"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Body                  *string           `json:"body"`
	RequestContext        RequestContext    `json:"requestContext"`
}

type RequestContext struct {
	RequestID string   `json:"requestId"`
	Identity  Identity `json:"identity"`
}

type Identity struct {
	SourceIP  string `json:"sourceIp"`
	UserAgent string `json:"userAgent"`
}

// NewEvent captures the request as received. Repeated headers and query
// parameters keep their first value.
func NewEvent(c *gin.Context, body []byte) Event {
	ev := Event{
		HTTPMethod: c.Request.Method,
		Path:       c.Request.URL.Path,
		Headers:    make(map[string]string, len(c.Request.Header)),
		RequestContext: RequestContext{
			RequestID: c.GetString(requestIDKey),
			Identity: Identity{
				SourceIP:  c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
			},
		},
	}
	for k, v := range c.Request.Header {
		if len(v) > 0 {
			ev.Headers[k] = v[0]
		}
	}
	if q := c.Request.URL.Query(); len(q) > 0 {
		ev.QueryStringParameters = make(map[string]string, len(q))
		for k, v := range q {
			ev.QueryStringParameters[k] = v[0]
		}
	}
	if len(body) > 0 {
		s := string(body)
		ev.Body = &s
	}
	return ev
}
