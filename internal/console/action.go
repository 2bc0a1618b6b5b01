package console

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/netip"

	"github.com/go-playground/validator/v10"
)

// Action names accepted in request bodies.
const (
	ActionUpdateToMe       = "updateToMe"
	ActionStart            = "start"
	ActionStop             = "stop"
	ActionRetrievePassword = "retrievePassword"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Action is one of UpdateToMe, Start, Stop or RetrievePassword.
type Action interface {
	Name() string
	action()
}

// UpdateToMe replaces the ingress rules with a single rule for IPAddress.
type UpdateToMe struct {
	IPAddress string `json:"ipAddress" validate:"required,ipv4"`
}

type Start struct{}

type Stop struct{}

type RetrievePassword struct{}

func (UpdateToMe) Name() string       { return ActionUpdateToMe }
func (Start) Name() string            { return ActionStart }
func (Stop) Name() string             { return ActionStop }
func (RetrievePassword) Name() string { return ActionRetrievePassword }

func (UpdateToMe) action()       {}
func (Start) action()            {}
func (Stop) action()             {}
func (RetrievePassword) action() {}

type actionRequest struct {
	Action     string          `json:"action"`
	Parameters json.RawMessage `json:"parameters"`
}

// ParseAction decodes a {"action": ..., "parameters": {...}} body. An empty
// body decodes as an empty object.
func ParseAction(body []byte) (Action, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	var req actionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, invalidParameter("parse request", fmt.Errorf("%w: body: %w", ErrInvalidParameter, err))
	}

	switch req.Action {
	case ActionUpdateToMe:
		var a UpdateToMe
		if len(req.Parameters) > 0 {
			if err := json.Unmarshal(req.Parameters, &a); err != nil {
				return nil, invalidParameter("parse request", fmt.Errorf("%w: parameters: %w", ErrInvalidParameter, err))
			}
		}
		if _, err := parseIPv4(a.IPAddress); err != nil {
			return nil, err
		}
		return a, nil
	case ActionStart:
		return Start{}, nil
	case ActionStop:
		return Stop{}, nil
	case ActionRetrievePassword:
		return RetrievePassword{}, nil
	default:
		return nil, unknownAction(req.Action)
	}
}

// parseIPv4 accepts only dotted-quad IPv4 addresses.
func parseIPv4(ip string) (netip.Addr, error) {
	if err := validate.Struct(UpdateToMe{IPAddress: ip}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
			return netip.Addr{}, invalidParameter(ActionUpdateToMe, fmt.Errorf("%w: ipAddress is required", ErrInvalidParameter))
		}
		return netip.Addr{}, invalidParameter(ActionUpdateToMe, fmt.Errorf("%w: ipAddress %q is not an IPv4 address", ErrInvalidParameter, ip))
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, invalidParameter(ActionUpdateToMe, fmt.Errorf("%w: ipAddress %q is not an IPv4 address", ErrInvalidParameter, ip))
	}
	return addr, nil
}

// IsWriteMethod reports whether an HTTP method carries an action.
func IsWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
